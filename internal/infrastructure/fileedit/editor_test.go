package fileedit_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/application/diff"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/infrastructure/fileedit"
)

func TestApplyEditRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o640))

	editor := fileedit.NewEditor(diff.Replay)
	current, exists, err := editor.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, exists)

	d := diff.Compute(current, "a\nB\nc\n")
	require.NoError(t, editor.ApplyEdit(path, d))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nc\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm(), "mode preserved")
}

func TestApplyEditDetectsConcurrentModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))

	editor := fileedit.NewEditor(diff.Replay)
	d := diff.Compute("one\n", "one\ntwo\n")

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere\n"), 0o644))

	err := editor.ApplyEdit(path, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConcurrentModification))

	var editErr *domain.EditError
	require.True(t, errors.As(err, &editErr))
	assert.Equal(t, path, editErr.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "changed elsewhere\n", string(data), "external change left intact")
}

func TestApplyEditCreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "new.txt")
	editor := fileedit.NewEditor(diff.Replay)

	content, exists, err := editor.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, content)

	require.NoError(t, editor.ApplyEdit(path, diff.Compute("", "hello\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.NewFilePermissions), info.Mode().Perm())
}

func TestApplyEditRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	editor := fileedit.NewEditor(nil)

	_, _, err := editor.ReadFile(dir)
	assert.True(t, errors.Is(err, domain.ErrPathIsDirectory))

	err = editor.ApplyEdit(dir, diff.Compute("", "x\n"))
	assert.True(t, errors.Is(err, domain.ErrPathIsDirectory))
}

func TestApplyEditPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	editor := fileedit.NewEditor(diff.Replay)
	err := editor.ApplyEdit(path, diff.Compute("x\n", "y\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWritePermissionDenied))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "x\n", string(data))
}

func TestApplyEditWithoutReplayWritesProposed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o600))

	editor := fileedit.NewEditor(nil)
	require.NoError(t, editor.ApplyEdit(path, diff.Compute("1\n2\n", "1\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n", string(data))
}
