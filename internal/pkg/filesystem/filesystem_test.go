package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFileReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0o640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestAtomicWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file.txt")
	err := AtomicWriteFile(path, []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/.bash_history", ExpandPath("~/.bash_history"))
	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/etc/hosts", ExpandPath("/etc/hosts"))
	assert.Equal(t, "a/b", ExpandPath("a/./b"))
	assert.Equal(t, "~/x.txt", FriendlyPath("/home/tester/x.txt"))
	assert.Equal(t, "/tmp/x.txt", FriendlyPath("/tmp/x.txt"))
}
