// Package fileedit applies reviewed diffs to files on disk.
package fileedit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

// ReplayFunc applies a diff to the content it was computed from.
type ReplayFunc func(original string, d domain.Diff) (string, error)

// Editor writes files with read-then-write consistency: the content on disk
// must still equal the diff's original side at apply time.
type Editor struct {
	replay ReplayFunc
}

// NewEditor builds an editor. A nil replay writes the diff's proposed side.
func NewEditor(replay ReplayFunc) *Editor {
	return &Editor{replay: replay}
}

// ReadFile implements ports.FileEditor. A missing file reads as empty.
func (e *Editor) ReadFile(path string) (string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, editError(path, "stat", err)
	}
	if info.IsDir() {
		return "", false, &domain.EditError{Path: path, Op: "read", Err: domain.ErrPathIsDirectory}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, editError(path, "read", err)
	}
	return string(data), true, nil
}

// ApplyEdit implements ports.FileEditor.
func (e *Editor) ApplyEdit(path string, d domain.Diff) error {
	current, exists, err := e.ReadFile(path)
	if err != nil {
		return err
	}
	if current != d.Original() {
		return &domain.EditError{Path: path, Op: "verify", Err: domain.ErrConcurrentModification}
	}

	proposed := d.Proposed()
	if e.replay != nil {
		proposed, err = e.replay(current, d)
		if err != nil {
			return &domain.EditError{Path: path, Op: "replay", Err: err}
		}
	}

	perm := os.FileMode(domain.NewFilePermissions)
	if exists {
		if info, err := os.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
	} else if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return editError(path, "mkdir", err)
	}

	if err := filesystem.AtomicWriteFile(path, []byte(proposed), perm); err != nil {
		return editError(path, "write", err)
	}
	return nil
}

func editError(path, op string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		err = fmt.Errorf("%w: %v", domain.ErrWritePermissionDenied, err)
	case isDirectoryError(err):
		err = fmt.Errorf("%w: %v", domain.ErrPathIsDirectory, err)
	}
	return &domain.EditError{Path: path, Op: op, Err: err}
}

var _ ports.FileEditor = (*Editor)(nil)
