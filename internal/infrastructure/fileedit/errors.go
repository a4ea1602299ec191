package fileedit

import (
	"errors"
	"syscall"
)

// isDirectoryError detects EISDIR surfacing from rename or open.
func isDirectoryError(err error) bool {
	return errors.Is(err, syscall.EISDIR)
}
