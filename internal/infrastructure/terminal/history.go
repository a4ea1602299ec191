package terminal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/pkg/filesystem"
	"github.com/doeshing/huh-go/internal/ports"
)

// HistoryReader reads the invoking shell's history file.
type HistoryReader struct {
	env          environment
	home         string
	defaultShell domain.ShellKind
	readFile     func(string) ([]byte, error)
}

// NewHistoryReader builds a reader. defaultShell is used when detection
// fails; pass domain.ShellUnknown for no fallback.
func NewHistoryReader(defaultShell domain.ShellKind) *HistoryReader {
	return &HistoryReader{
		env:          systemEnvironment(),
		home:         filesystem.UserHomeDir(),
		defaultShell: defaultShell,
		readFile:     os.ReadFile,
	}
}

// DetectShell implements ports.ShellHistoryReader.
func (r *HistoryReader) DetectShell(ctx context.Context) domain.ShellKind {
	kind := detectShell(ctx, r.env)
	if kind.Supported() {
		return kind
	}
	if r.defaultShell.Supported() {
		return r.defaultShell
	}
	return domain.ShellUnknown
}

// Candidates lists the history files consulted for kind, in order. $HISTFILE
// is only honoured for bash and zsh; fish never sets it, so a value there is
// inherited from a parent shell.
func (r *HistoryReader) Candidates(kind domain.ShellKind) []string {
	var paths []string
	if histfile := r.env.getenv("HISTFILE"); histfile != "" && kind != domain.ShellFish {
		paths = append(paths, filesystem.ExpandPath(histfile))
	}
	for _, rel := range kind.HistoryFiles() {
		paths = append(paths, filepath.Join(r.home, rel))
	}
	return lo.Uniq(paths)
}

// ReadHistory implements ports.ShellHistoryReader. The first candidate
// file holding at least one command wins.
func (r *HistoryReader) ReadHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	kind := r.DetectShell(ctx)
	if !kind.Supported() {
		return nil, &domain.CaptureError{Source: "history", Err: domain.ErrUnsupportedShell}
	}

	var readErrs []error
	for _, path := range r.Candidates(kind) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.readFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				readErrs = append(readErrs, err)
			}
			continue
		}
		entries := parseHistory(string(data))
		if len(entries) == 0 {
			continue
		}
		if limit >= 0 && len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
		return entries, nil
	}

	return nil, &domain.CaptureError{Source: "history", Err: unavailable(kind, readErrs)}
}

func unavailable(kind domain.ShellKind, readErrs []error) error {
	var hint string
	switch kind {
	case domain.ShellBash:
		hint = `bash writes history on exit; add PROMPT_COMMAND="history -a" to ~/.bashrc or run "huh install"`
	case domain.ShellZsh:
		hint = `enable "setopt INC_APPEND_HISTORY" in ~/.zshrc or run "huh install"`
	default:
		hint = "no readable history file found"
	}
	if len(readErrs) > 0 {
		return fmt.Errorf("%w: %s: %w", domain.ErrHistoryUnavailable, hint, errors.Join(readErrs...))
	}
	return fmt.Errorf("%w (%s shell): %s", domain.ErrHistoryUnavailable, kind, hint)
}

var _ ports.ShellHistoryReader = (*HistoryReader)(nil)
