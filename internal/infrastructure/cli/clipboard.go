package cli

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/doeshing/huh-go/internal/ports"
)

var errNoClipboard = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")

// Clipboard implements ports.Clipboard on top of the platform clipboard
// utilities (pbcopy, xclip, xsel, wl-copy, clip.exe).
type Clipboard struct {
	supported bool
	write     func(string) error
}

// NewClipboard builds the clipboard helper for this platform.
func NewClipboard() *Clipboard {
	return &Clipboard{supported: !clipboard.Unsupported, write: clipboard.WriteAll}
}

// Enabled reports whether a clipboard utility was found.
func (c *Clipboard) Enabled() bool {
	return c.supported
}

// Copy places a suggested command on the clipboard. Surrounding whitespace
// is dropped so pasting does not run the command early.
func (c *Clipboard) Copy(text string) error {
	if !c.supported {
		return errNoClipboard
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("nothing to copy")
	}
	return c.write(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
