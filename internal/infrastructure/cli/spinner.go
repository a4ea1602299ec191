package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner animates a one-line wait indicator on stderr. After the first
// second the elapsed time is appended so slow providers are visible.
type Spinner struct {
	w        io.Writer
	label    string
	enabled  bool
	interval time.Duration
	now      func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewSpinner creates a spinner. A disabled spinner prints nothing.
func NewSpinner(w io.Writer, label string, enabled bool) *Spinner {
	return &Spinner{
		w:        w,
		label:    label,
		enabled:  enabled,
		interval: 80 * time.Millisecond,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the animation. Later calls are ignored.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		if !s.enabled {
			close(s.done)
			return
		}
		go s.loop(s.now())
	})
}

// Stop ends the animation and clears the line. Safe to call more than once,
// and before Start.
func (s *Spinner) Stop() {
	s.startOnce.Do(func() { close(s.done) })
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Spinner) loop(started time.Time) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "\r%c %s", spinnerFrames[frame%len(spinnerFrames)], s.label)
		if elapsed := s.now().Sub(started); elapsed >= time.Second {
			fmt.Fprintf(s.w, " (%ds)", int(elapsed.Seconds()))
		}
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
