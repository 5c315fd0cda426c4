package formatter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Braille dot spinner frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFrame returns the spinner glyph for an animation step. Shared with
// the interactive session, which animates on its own tick instead of a
// background goroutine.
func SpinnerFrame(step int) string {
	if step < 0 {
		step = -step
	}
	return spinnerFrames[step%len(spinnerFrames)]
}

// Spinner displays an animated in-flight indicator with a message. It writes
// carriage-return frames, so it only makes sense on an interactive terminal.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to w. A nil writer means stdout.
func NewSpinner(w io.Writer, message string) *Spinner {
	if w == nil {
		w = os.Stdout
	}
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation. Call Stop() to end it.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		step := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				// Clear the spinner line.
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				frame := SpinnerFrame(step)
				fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frame), Dim(s.message))
				step++
			}
		}
	}()
}

// Stop ends the spinner animation and clears the line. Safe to call more
// than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner creates and starts a stdout spinner. Call the returned
// function to stop it.
func StartSpinner(message string) func() {
	s := NewSpinner(nil, message)
	s.Start()
	return s.Stop
}
