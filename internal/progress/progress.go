// Package progress draws progress indicators for long CLI operations such as
// bulk import, markdown export and media fetches. Indicators write to stderr
// and only draw on a terminal, so piped stdout stays clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest total that gets a counter.
const minItems = 5

// clearWidth is how many columns Done and Stop blank out.
const clearWidth = 48

// Progress counts completed items out of a known total.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	draw    bool
}

// New creates a counter on stderr. Totals below minItems never draw.
func New(label string, total int) *Progress {
	return newProgress(os.Stderr, label, total, isTerminal(os.Stderr))
}

func newProgress(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, draw: tty && total >= minItems}
}

// Increment advances the counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Print redraws the counter line in place.
func (p *Progress) Print() {
	if !p.draw {
		return
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
}

// Done clears the counter line.
func (p *Progress) Done() {
	if p.draw {
		clearLine(p.w)
	}
}

// Spinner shows activity for work with no known total, such as an HTTP
// fetch.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	tty     bool
	running bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner on stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{w: os.Stderr, label: label, tty: isTerminal(os.Stderr)}
}

// Start draws the first frame.
func (s *Spinner) Start() {
	if !s.tty {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick advances the animation by one frame.
func (s *Spinner) Tick() {
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	clearLine(s.w)
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
