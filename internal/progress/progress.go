// Package progress reports a generation run to the operator: a step bar
// while artifacts are produced and colored info/error lines around it.
package progress

import (
	"fmt"
	"io"
	"sync"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/fatih/color"
)

type Reporter interface {
	// Start begins a bar of total steps.
	Start(total int)
	// Advance moves the bar one step, labelled with the stage just reached.
	Advance(label string)
	// Finish ends the bar.
	Finish()
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Terminal draws the bar in place on w. When the bar is finished or
// interrupted by a message the line is terminated first.
type Terminal struct {
	w   io.Writer
	bar progressbar.Model

	mu     sync.Mutex
	total  int
	step   int
	drawn  bool
	info   *color.Color
	warn   *color.Color
	errorc *color.Color
}

var _ Reporter = (*Terminal)(nil)

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:      w,
		bar:    progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(40)),
		info:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		errorc: color.New(color.FgRed),
	}
}

func (t *Terminal) Start(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total, t.step = total, 0
	t.draw("")
}

func (t *Terminal) Advance(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.step < t.total {
		t.step++
	}
	t.draw(label)
}

func (t *Terminal) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.breakLine()
}

func (t *Terminal) Info(format string, args ...any) {
	t.line(t.info, format, args...)
}

func (t *Terminal) Warn(format string, args ...any) {
	t.line(t.warn, format, args...)
}

func (t *Terminal) Error(format string, args ...any) {
	t.line(t.errorc, format, args...)
}

func (t *Terminal) line(c *color.Color, format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.breakLine()
	_, _ = c.Fprintln(t.w, fmt.Sprintf(format, args...))
}

func (t *Terminal) draw(label string) {
	if t.total <= 0 {
		return
	}
	pct := float64(t.step) / float64(t.total)
	_, _ = fmt.Fprintf(t.w, "\r%s %d/%d %-20s", t.bar.ViewAs(pct), t.step, t.total, label)
	t.drawn = true
}

func (t *Terminal) breakLine() {
	if t.drawn {
		_, _ = fmt.Fprintln(t.w)
		t.drawn = false
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Start(int) {}
func (Nop) Advance(string) {}
func (Nop) Finish() {}
func (Nop) Info(string, ...any) {}
func (Nop) Warn(string, ...any) {}
func (Nop) Error(string, ...any) {}

// Recorder keeps what it was told, for tests.
type Recorder struct {
	mu       sync.Mutex
	Total    int
	Labels   []string
	Finished bool
	Infos    []string
	Warnings []string
	Errors   []string
}

var _ Reporter = (*Recorder)(nil)

func (r *Recorder) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Total = total
}

func (r *Recorder) Advance(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Labels = append(r.Labels, label)
}

func (r *Recorder) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finished = true
}

func (r *Recorder) Info(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
