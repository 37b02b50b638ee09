package runner

import (
	"fmt"
	"io"
)

// Progress renders a single self-overwriting status line.
// It is not safe for concurrent use, callers serialize through Collector.
type Progress struct {
	out       io.Writer
	total     int
	attempted int
	succeeded int
	silent    bool
}

// NewProgress creates a progress line for total attempts and draws it
func NewProgress(out io.Writer, total int, silent bool) *Progress {
	p := &Progress{out: out, total: total, silent: silent}
	p.render()
	return p
}

// Advance counts one finished attempt
func (p *Progress) Advance() {
	p.attempted++
	p.render()
}

// AdvanceSuccess counts one attempt that got an http response
func (p *Progress) AdvanceSuccess() {
	p.succeeded++
	p.render()
}

// LogLine prints msg on its own line and redraws the status line below it
func (p *Progress) LogLine(msg string) {
	if p.silent {
		fmt.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", msg)
	p.render()
}

// Close terminates the status line
func (p *Progress) Close() {
	if !p.silent {
		fmt.Fprintln(p.out)
	}
}

func (p *Progress) Attempted() int { return p.attempted }

func (p *Progress) Succeeded() int { return p.succeeded }

func (p *Progress) Total() int { return p.total }

func (p *Progress) render() {
	if p.silent {
		return
	}
	fmt.Fprintf(p.out, "\rprogress: %d/%d | succeeded: %d", p.attempted, p.total, p.succeeded)
}
