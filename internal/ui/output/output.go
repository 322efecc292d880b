// Package output renders run summaries and project listings for the CLI.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/engine/scheduler"
)

// Printer writes human-readable reports to a single writer.
type Printer struct {
	w io.Writer

	succeed *color.Color
	fail    *color.Color
	dim     *color.Color
	head    *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		succeed: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		dim:     color.New(color.Faint),
		head:    color.New(color.Bold),
	}
}

// Summary renders the per-target outcomes of a run.
func (p *Printer) Summary(s *scheduler.Summary) {
	for _, o := range s.Outcomes {
		switch o.Status {
		case scheduler.StatusBuilt:
			label := "built"
			if o.CacheHit {
				label = "cached"
			}
			fmt.Fprintf(p.w, "%s  %s %s\n", p.succeed.Sprint("ok"), o.Target, p.dim.Sprint(label))
		case scheduler.StatusFailed:
			fmt.Fprintf(p.w, "%s %s: %v\n", p.fail.Sprint("err"), o.Target, o.Err)
		case scheduler.StatusCancelled:
			fmt.Fprintf(p.w, "%s %s %s\n", p.dim.Sprint("--"), o.Target, p.dim.Sprint("cancelled"))
		}
	}
}

// Project renders the targets and scripts of a project.
func (p *Printer) Project(project *domain.Project) {
	fmt.Fprintln(p.w, p.head.Sprint("Targets"))
	for t := range project.Graph.Walk() {
		p.line(t.Name, t.Description)
	}

	if len(project.ScriptOrder) == 0 {
		return
	}
	fmt.Fprintln(p.w, p.head.Sprint("\nScripts"))
	for _, name := range project.ScriptOrder {
		p.line(name, project.Script(name).Description)
	}
}

func (p *Printer) line(name, desc string) {
	if desc == "" {
		fmt.Fprintf(p.w, "  %s\n", name)
		return
	}
	fmt.Fprintf(p.w, "  %-24s %s\n", name, p.dim.Sprint(desc))
}
