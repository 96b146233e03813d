// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/style"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// Renderer provides rich terminal output using the semantic style registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders a command result with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ListResult:
		r.parsed(v.Parsed, v.Warnings)
		r.groups(v.Groups)
		return nil
	case *types.AddResult:
		r.parsed(v.Parsed, v.Warnings)
		if v.Changed {
			r.line("%s added %s for %s with priority %s",
				style.Indicator(types.LinkCreated),
				style.GetStyle("Target").Render(v.Target),
				style.GetStyle("Name").Render(v.Name),
				style.GetStyle("Priority").Render(strconv.Itoa(v.Priority)))
		} else {
			r.muted("%s already registered for %s", v.Target, v.Name)
		}
		r.commit(v.Commit)
		return nil
	case *types.RemoveResult:
		r.parsed(v.Parsed, v.Warnings)
		if v.Removed {
			r.line("%s removed %s for %s",
				style.Indicator(types.LinkRemoved),
				style.GetStyle("Target").Render(v.Target),
				style.GetStyle("Name").Render(v.Name))
		} else {
			r.muted("nothing to remove for %s", v.Name)
		}
		r.commit(v.Commit)
		return nil
	case *types.SyncResult:
		r.parsed(v.Parsed, v.Warnings)
		r.links(v.Links)
		return nil
	case *types.InstallResult:
		r.parsed(v.Parsed, v.Warnings)
		for _, m := range v.Manifests {
			r.muted("manifest %s", m)
		}
		r.line("%s applied %s alternatives from %s manifests",
			style.Indicator(types.LinkCreated),
			style.GetStyle("Priority").Render(strconv.Itoa(v.Applied)),
			style.GetStyle("Priority").Render(strconv.Itoa(len(v.Manifests))))
		r.commit(v.Commit)
		return nil
	case *types.GenConfigResult:
		if v.Written {
			r.line("%s wrote config to %s",
				style.Indicator(types.LinkCreated),
				style.GetStyle("Path").Render(v.Path))
			return nil
		}
		// Bare content so the output can be redirected into a config file.
		_, err := fmt.Fprint(r.output, v.Content)
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	r.line("%s %s", style.GetStyle("Error").Render("error:"), errors.UserMessage(err))
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	r.line("%s", style.GetStyle("Info").Render(msg))
	return nil
}

func (r *Renderer) line(format string, args ...interface{}) {
	fmt.Fprintf(r.output, format+"\n", args...)
}

func (r *Renderer) muted(format string, args ...interface{}) {
	r.line("%s", style.GetStyle("Muted").Render(fmt.Sprintf(format, args...)))
}

func (r *Renderer) parsed(count int, warnings []types.ParseWarning) {
	r.muted("parsed %d alternatives", count)
	for _, w := range warnings {
		r.line("%s skipping %s (line %d): %s",
			style.GetStyle("Warning").Render("warning:"), w.Name, w.Line, w.Message)
	}
}

func (r *Renderer) groups(groups []types.GroupInfo) {
	for _, g := range groups {
		header := style.GetStyle("Name").Render(g.Name)
		if g.Current != "" {
			header += style.GetStyle("Muted").Render(" -> ") + style.GetStyle("Path").Render(g.Current)
		} else {
			header += style.GetStyle("Muted").Render(" (no alternatives)")
		}
		r.line("%s", header)

		for _, rec := range g.Records {
			targetStyle := "Target"
			if rec.Selected {
				targetStyle = "Selected"
			}
			r.line("  %s %s %s",
				style.SelectedMarker(rec.Selected),
				style.GetStyle(targetStyle).Render(rec.Target),
				style.GetStyle("Priority").Render(strconv.Itoa(rec.Priority)))
		}
	}
}

// commit shows what a mutating command wrote back, skipping links that were
// already correct.
func (r *Renderer) commit(commit *types.CommitResult) {
	if commit == nil || commit.Links == nil {
		return
	}
	for _, c := range commit.Links.Changes {
		if c.State == types.LinkUnchanged {
			continue
		}
		r.change(c)
	}
}

// links shows every link outcome of a sync pass plus a summary line.
func (r *Renderer) links(links *types.LinkResult) {
	if links == nil {
		return
	}
	for _, c := range links.Changes {
		r.change(c)
	}
	text := fmt.Sprintf("%d links changed", links.Changed())
	if failed := links.Failed(); failed > 0 {
		text += style.GetStyle("Error").Render(fmt.Sprintf(", %d failed", failed))
	}
	r.muted("%s", text)
}

func (r *Renderer) change(c types.LinkChange) {
	line := fmt.Sprintf("%s %s", style.StatusBadge(c.State), style.GetStyle("Name").Render(c.Name))
	if c.Target != "" {
		line += style.GetStyle("Muted").Render(" -> ") + style.GetStyle("Path").Render(c.Target)
	}
	if c.Error != "" {
		line += " " + style.GetStyle("Error").Render(c.Error)
	}
	r.line("%s", line)
}
