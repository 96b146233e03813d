// Package text provides plain text output without any styling.
//
// This is the compatibility format: its lines match the traditional
// update-alternatives output, so anything that parses the classic tool
// keeps working when stdout is a pipe.
package text

import (
	"fmt"
	"io"

	"github.com/fthomys/update-alternatives/pkg/errors"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// prefix starts every status line, matching the classic tool.
const prefix = "update-alternatives: "

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a command result as plain text. Operations that
// changed nothing stay silent beyond the parse summary, as the classic
// tool did.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ListResult:
		if err := r.parsed(v.Parsed, v.Warnings); err != nil {
			return err
		}
		return r.groups(v.Groups)
	case *types.AddResult:
		if err := r.parsed(v.Parsed, v.Warnings); err != nil {
			return err
		}
		if !v.Changed {
			return nil
		}
		return r.statusf("added alternative %s for %s with priority %d", v.Target, v.Name, v.Priority)
	case *types.RemoveResult:
		if err := r.parsed(v.Parsed, v.Warnings); err != nil {
			return err
		}
		if !v.Removed {
			return nil
		}
		return r.statusf("removed alternative %s for %s", v.Target, v.Name)
	case *types.SyncResult:
		// The classic tool wrote links without reporting them.
		return r.parsed(v.Parsed, v.Warnings)
	case *types.InstallResult:
		if err := r.parsed(v.Parsed, v.Warnings); err != nil {
			return err
		}
		return r.statusf("applied %d alternatives from %d manifests", v.Applied, len(v.Manifests))
	case *types.GenConfigResult:
		if v.Written {
			return r.statusf("wrote config to %s", v.Path)
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

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.statusf("%s", errors.UserMessage(err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) statusf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.output, prefix+format+"\n", args...)
	return err
}

func (r *Renderer) parsed(count int, warnings []types.ParseWarning) error {
	if err := r.statusf("parsed %d alternatives", count); err != nil {
		return err
	}
	for _, w := range warnings {
		if err := r.statusf("skipping %s (line %d): %s", w.Name, w.Line, w.Message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) groups(groups []types.GroupInfo) error {
	for _, g := range groups {
		if err := r.statusf("alternatives for %s:", g.Name); err != nil {
			return err
		}
		for _, rec := range g.Records {
			marker := " "
			if rec.Selected {
				marker = "*"
			}
			if _, err := fmt.Fprintf(r.output, "%s %s %d\n", marker, rec.Target, rec.Priority); err != nil {
				return err
			}
		}
	}
	return nil
}
