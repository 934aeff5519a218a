package main

import (
	"sdlc/internal/backend"
	"sdlc/internal/typeset"
)

// outputOptions are the CLI-level knobs spec.md §6 names that apply
// uniformly to every backend rather than belonging to any one of them:
// comment passthrough, the generated-file header, and the --copy banner.
type outputOptions struct {
	comments bool
	header   bool
	copy     bool
	source   string
}

// decoratedBackend wraps a Backend to apply outputOptions without every
// backend implementation having to know about the CLI surface.
type decoratedBackend struct {
	backend.Backend
	opts outputOptions
}

func wrapBackend(b backend.Backend, opts outputOptions) backend.Backend {
	return &decoratedBackend{Backend: b, opts: opts}
}

func (d *decoratedBackend) EmitModuleBegin(name string, enable backend.EnableVector) error {
	if d.opts.header {
		if err := d.Backend.EmitComment(&typeset.Comment{
			Text:     "generated by sdlc, do not edit",
			Position: typeset.CommentStart,
		}, enable); err != nil {
			return err
		}
	}
	if d.opts.copy && d.opts.source != "" {
		if err := d.Backend.EmitComment(&typeset.Comment{
			Text:     "source: " + d.opts.source,
			Position: typeset.CommentStart,
		}, enable); err != nil {
			return err
		}
	}
	return d.Backend.EmitModuleBegin(name, enable)
}

func (d *decoratedBackend) EmitComment(c *typeset.Comment, enable backend.EnableVector) error {
	if !d.opts.comments {
		return nil
	}
	return d.Backend.EmitComment(c, enable)
}
