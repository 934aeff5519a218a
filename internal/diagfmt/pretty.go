package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"sdlc/internal/diag"
	"sdlc/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan)
	noteColor  = color.New(color.FgHiBlack)
)

// Pretty writes bag's diagnostics, one per line plus backtrace/notes, to w.
// Callers should bag.Sort() first for deterministic ordering.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options) {
	loc := ""
	if fs != nil {
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d: ", fs.Get(d.Primary.File).Path, start.Line, start.Col)
	}
	sev, sevColor := severityLabel(d.Severity)
	head := fmt.Sprintf("%s%s %s, %s", loc, sev, d.Code, d.Message)
	if opts.Color {
		head = sevColor.Sprint(head)
	}
	fmt.Fprintln(w, head)

	if len(d.Backtrace) > 0 {
		trace := strings.Join(d.Backtrace, " -> ")
		line := fmt.Sprintf("  in aggregate: %s", trace)
		if opts.Color {
			line = noteColor.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nloc := ""
			if fs != nil {
				start, _ := fs.Resolve(n.Span)
				nloc = fmt.Sprintf("%s:%d:%d: ", fs.Get(n.Span.File).Path, start.Line, start.Col)
			}
			line := fmt.Sprintf("  note: %s%s", nloc, n.Msg)
			if opts.Color {
				line = noteColor.Sprint(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func severityLabel(sev diag.Severity) (string, *color.Color) {
	switch sev {
	case diag.SevError:
		return "ERROR", errorColor
	case diag.SevWarning:
		return "WARNING", warnColor
	default:
		return "INFO", infoColor
	}
}
