// Package listing renders the 132-column, 66-line-page listing file a
// build can optionally produce alongside its backend output (spec.md §6
// --list flag). It is an ambient CLI feature outside the core resolution
// path: the core only needs to expose resolved source text and faults
// keyed by line for this package to lay out.
//
// Grounded on original_source/opensdl_listing.c's sdl_open_listing/
// sdl_write_list/sdl_close_listing: same page geometry (132 columns, a
// two-line running header, a form feed at 66 lines per page), adapted
// from its static C buffer state into a Writer value plus a stateful
// receiver, in the style of this module's other stateful file-writer
// (internal/cache.DiskCache).
package listing

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/version"
)

const (
	pageWidth  = 132
	pageLength = 66
	lineNoCols = 7
)

// Writer accumulates one module's source lines and faults, then renders
// them as paginated listing output.
type Writer struct {
	w         *bufio.Writer
	headerTop string
	headerSub string

	pageLine int
	pageNo   int
	listLine uint32

	// faults maps a 1-based source line to the diagnostics whose primary
	// span starts on it, appended immediately below that line (spec.md §4.9
	// "backtrace... followed by" via diagfmt.Pretty's shape, reused here
	// for the per-line annotation opensdl_listing.c's sdl_write_err leaves
	// as a stub hook).
	faults map[uint32][]diag.Diagnostic
}

// New returns a Writer for moduleName, built at runTime, writing to w.
func New(w io.Writer, moduleName string, runTime time.Time) *Writer {
	stamp := runTime.Format("02-Jan-2006 15:04:05")
	return &Writer{
		w:      bufio.NewWriter(w),
		headerTop: fmt.Sprintf("%58s%s sdlc %s\t\t\tPage ", "", stamp, version.Plain),
		headerSub: fmt.Sprintf("%60s %s\t%s", "", stamp, moduleName),
		pageLine:  1,
		pageNo:    1,
		listLine:  1,
		faults:    make(map[uint32][]diag.Diagnostic),
	}
}

// AddFault files d against the line its primary span starts on, to be
// printed immediately beneath that source line.
func (lw *Writer) AddFault(fs *source.FileSet, d diag.Diagnostic) {
	start, _ := fs.Resolve(d.Primary)
	lw.faults[start.Line] = append(lw.faults[start.Line], d)
}

// WriteFile renders every line of f, interleaving any faults AddFault
// recorded against it, and returns the first write error encountered.
func (lw *Writer) WriteFile(f *source.File) error {
	total := f.LineCount()
	for n := uint32(1); int(n) <= total; n++ {
		if err := lw.writeLine(f.Line(n)); err != nil {
			return err
		}
		for _, d := range lw.faults[n] {
			if err := lw.writeAnnotation(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (lw *Writer) writeLine(text string) error {
	if err := lw.maybeBreakPage(); err != nil {
		return err
	}
	if len(text) > pageWidth-lineNoCols-1 {
		text = text[:pageWidth-lineNoCols-1]
	}
	if _, err := fmt.Fprintf(lw.w, "%*d %s\n", lineNoCols, lw.listLine, text); err != nil {
		return err
	}
	lw.listLine++
	lw.pageLine++
	return nil
}

func (lw *Writer) writeAnnotation(d diag.Diagnostic) error {
	sev := "ERROR"
	if d.Severity == diag.SevWarning {
		sev = "WARNING"
	}
	if err := lw.maybeBreakPage(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(lw.w, "%%%s-%s, %s\n", sev, d.Code, d.Message); err != nil {
		return err
	}
	lw.pageLine++
	return nil
}

func (lw *Writer) maybeBreakPage() error {
	if lw.pageLine == 1 {
		if lw.listLine > 1 {
			if _, err := lw.w.WriteString("\f"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(lw.w, "%s%4d\n", lw.headerTop, lw.pageNo); err != nil {
			return err
		}
		lw.pageLine++
		if _, err := fmt.Fprintf(lw.w, "%s\n", lw.headerSub); err != nil {
			return err
		}
		lw.pageLine++
		return nil
	}
	if lw.pageLine > pageLength {
		lw.pageLine = 1
		lw.pageNo++
		return lw.maybeBreakPage()
	}
	return nil
}

// Close flushes any buffered output.
func (lw *Writer) Close() error {
	return lw.w.Flush()
}
