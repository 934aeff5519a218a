package listing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"sdlc/internal/diag"
	"sdlc/internal/source"
)

func testFileSet(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("module.sdl", []byte(content))
	return fs, id
}

func TestWriteFileEmitsLineNumbersInOrder(t *testing.T) {
	fs, id := testFileSet(t, "MODULE foo;\nEND_MODULE;\n")
	var buf bytes.Buffer
	w := New(&buf, "foo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := w.WriteFile(fs.Get(id)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	w.Close()

	out := buf.String()
	if !strings.Contains(out, "1 MODULE foo;") {
		t.Fatalf("missing numbered first line, got:\n%s", out)
	}
	if !strings.Contains(out, "2 END_MODULE;") {
		t.Fatalf("missing numbered second line, got:\n%s", out)
	}
}

func TestWriteFileEmitsRunningHeaderOnFirstPage(t *testing.T) {
	fs, id := testFileSet(t, "MODULE foo;\n")
	var buf bytes.Buffer
	w := New(&buf, "foo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	w.WriteFile(fs.Get(id))
	w.Close()

	out := buf.String()
	if !strings.Contains(out, "sdlc") {
		t.Fatalf("expected the page header to include the CLI name, got:\n%s", out)
	}
	if !strings.Contains(out, "Page    1") {
		t.Fatalf("expected page 1 in the header, got:\n%s", out)
	}
}

func TestWriteFileBreaksPageAfterPageLength(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < pageLength*2; i++ {
		sb.WriteString("ITEM x : BYTE;\n")
	}
	fs, id := testFileSet(t, sb.String())

	var buf bytes.Buffer
	w := New(&buf, "foo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	w.WriteFile(fs.Get(id))
	w.Close()

	formFeeds := strings.Count(buf.String(), "\f")
	if formFeeds == 0 {
		t.Fatal("expected at least one form feed once content exceeds one page")
	}
}

func TestAddFaultAnnotatesTheOffendingLine(t *testing.T) {
	fs, id := testFileSet(t, "ITEM x : BYTE;\nITEM x : BYTE;\n")
	var buf bytes.Buffer
	w := New(&buf, "foo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	span := source.Span{File: id, Start: 15, End: 29} // second line
	d := diag.NewError(diag.MatchEndName, span, "duplicate item name x")
	w.AddFault(fs, d)

	if err := w.WriteFile(fs.Get(id)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	w.Close()

	out := buf.String()
	idx := strings.Index(out, "duplicate item name x")
	if idx < 0 {
		t.Fatalf("annotation missing, got:\n%s", out)
	}
	secondLineIdx := strings.Index(out, "2 ITEM x")
	if secondLineIdx < 0 || idx < secondLineIdx {
		t.Fatalf("annotation should follow the offending line, got:\n%s", out)
	}
}

func TestWriteFileLongLineIsTruncatedToPageWidth(t *testing.T) {
	long := strings.Repeat("x", pageWidth*2)
	fs, id := testFileSet(t, long+"\n")
	var buf bytes.Buffer
	w := New(&buf, "foo", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	w.WriteFile(fs.Get(id))
	w.Close()

	for _, line := range strings.Split(buf.String(), "\n") {
		if len(line) > pageWidth+1 {
			t.Fatalf("line exceeds page width: %d chars", len(line))
		}
	}
}
