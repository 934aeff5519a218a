// Package source tracks SDL source files and resolves byte spans to
// line/column positions for diagnostics and the listing renderer.
package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileID identifies a loaded source file within a FileSet.
type FileID uint32

// File holds the content and line index for one loaded source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	lineIdx []uint32
	Hash    [32]byte
}

// FileSet owns the set of files referenced by a compile run.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers file content under path, always minting a fresh FileID.
func (fs *FileSet) Add(path string, content []byte) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		lineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	})
	fs.index[path] = id
	return id
}

// Load reads path from disk and registers its content.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is supplied by the CLI caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.Add(path, content), nil
}

// Get returns the file for id. Panics on an out-of-range id, mirroring
// that FileIDs are only ever minted by this FileSet.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Position is a 1-based line/column location inside a source file.
type Position struct {
	Line uint32
	Col  uint32
}

// Span is a half-open byte range within a single file, the directive
// stream's source-location record (spec.md §6).
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Cover returns the smallest span containing both s and other, provided
// both reference the same file.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Resolve converts s into start/end line-column positions.
func (fs *FileSet) Resolve(s Span) (start, end Position) {
	f := fs.Get(s.File)
	return toPosition(f.lineIdx, s.Start), toPosition(f.lineIdx, s.End)
}

// LineCount returns the number of newline-separated lines in f, counting
// the text after the last newline as a line even when it is empty (0 for
// an empty file).
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	return len(f.lineIdx) + 1
}

// Line returns the 1-based source line, or "" past end of file.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	var start uint32
	switch {
	case n == 1:
		start = 0
	case int(n-2) < len(f.lineIdx):
		start = f.lineIdx[n-2] + 1
	default:
		return ""
	}
	end := uint32(len(f.Content))
	if int(n-1) < len(f.lineIdx) {
		end = f.lineIdx[n-1]
	}
	if start >= uint32(len(f.Content)) {
		return ""
	}
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[start:end])
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toPosition(lineIdx []uint32, off uint32) Position {
	if len(lineIdx) == 0 {
		return Position{Line: 1, Col: off + 1}
	}
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := uint32(lo) + 1
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return Position{Line: line, Col: off - lineStart + 1}
}
