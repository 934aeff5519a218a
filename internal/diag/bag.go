package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics raised over the lifetime of a Module, the
// process-wide message vector spec.md §4.9/§7 describes.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a Bag capped at max entries (0 means unlimited).
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends d, unless the bag is at capacity. Returns false when dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any item is SevError or above.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// FatalCount returns how many recorded diagnostics carry a fatal Code.
// spec.md §7: exit status is only affected once this reaches 1.
func (b *Bag) FatalCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Code.Fatal() {
			n++
		}
	}
	return n
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the accumulated diagnostics. Callers must not mutate the
// returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Sort orders diagnostics by file, start offset, severity (desc), code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics that repeat an earlier (code, span) pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%d:%d", d.Code, d.Primary.File, d.Primary.Start)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
