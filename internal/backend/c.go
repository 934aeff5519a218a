package backend

import (
	"fmt"
	"io"
	"strings"

	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// CBackend is the reference Backend implementation, emitting a C header:
// structs/unions for aggregates, #define for constants, enum for
// enumerations, and an extern declaration for entries (spec.md §5 "the lexer/parser,
// per-language emitter bodies ... remain external collaborators"; this is
// the one shipped to make the contract testable end-to-end).
type CBackend struct {
	w     io.Writer
	depth int
}

// NewCBackend returns a Backend that writes C declarations to w.
func NewCBackend(w io.Writer) *CBackend {
	return &CBackend{w: w}
}

func (b *CBackend) Language() string { return "c" }

func (b *CBackend) indent() string { return strings.Repeat("    ", b.depth) }

func (b *CBackend) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(b.w, format, args...)
	return err
}

func (b *CBackend) EmitModuleBegin(name string, _ EnableVector) error {
	return b.printf("/* module %s */\n\n", name)
}

func (b *CBackend) EmitModuleEnd(_ EnableVector) error {
	return b.printf("\n/* end module */\n")
}

func (b *CBackend) EmitItem(it *typeset.Item, _ EnableVector) error {
	return b.printf("%stypedef %s %s;\n", b.indent(), cType(it), it.Name)
}

func (b *CBackend) EmitConstant(c *typeset.Constant, _ EnableVector) error {
	if c.Comment != "" {
		if err := b.printf("%s/* %s */\n", b.indent(), c.Comment); err != nil {
			return err
		}
	}
	return b.printf("%s#define %s %s\n", b.indent(), c.Name, formatValue(c.Value))
}

func (b *CBackend) EmitEnum(e *typeset.Enumeration, _ EnableVector) error {
	if err := b.printf("%stypedef enum {\n", b.indent()); err != nil {
		return err
	}
	for i, m := range e.Members {
		comma := ","
		if i == len(e.Members)-1 {
			comma = ""
		}
		if err := b.printf("%s    %s = %d%s\n", b.indent(), m.Name, m.Value, comma); err != nil {
			return err
		}
	}
	return b.printf("%s} %s;\n", b.indent(), e.Name)
}

func (b *CBackend) EmitAggregateBegin(ag *typeset.Aggregate, _ EnableVector) error {
	keyword := "struct"
	if ag.Kind != typeset.AggregateStruct {
		keyword = "union"
	}
	if err := b.printf("%stypedef %s {\n", b.indent(), keyword); err != nil {
		return err
	}
	b.depth++
	return nil
}

func (b *CBackend) EmitAggregateEnd(ag *typeset.Aggregate, _ EnableVector) error {
	b.depth--
	return b.printf("%s} %s; /* size %d */\n", b.indent(), ag.Name, ag.Size)
}

func (b *CBackend) EmitMember(m *typeset.Member, _ EnableVector) error {
	switch m.Kind {
	case typeset.MemberItem:
		it := m.ItemData
		tag, _ := it.Type.AsScalar()
		if tag.IsBitfield() {
			return b.printf("%s%s %s : %d; /* offset %d.%d */\n",
				b.indent(), cType(it), it.Name, it.LengthBits, it.Offset, it.BitOffset)
		}
		return b.printf("%s%s %s; /* offset %d */\n", b.indent(), cType(it), it.Name, it.Offset)
	case typeset.MemberSubaggregate:
		sub := m.Subaggr
		if err := b.EmitAggregateBegin(sub, nil); err != nil {
			return err
		}
		for _, inner := range sub.Members {
			if err := b.EmitMember(inner, nil); err != nil {
				return err
			}
		}
		return b.EmitAggregateEnd(sub, nil)
	default:
		return nil
	}
}

func (b *CBackend) EmitComment(c *typeset.Comment, _ EnableVector) error {
	return b.printf("%s/* %s */\n", b.indent(), c.Text)
}

func (b *CBackend) EmitLiteralLine(line string, _ EnableVector) error {
	return b.printf("%s\n", line)
}

func (b *CBackend) EmitEntry(e *typeset.Entry, _ EnableVector) error {
	parts := make([]string, 0, len(e.Params))
	for _, p := range e.Params {
		parts = append(parts, p.Name)
	}
	return b.printf("%sextern /* %s */ %s(%s);\n", b.indent(), e.TypeName, e.Name, strings.Join(parts, ", "))
}

// cType maps an item's scalar tag to a C spelling. Bitfield hosts use
// their promoted width rather than the declared tag, since the tag alone
// (e.g. generic "bitfield") does not carry the packed host size.
func cType(it *typeset.Item) string {
	tag, ok := it.Type.AsScalar()
	if !ok {
		return "void *"
	}
	if tag.IsBitfield() {
		return unsignedIntOfWidth(it.HostWidth)
	}
	switch tag {
	case value.TagByte:
		return "unsigned char"
	case value.TagWord:
		return "unsigned short"
	case value.TagLong:
		return "unsigned int"
	case value.TagQuad:
		return "unsigned long long"
	case value.TagSFloat, value.TagFFloat:
		return "float"
	case value.TagTFloat, value.TagDFloat, value.TagGFloat:
		return "double"
	case value.TagChar, value.TagCharVary, value.TagCharStar:
		return "char"
	case value.TagBoolean:
		return "unsigned char"
	default:
		if tag.IsPointerFamily() {
			return "void *"
		}
		return "void *"
	}
}

func unsignedIntOfWidth(bits int) string {
	switch {
	case bits <= 8:
		return "unsigned char"
	case bits <= 16:
		return "unsigned short"
	case bits <= 32:
		return "unsigned int"
	default:
		return "unsigned long long"
	}
}

func formatValue(v value.Value) string {
	if v.Kind == value.KindString {
		return fmt.Sprintf("%q", v.Text)
	}
	switch v.Radix {
	case value.RadixHex:
		return fmt.Sprintf("0x%X", uint64(v.Numeric))
	case value.RadixOctal:
		return fmt.Sprintf("0%o", v.Numeric)
	default:
		return fmt.Sprintf("%d", v.Numeric)
	}
}
