// Package tagresolve implements spec.md §4.2's Tag Resolver: given an
// optional explicit tag and a type reference, walks declare/item/
// aggregate chains until a base scalar or an override is found.
package tagresolve

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sdlc/internal/typeset"
)

var lowerer = cases.Lower(language.Und)

// Resolver is a read-only collaborator for the Dispatcher and Layout
// Engine (spec.md §3 data-flow note), holding the registry it walks.
type Resolver struct {
	reg *typeset.Registry
}

// New returns a Resolver over reg.
func New(reg *typeset.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// depthLimit bounds the declare/item/aggregate walk. Every chain
// terminates at a scalar by construction (spec.md §4.2 "Recursion
// terminates"); this only guards against a caller-constructed cycle.
const depthLimit = 64

// Resolve returns the effective output tag for a type reference, applying
// spec.md §4.2's six rules in order.
func (r *Resolver) Resolve(explicit string, id typeset.TypeID, hostLowercase bool) string {
	tag := r.resolve(explicit, id, 0)
	if hostLowercase {
		tag = lowerer.String(tag)
	}
	return tag
}

func (r *Resolver) resolve(explicit string, id typeset.TypeID, depth int) string {
	if explicit != "" {
		return strings.TrimRight(explicit, "_")
	}

	if depth >= depthLimit {
		return ""
	}

	switch id.Namespace() {
	case typeset.NSScalar:
		tag, ok := id.AsScalar()
		if !ok {
			return ""
		}
		return tag.DefaultTag()

	case typeset.NSDeclare:
		d, ok := r.reg.Declare(id)
		if !ok {
			return ""
		}
		if d.Tag != "" {
			return strings.Clone(d.Tag)
		}
		return r.resolve("", d.Base, depth+1)

	case typeset.NSItem:
		it, ok := r.reg.Item(id)
		if !ok {
			return ""
		}
		if it.Tag != "" {
			return strings.Clone(it.Tag)
		}
		return r.resolve("", it.Type, depth+1)

	case typeset.NSAggregate:
		ag, ok := r.reg.Aggregate(id)
		if !ok {
			return ""
		}
		if ag.Tag != "" {
			return strings.Clone(ag.Tag)
		}
		return ""

	default:
		return ""
	}
}

// ResolveConstant returns the default constant tag "K" (spec.md §4.2 rule
// 2), lowercased when the host id is all-lowercase.
func ResolveConstant(hostLowercase bool) string {
	if hostLowercase {
		return lowerer.String("K")
	}
	return "K"
}
