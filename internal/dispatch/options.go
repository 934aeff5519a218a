package dispatch

import "sdlc/internal/typeset"

// OptionKey names a recognised option from spec.md §4.5's options table.
type OptionKey string

const (
	OptPrefix     OptionKey = "Prefix"
	OptTag        OptionKey = "Tag"
	OptBaseAlign  OptionKey = "BaseAlign"
	OptAlign      OptionKey = "Align"
	OptNoAlign    OptionKey = "NoAlign"
	OptDimension  OptionKey = "Dimension"
	OptLength     OptionKey = "Length"
	OptMask       OptionKey = "Mask"
	OptSigned     OptionKey = "Signed"
	OptCommon     OptionKey = "Common"
	OptGlobal     OptionKey = "Global"
	OptTypedef    OptionKey = "Typedef"
	OptBased      OptionKey = "Based"
	OptAddress    OptionKey = "Address"
	OptMarker     OptionKey = "Marker"
	OptOrigin     OptionKey = "Origin"
	OptCounter    OptionKey = "Counter"
	OptIncrement  OptionKey = "Increment"
	OptRadix      OptionKey = "Radix"
	OptEnumerate  OptionKey = "Enumerate"
	OptAlias      OptionKey = "Alias"
	OptLinkage    OptionKey = "Linkage"
	OptTypeName   OptionKey = "TypeName"
	OptVariable   OptionKey = "Variable"
	OptReturnType OptionKey = "ReturnsType"
	OptReturnName OptionKey = "ReturnsNamed"
)

// Option is one entry in the pending-options buffer (spec.md §4.5):
// value is exactly one of bool, int64, or string.
type Option struct {
	Key   OptionKey
	Value any
}

// AddOption accumulates an option onto the pending buffer, for
// application to the next entity the dispatcher creates.
func (d *Dispatcher) AddOption(key OptionKey, value any) {
	d.pending = append(d.pending, Option{Key: key, Value: value})
}

// takeOptions returns the pending buffer and clears it (spec.md §4.5 step
// 5, "Resets the options buffer").
func (d *Dispatcher) takeOptions() []Option {
	opts := d.pending
	d.pending = nil
	return opts
}

func optString(opts []Option, key OptionKey) (string, bool) {
	for _, o := range opts {
		if o.Key == key {
			if s, ok := o.Value.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

func optInt(opts []Option, key OptionKey) (int64, bool) {
	for _, o := range opts {
		if o.Key == key {
			if n, ok := o.Value.(int64); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func optBool(opts []Option, key OptionKey) bool {
	for _, o := range opts {
		if o.Key == key {
			if b, ok := o.Value.(bool); ok {
				return b
			}
			return true // presence alone (e.g. Mask, Signed) counts as set
		}
	}
	return false
}

// applyAlignment resolves the Align/NoAlign/BaseAlign options into a
// typeset.Alignment, defaulting to AlignNatural when none were given.
func applyAlignment(opts []Option) typeset.Alignment {
	if optBool(opts, OptNoAlign) {
		return typeset.Alignment{Kind: typeset.AlignNone}
	}
	if n, ok := optInt(opts, OptBaseAlign); ok {
		return typeset.Alignment{Kind: typeset.AlignExplicit, Explicit: int(n)}
	}
	return typeset.Alignment{Kind: typeset.AlignNatural}
}

func applyStorage(opts []Option) typeset.StorageFlags {
	var f typeset.StorageFlags
	if optBool(opts, OptCommon) {
		f |= typeset.StorageCommon
	}
	if optBool(opts, OptGlobal) {
		f |= typeset.StorageGlobal
	}
	if optBool(opts, OptTypedef) {
		f |= typeset.StorageTypedef
	}
	return f
}
