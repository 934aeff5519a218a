package typeset

import "fmt"

// Registry owns the three TypeID namespaces plus the enum namespace for
// one Module (spec.md §3). It is owned by the Module and destroyed when
// the module closes (spec.md §5 "Lifecycles").
//
// Grounded on the teacher's types.Interner: a monotonically growing slice
// per namespace, indexed directly by (id - namespace min), so Lookup is
// O(1) and ids are never reused.
type Registry struct {
	declares   []*Declare
	items      []*Item
	aggregates []*Aggregate
	enums      []*Enumeration
	entries    []*Entry
	constants  []*Constant

	names map[string]TypeID // per-namespace uniqueness, keyed "ns:name"
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]TypeID)}
}

func nsKey(ns Namespace, name string) string {
	return fmt.Sprintf("%d:%s", ns, name)
}

// Unique reserves name within ns, failing if already taken (spec.md §9
// duplicate-name Open Question resolution: unique within a namespace,
// may collide across namespaces).
func (r *Registry) Unique(ns Namespace, name string) bool {
	key := nsKey(ns, name)
	if _, ok := r.names[key]; ok {
		return false
	}
	r.names[key] = NoTypeID
	return true
}

// AddDeclare registers d, assigning the next DeclareID.
func (r *Registry) AddDeclare(d *Declare) TypeID {
	id := DeclareMin + TypeID(len(r.declares))
	d.ID = id
	r.declares = append(r.declares, d)
	r.names[nsKey(NSDeclare, d.Name)] = id
	return id
}

// Declare looks up a declare by id.
func (r *Registry) Declare(id TypeID) (*Declare, bool) {
	if id.Namespace() != NSDeclare {
		return nil, false
	}
	idx := int(id - DeclareMin)
	if idx < 0 || idx >= len(r.declares) {
		return nil, false
	}
	return r.declares[idx], true
}

// AddItem registers it, assigning the next ItemID.
func (r *Registry) AddItem(it *Item) TypeID {
	id := ItemMin + TypeID(len(r.items))
	it.ID = id
	r.items = append(r.items, it)
	r.names[nsKey(NSItem, it.Name)] = id
	return id
}

// Item looks up an item by id.
func (r *Registry) Item(id TypeID) (*Item, bool) {
	if id.Namespace() != NSItem {
		return nil, false
	}
	idx := int(id - ItemMin)
	if idx < 0 || idx >= len(r.items) {
		return nil, false
	}
	return r.items[idx], true
}

// AddAggregate registers ag, assigning the next AggregateID.
func (r *Registry) AddAggregate(ag *Aggregate) TypeID {
	id := AggregateMin + TypeID(len(r.aggregates))
	ag.ID = id
	r.aggregates = append(r.aggregates, ag)
	r.names[nsKey(NSAggregate, ag.Name)] = id
	return id
}

// Aggregate looks up an aggregate by id.
func (r *Registry) Aggregate(id TypeID) (*Aggregate, bool) {
	if id.Namespace() != NSAggregate {
		return nil, false
	}
	idx := int(id - AggregateMin)
	if idx < 0 || idx >= len(r.aggregates) {
		return nil, false
	}
	return r.aggregates[idx], true
}

// AggregateByName looks up a closed, top-level aggregate by name, for an
// item of pointer family whose subtype references it (spec.md line 57,
// §7 AddressObjectNotBased). A name that has been reserved by an
// open-but-not-yet-closed aggregate (Unique sets it to NoTypeID) is
// reported as not found, same as an unknown name.
func (r *Registry) AggregateByName(name string) (*Aggregate, bool) {
	id, ok := r.names[nsKey(NSAggregate, name)]
	if !ok || id == NoTypeID {
		return nil, false
	}
	return r.Aggregate(id)
}

// AddEnum registers e, assigning the next EnumID.
func (r *Registry) AddEnum(e *Enumeration) TypeID {
	id := EnumMin + TypeID(len(r.enums))
	e.ID = id
	r.enums = append(r.enums, e)
	r.names[nsKey(NSEnum, e.Name)] = id
	return id
}

// Enum looks up an enumeration by id.
func (r *Registry) Enum(id TypeID) (*Enumeration, bool) {
	if id.Namespace() != NSEnum {
		return nil, false
	}
	idx := int(id - EnumMin)
	if idx < 0 || idx >= len(r.enums) {
		return nil, false
	}
	return r.enums[idx], true
}

// AddEntry registers e. Entries are not addressable by TypeID (spec.md §3
// lists no TypeID namespace for Entry); they are looked up by name via
// the Dispatcher's own table.
func (r *Registry) AddEntry(e *Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns every registered entry in declaration order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// AddConstant registers c, same non-addressable treatment as AddEntry.
func (r *Registry) AddConstant(c *Constant) {
	r.constants = append(r.constants, c)
}

// Constants returns every registered constant in declaration order.
func (r *Registry) Constants() []*Constant {
	return r.constants
}

// Declares returns every registered declare in declaration order.
func (r *Registry) Declares() []*Declare { return r.declares }

// Items returns every registered item in declaration order.
func (r *Registry) Items() []*Item { return r.items }

// Aggregates returns every registered aggregate in declaration order,
// including nested subaggregates' enclosing top-level aggregates only
// (subaggregates are reachable through Aggregate.Members).
func (r *Registry) Aggregates() []*Aggregate { return r.aggregates }

// Enums returns every registered enumeration in declaration order.
func (r *Registry) Enums() []*Enumeration { return r.enums }
