package object

// Attrs is the shared attribute set of a property (spec.md §3). V1/V3
// expose only the three hidden-flag analogues (ReadOnly/DontEnum/
// DontDelete, modeled here as the negation of Writable/Enumerable/
// Configurable); Configurable and accessor properties only take effect
// under V5, enforced by the evaluator and internal/object/define.go, not
// by this struct.
type Attrs struct {
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// DefaultAttrs is the attribute set `put` assigns a newly created own
// property (spec.md §4.2 "put").
var DefaultAttrs = Attrs{Writable: true, Enumerable: true, Configurable: true}

// Property is a two-variant union: a data property (Value, Writable) or
// an accessor property (Get/Set function objects), both carrying shared
// Enumerable/Configurable attributes (spec.md §9 "Tagged variants").
type Property struct {
	IsAccessor bool
	Value      Value
	Get        *Object
	Set        *Object
	Attrs      Attrs
}

// propEntry pairs a key with its Property in insertion order.
type propEntry struct {
	key  string
	prop Property
}

// PropertyTable is an insertion-ordered string-keyed map (spec.md §3:
// "The property table preserves insertion order"). Deletion re-indexes
// the trailing entries; tables are expected to be small (function
// activations, object literals), so this is preferred over a linked
// structure for simplicity, matching the teacher's own small-map idiom.
type PropertyTable struct {
	entries []propEntry
	index   map[string]int
}

func newPropertyTable() *PropertyTable {
	return &PropertyTable{index: make(map[string]int)}
}

func (t *PropertyTable) Get(key string) (Property, bool) {
	i, ok := t.index[key]
	if !ok {
		return Property{}, false
	}
	return t.entries[i].prop, true
}

func (t *PropertyTable) Set(key string, p Property) {
	if i, ok := t.index[key]; ok {
		t.entries[i].prop = p
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, propEntry{key: key, prop: p})
}

func (t *PropertyTable) Delete(key string) {
	i, ok := t.index[key]
	if !ok {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.index, key)
	for k := i; k < len(t.entries); k++ {
		t.index[t.entries[k].key] = k
	}
}

func (t *PropertyTable) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Keys returns own keys in insertion order.
func (t *PropertyTable) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.key
	}
	return keys
}

func (t *PropertyTable) Len() int { return len(t.entries) }
