package object

import "strconv"

// maxIndex is the largest valid array index (2^32 - 2); spec.md §8
// "a[4294967296] sets a string-keyed property, not a length-extending
// index" — and so does 4294967295 itself, the reserved max-length value.
const maxIndex = 4294967294

// canonicalIndex reports whether key is the canonical decimal rendering
// of a valid array index (no leading zeros, no sign, in range).
func canonicalIndex(key string) (uint32, bool) {
	if key == "" {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	if len(key) > 1 && key[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxIndex {
		return 0, false
	}
	return uint32(n), true
}

// Get implements spec.md §4.2 `get(o, key)`: walks the prototype chain,
// consulting class-specific hooks (Array.length, String indexing,
// Arguments aliasing) before falling back to the ordinary property
// table. Accessor getters are invoked with `this` bound to the original
// receiver o, not the object further up the chain where the accessor
// was actually found.
func Get(o *Object, key string, stringIndexReadsChars bool) (Value, *Throw) {
	receiver := o
	for cur := o; cur != nil; cur = cur.Proto {
		if cur.Class == ClassArray && key == "length" {
			return Num(float64(cur.ArrayLength)), nil
		}
		if cur.Class == ClassString && key == "length" {
			return Num(float64(len([]rune(cur.PrimitiveValue.S)))), nil
		}
		if cur.Class == ClassString && stringIndexReadsChars {
			if idx, ok := canonicalIndex(key); ok {
				runes := []rune(cur.PrimitiveValue.S)
				if int(idx) < len(runes) {
					return Str(string(runes[idx])), nil
				}
			}
		}
		if cur.Class == ClassArguments && cur.AliasTarget != nil {
			if idx, ok := canonicalIndex(key); ok && int(idx) < len(cur.AliasNames) {
				return Get(cur.AliasTarget, cur.AliasNames[idx], stringIndexReadsChars)
			}
		}
		if p, ok := cur.Props.Get(key); ok {
			if p.IsAccessor {
				if p.Get == nil {
					return Undefined, nil
				}
				return p.Get.Callable.Call(FromObject(receiver), nil)
			}
			return p.Value, nil
		}
	}
	return Undefined, nil
}

// Has implements spec.md §4.2 `has(o, key)`.
func Has(o *Object, key string) bool {
	for cur := o; cur != nil; cur = cur.Proto {
		if cur.Class == ClassArray && key == "length" {
			return true
		}
		if cur.Class == ClassString && key == "length" {
			return true
		}
		if cur.Class == ClassArguments && cur.AliasTarget != nil {
			if idx, ok := canonicalIndex(key); ok && int(idx) < len(cur.AliasNames) {
				return true
			}
		}
		if cur.Props.Has(key) {
			return true
		}
	}
	return false
}

// PutOptions controls `put`'s failure behavior (spec.md §4.2): non-strict
// contexts silently ignore a rejected write; strict contexts throw.
type PutOptions struct {
	Strict bool
}

// Put implements spec.md §4.2 `put(o, key, v, throwOnFail)`.
func Put(o *Object, key string, v Value, opt PutOptions) *Throw {
	if o.Class == ClassArray && key == "length" {
		n := uint32(v.N)
		if float64(n) != v.N || v.N < 0 {
			return NewThrow(Str("RangeError: invalid array length"))
		}
		if n < o.ArrayLength {
			for _, k := range o.Props.Keys() {
				if idx, ok := canonicalIndex(k); ok && idx >= n {
					o.Props.Delete(k)
				}
			}
		}
		o.ArrayLength = n
		return nil
	}
	if o.Class == ClassArguments && o.AliasTarget != nil {
		if idx, ok := canonicalIndex(key); ok && int(idx) < len(o.AliasNames) {
			return Put(o.AliasTarget, o.AliasNames[idx], v, opt)
		}
	}

	// Find the nearest property with this key on the chain.
	for cur := o; cur != nil; cur = cur.Proto {
		p, ok := cur.Props.Get(key)
		if !ok {
			continue
		}
		if p.IsAccessor {
			if p.Set == nil {
				if opt.Strict {
					return NewThrow(Str("TypeError: cannot set property " + key + " which has only a getter"))
				}
				return nil
			}
			_, thr := p.Set.Callable.Call(FromObject(o), []Value{v})
			return thr
		}
		if cur == o {
			if !p.Attrs.Writable {
				if opt.Strict {
					return NewThrow(Str("TypeError: cannot assign to read only property " + key))
				}
				return nil
			}
			p.Value = v
			o.Props.Set(key, p)
			if o.Class == ClassArray {
				if idx, ok := canonicalIndex(key); ok && idx >= o.ArrayLength {
					o.ArrayLength = idx + 1
				}
			}
			return nil
		}
		if !p.Attrs.Writable {
			if opt.Strict {
				return NewThrow(Str("TypeError: cannot assign to read only property " + key))
			}
			return nil
		}
		break
	}
	if !o.Extensible {
		if opt.Strict {
			return NewThrow(Str("TypeError: object is not extensible"))
		}
		return nil
	}
	o.Props.Set(key, Property{Value: v, Attrs: DefaultAttrs})
	if o.Class == ClassArray {
		if idx, ok := canonicalIndex(key); ok && idx >= o.ArrayLength {
			o.ArrayLength = idx + 1
		}
	}
	return nil
}

// Delete implements spec.md §4.2 `delete(o, key, throwOnFail)`.
func Delete(o *Object, key string, strict bool) (bool, *Throw) {
	if o.Class == ClassArray && key == "length" {
		if strict {
			return false, NewThrow(Str("TypeError: cannot delete property length"))
		}
		return false, nil
	}
	p, ok := o.Props.Get(key)
	if !ok {
		return true, nil
	}
	if !p.Attrs.Configurable {
		if strict {
			return false, NewThrow(Str("TypeError: cannot delete non-configurable property " + key))
		}
		return false, nil
	}
	o.Props.Delete(key)
	return true, nil
}

// Enumerate implements spec.md §4.2 `enumerate(o)`: own enumerable keys,
// in insertion order, followed by the prototype's enumeration, skipping
// any key already seen (whether the earlier sighting was enumerable or
// not — a non-enumerable own property shadows and suppresses an
// enumerable ancestor key of the same name).
func Enumerate(o *Object) []string {
	seen := make(map[string]bool)
	var out []string
	for cur := o; cur != nil; cur = cur.Proto {
		for _, k := range cur.Props.Keys() {
			if seen[k] {
				continue
			}
			p, _ := cur.Props.Get(k)
			seen[k] = true
			if p.Attrs.Enumerable {
				out = append(out, k)
			}
		}
	}
	return out
}
