package object

// Descriptor is a partial property descriptor as produced by a V5
// object-literal accessor or Object.defineProperty; a field's Has* flag
// tells Define whether the caller supplied it at all (ES5.1 §8.12.9
// distinguishes "absent" from "present with its current value").
type Descriptor struct {
	HasValue bool
	Value    Value

	HasWritable bool
	Writable    bool

	HasGet bool
	Get    *Object // nil Get with HasGet=true means "getter explicitly cleared"

	HasSet bool
	Set    *Object

	HasEnumerable bool
	Enumerable    bool

	HasConfigurable bool
	Configurable    bool
}

func (d Descriptor) isAccessor() bool { return d.HasGet || d.HasSet }

// Define implements spec.md §4.2 `define(o, key, descriptor)` — V5 only
// — following the ES5.1 §8.12.9 [[DefineOwnProperty]] validity lattice
// precisely (open question (b)): once a property's Configurable
// attribute is false, only a narrow set of further transitions remain
// legal, enforced below rather than allowing every field to be
// overwritten unconditionally.
func Define(o *Object, key string, desc Descriptor) (bool, *Throw) {
	current, exists := o.Props.Get(key)
	if !exists {
		if !o.Extensible {
			return false, NewThrow(Str("TypeError: object is not extensible"))
		}
		o.Props.Set(key, descriptorToProperty(Property{Attrs: Attrs{}}, desc, true))
		return true, nil
	}

	if !current.Attrs.Configurable {
		if desc.HasConfigurable && desc.Configurable {
			return false, NewThrow(Str("TypeError: cannot redefine non-configurable property " + key))
		}
		if desc.HasEnumerable && desc.Enumerable != current.Attrs.Enumerable {
			return false, NewThrow(Str("TypeError: cannot change enumerable attribute of non-configurable property " + key))
		}
		if desc.isAccessor() != current.IsAccessor {
			return false, NewThrow(Str("TypeError: cannot change property " + key + " between data and accessor"))
		}
		if current.IsAccessor {
			if desc.HasGet && desc.Get != current.Get {
				return false, NewThrow(Str("TypeError: cannot change getter of non-configurable accessor property " + key))
			}
			if desc.HasSet && desc.Set != current.Set {
				return false, NewThrow(Str("TypeError: cannot change setter of non-configurable accessor property " + key))
			}
		} else {
			if !current.Attrs.Writable {
				if desc.HasWritable && desc.Writable {
					return false, NewThrow(Str("TypeError: cannot make non-writable property " + key + " writable"))
				}
				if desc.HasValue && !sameValue(desc.Value, current.Value) {
					return false, NewThrow(Str("TypeError: cannot change value of non-writable property " + key))
				}
			}
		}
	}

	o.Props.Set(key, descriptorToProperty(current, desc, false))
	return true, nil
}

// descriptorToProperty merges desc onto base. fresh indicates base has
// no prior state (attributes default false/undefined per ES5.1 §8.12.9
// step 4, not inherited from whatever zero value base happened to hold).
func descriptorToProperty(base Property, desc Descriptor, fresh bool) Property {
	p := base
	if fresh {
		p = Property{}
	}
	switchingToAccessor := desc.isAccessor() && !p.IsAccessor
	switchingToData := !desc.isAccessor() && p.IsAccessor && (desc.HasValue || desc.HasWritable || fresh)
	if switchingToAccessor {
		p = Property{IsAccessor: true, Attrs: p.Attrs}
	} else if switchingToData {
		p = Property{IsAccessor: false, Attrs: p.Attrs}
	}

	if desc.isAccessor() || p.IsAccessor {
		p.IsAccessor = true
		if desc.HasGet {
			p.Get = desc.Get
		}
		if desc.HasSet {
			p.Set = desc.Set
		}
	} else {
		if desc.HasValue {
			p.Value = desc.Value
		}
		if desc.HasWritable {
			p.Attrs.Writable = desc.Writable
		}
	}
	if desc.HasEnumerable {
		p.Attrs.Enumerable = desc.Enumerable
	}
	if desc.HasConfigurable {
		p.Attrs.Configurable = desc.Configurable
	}
	return p
}

func sameValue(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.B == b.B
	case KindNumber:
		return a.N == b.N
	case KindString:
		return a.S == b.S
	case KindObject:
		return a.O == b.O
	}
	return false
}
