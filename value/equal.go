package value

import (
	"math"
	"slices"
)

// Equal reports structural equality. Map entries compare as sets, NaN equals
// NaN, and sized and unsized sequences with the same elements are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Unit:
		return true
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Uint:
		return av == b.(Uint)
	case Float:
		bv := b.(Float)
		if math.IsNaN(float64(av)) {
			return math.IsNaN(float64(bv))
		}
		return av == bv
	case Char:
		return av == b.(Char)
	case String:
		return av == b.(String)
	case Seq:
		return equalSlices(slices.Collect(av.All()), slices.Collect(b.(Seq).All()))
	case Tuple:
		return equalSlices(av.Elems, b.(Tuple).Elems)
	case Map:
		return equalMaps(av, b.(Map))
	case Struct:
		bv := b.(Struct)
		if av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case Enum:
		bv := b.(Enum)
		return av.Name == bv.Name && av.Variant == bv.Variant && av.Form == bv.Form && Equal(av.Payload, bv.Payload)
	case Option:
		return Equal(av.Value, b.(Option).Value)
	}
	return false
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMaps(a, b Map) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for _, e := range a.Entries {
		v, ok := b.Lookup(e.Key)
		if !ok || !Equal(e.Val, v) {
			return false
		}
	}
	return true
}
