package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/wippyai/formcodec/errors"
)

// Member is one key of an ordered document object.
type Member struct {
	Value any
	Key   string
}

// Object is a document mapping that keeps key order. FromAny turns it into a
// Struct whose fields follow that order; ToAny produces it for structs and
// string-keyed maps.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromAny converts a decoded document (JSON, YAML, TOML) into a Value.
// nil becomes an absent Option, mappings with string keys become Structs,
// other mappings become Maps. Unsigned numbers that fit int64 become Int so
// that document fields accept negative edits.
func FromAny(x any) (Value, error) {
	return fromAny(x, nil)
}

func fromAny(x any, path []string) (Value, error) {
	switch v := x.(type) {
	case nil:
		return None(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case float32, float64:
		f, _ := CoerceFloat64(v)
		return Float(f), nil
	case uint, uint8, uint16, uint32, uint64:
		if i, ok := CoerceInt64(v); ok {
			return Int(i), nil
		}
		u, _ := CoerceUint64(v)
		return Uint(u), nil
	case int, int8, int16, int32, int64:
		i, _ := CoerceInt64(v)
		return Int(i), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, v.String(), "number", err)
		}
		return Float(f), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			ev, err := fromAny(e, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return Seq{Elems: elems}, nil
	case Object:
		fields := make([]Field, len(v))
		for i, m := range v {
			fv, err := fromAny(m.Value, append(path, m.Key))
			if err != nil {
				return nil, err
			}
			fields[i] = F(m.Key, fv)
		}
		return Struct{Fields: fields}, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(Object, len(keys))
		for i, k := range keys {
			obj[i] = Member{Key: k, Value: v[k]}
		}
		return fromAny(obj, path)
	case map[any]any:
		return fromAnyMap(v, path)
	}

	return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		GoType(reflect.TypeOf(x).String()).
		Detail("unsupported document value").
		Build()
}

func fromAnyMap(m map[any]any, path []string) (Value, error) {
	type pair struct {
		key  any
		sort string
	}
	pairs := make([]pair, 0, len(m))
	for k := range m {
		pairs = append(pairs, pair{key: k, sort: fmt.Sprint(k)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].sort < pairs[j].sort })

	out := Map{Entries: make([]MapEntry, 0, len(pairs))}
	for i, p := range pairs {
		ep := append(path, "["+strconv.Itoa(i)+"]")
		k, err := fromAny(p.key, append(ep, "key"))
		if err != nil {
			return nil, err
		}
		v, err := fromAny(m[p.key], append(ep, "value"))
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, MapEntry{Key: k, Val: v})
	}
	return out, nil
}

// ToAny converts a Value back into plain document data. Structs and maps
// keyed by strings become Objects; unit variants become their name; other
// variants become a single-member Object keyed by the variant.
func ToAny(v Value) any {
	switch x := v.(type) {
	case nil, Unit:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Uint:
		return uint64(x)
	case Float:
		return float64(x)
	case Char:
		return string(rune(x))
	case String:
		return string(x)
	case Seq:
		out := []any{}
		for e := range x.All() {
			out = append(out, ToAny(e))
		}
		return out
	case Tuple:
		out := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			out[i] = ToAny(e)
		}
		return out
	case Map:
		stringKeys := true
		for _, e := range x.Entries {
			if _, ok := e.Key.(String); !ok {
				stringKeys = false
				break
			}
		}
		if stringKeys {
			obj := make(Object, len(x.Entries))
			for i, e := range x.Entries {
				obj[i] = Member{Key: string(e.Key.(String)), Value: ToAny(e.Val)}
			}
			return obj
		}
		out := make([]any, len(x.Entries))
		for i, e := range x.Entries {
			out[i] = Object{{Key: "key", Value: ToAny(e.Key)}, {Key: "value", Value: ToAny(e.Val)}}
		}
		return out
	case Struct:
		obj := make(Object, len(x.Fields))
		for i, f := range x.Fields {
			obj[i] = Member{Key: f.Name, Value: ToAny(f.Value)}
		}
		return obj
	case Enum:
		if x.Form == UnitVariant {
			return x.Variant
		}
		return Object{{Key: x.Variant, Value: ToAny(x.Payload)}}
	case Option:
		return ToAny(x.Value)
	}
	return nil
}
