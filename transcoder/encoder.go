package transcoder

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"unicode/utf8"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

// Encoder lifts Go values into value.Value and flattens them into form
// entries.
type Encoder struct {
	compiler *Compiler
	codec    *pathcodec.Encoder
}

func NewEncoder() *Encoder {
	return &Encoder{
		compiler: NewCompiler(),
		codec:    pathcodec.NewEncoder(),
	}
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c, codec: pathcodec.NewEncoder()}
}

// NewEncoderWithOptions uses the given codec options; a nil compiler gets a
// fresh one.
func NewEncoderWithOptions(c *Compiler, opts pathcodec.Options) *Encoder {
	if c == nil {
		c = NewCompiler()
	}
	return &Encoder{compiler: c, codec: pathcodec.NewEncoderWithOptions(opts)}
}

// Encode lifts v and encodes it into a form.
func (e *Encoder) Encode(v any) (*pathcodec.Form, error) {
	lifted, err := e.Lift(v)
	if err != nil {
		return nil, err
	}
	return e.codec.Encode(lifted)
}

// EncodeEntries returns the submission set of the encoded form.
func (e *Encoder) EncodeEntries(v any) (pathcodec.Entries, error) {
	f, err := e.Encode(v)
	if err != nil {
		return nil, err
	}
	return f.Entries(), nil
}

// Lift converts a Go value into a value.Value. A top-level pointer is
// dereferenced.
func (e *Encoder) Lift(v any) (value.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.NilPointer(errors.PhaseEncode, nil, "nil")
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.NilPointer(errors.PhaseEncode, nil, rv.Type().String())
		}
		rv = rv.Elem()
	}

	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return nil, err
	}
	return e.lift(ct, rv, nil)
}

func (e *Encoder) lift(ct *CompiledType, rv reflect.Value, path []string) (value.Value, error) {
	switch ct.Kind {
	case value.KindUnit:
		return value.Unit{}, nil

	case value.KindBool:
		return value.Bool(rv.Bool()), nil

	case value.KindInt:
		return value.Int(rv.Int()), nil

	case value.KindUint:
		return value.Uint(rv.Uint()), nil

	case value.KindFloat:
		return value.Float(rv.Float()), nil

	case value.KindChar:
		r := rune(rv.Int())
		if !utf8.ValidRune(r) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Path(path...).
				Value(r).
				Detail("invalid Unicode scalar value: 0x%X", r).
				Build()
		}
		return value.Char(r), nil

	case value.KindString:
		return value.String(rv.String()), nil

	case value.KindSeq:
		elems := make([]value.Value, rv.Len())
		for i := range elems {
			ev, err := e.lift(ct.Elem, rv.Index(i), append(append([]string{}, path...), indexSeg(i)))
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return value.Seq{Elems: elems}, nil

	case value.KindTuple:
		elems := make([]value.Value, rv.Len())
		for i := range elems {
			ev, err := e.lift(ct.Elem, rv.Index(i), append(append([]string{}, path...), indexSeg(i)))
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return value.Tuple{Elems: elems}, nil

	case value.KindMap:
		return e.liftMap(ct, rv, path)

	case value.KindOption:
		if rv.IsNil() {
			return value.None(), nil
		}
		inner, err := e.lift(ct.Elem, rv.Elem(), path)
		if err != nil {
			return nil, err
		}
		return value.Some(inner), nil

	case value.KindStruct:
		return e.liftStruct(ct, rv, path)

	case value.KindEnum:
		if ct.Union {
			return e.liftUnion(ct, rv, path)
		}
		name := rv.String()
		if _, ok := ct.Case(name); !ok {
			return nil, errors.InvalidVariant(errors.PhaseEncode, path, name, ct.Shape.String())
		}
		return value.UnitCase(ct.Shape.Name, name), nil
	}

	return nil, errors.Unsupported(errors.PhaseEncode, "compiled kind "+ct.Kind.String())
}

// liftMap emits entries in ascending key order so encodings are stable.
func (e *Encoder) liftMap(ct *CompiledType, rv reflect.Value, path []string) (value.Value, error) {
	entries := make([]value.MapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := e.lift(ct.Key, iter.Key(), append(append([]string{}, path...), "[key]"))
		if err != nil {
			return nil, err
		}
		v, err := e.lift(ct.Elem, iter.Value(), append(append([]string{}, path...), fmt.Sprint(iter.Key().Interface())))
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.MapEntry{Key: k, Val: v})
	}
	slices.SortFunc(entries, func(a, b value.MapEntry) int {
		return compareKeys(a.Key, b.Key)
	})
	return value.Map{Entries: entries}, nil
}

func compareKeys(a, b value.Value) int {
	switch x := a.(type) {
	case value.Int:
		if y, ok := b.(value.Int); ok {
			return cmp.Compare(x, y)
		}
	case value.Uint:
		if y, ok := b.(value.Uint); ok {
			return cmp.Compare(x, y)
		}
	case value.Float:
		if y, ok := b.(value.Float); ok {
			return cmp.Compare(x, y)
		}
	case value.String:
		if y, ok := b.(value.String); ok {
			return cmp.Compare(x, y)
		}
	case value.Char:
		if y, ok := b.(value.Char); ok {
			return cmp.Compare(x, y)
		}
	}
	return cmp.Compare(fmt.Sprint(value.ToAny(a)), fmt.Sprint(value.ToAny(b)))
}

func (e *Encoder) liftStruct(ct *CompiledType, rv reflect.Value, path []string) (value.Value, error) {
	fields := make([]value.Field, len(ct.Fields))
	for i, f := range ct.Fields {
		fv, err := e.lift(f.Type, rv.Field(f.Index), append(append([]string{}, path...), f.Name))
		if err != nil {
			return nil, err
		}
		fields[i] = value.F(f.Name, fv)
	}
	return value.Struct{Name: ct.Shape.Name, Fields: fields}, nil
}

func (e *Encoder) liftUnion(ct *CompiledType, rv reflect.Value, path []string) (value.Value, error) {
	var set *CompiledCase
	for i := range ct.Cases {
		c := &ct.Cases[i]
		if rv.Field(c.Index).IsNil() {
			continue
		}
		if set != nil {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Path(path...).
				GoType(ct.GoType.String()).
				Detail("union has both %s and %s set", set.Name, c.Name).
				Build()
		}
		set = c
	}
	if set == nil {
		return nil, errors.NilPointer(errors.PhaseEncode, path, ct.GoType.String())
	}

	enum := ct.Shape.Name
	if set.Form == value.UnitVariant {
		return value.UnitCase(enum, set.Name), nil
	}

	payload, err := e.lift(set.Type, rv.Field(set.Index).Elem(), append(append([]string{}, path...), set.Name))
	if err != nil {
		return nil, err
	}
	if s, ok := payload.(value.Struct); ok && set.Form == value.StructVariant {
		s.Name = set.Name
		payload = s
	}
	return value.Enum{Name: enum, Variant: set.Name, Form: set.Form, Payload: payload}, nil
}
