package transcoder

import (
	"reflect"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

// Decoder rebuilds Go values from form entries via value.Value.
type Decoder struct {
	compiler *Compiler
	codec    *pathcodec.Decoder
}

func NewDecoder() *Decoder {
	return &Decoder{
		compiler: NewCompiler(),
		codec:    pathcodec.NewDecoder(),
	}
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c, codec: pathcodec.NewDecoder()}
}

// NewDecoderWithOptions uses the given codec options; a nil compiler gets a
// fresh one.
func NewDecoderWithOptions(c *Compiler, opts pathcodec.Options) *Decoder {
	if c == nil {
		c = NewCompiler()
	}
	return &Decoder{compiler: c, codec: pathcodec.NewDecoderWithOptions(opts)}
}

// DecodeInto decodes a complete submission set into result, which must be
// a non-nil pointer. result is left untouched on error.
func (d *Decoder) DecodeInto(entries pathcodec.Entries, result any) error {
	rv, err := targetOf(result)
	if err != nil {
		return err
	}

	ct, err := d.compiler.Compile(rv.Type())
	if err != nil {
		return err
	}

	v, err := d.codec.Decode(entries, ct.Shape)
	if err != nil {
		return err
	}
	return d.store(ct, v, rv)
}

// Lower writes v into result, which must be a non-nil pointer. result is
// left untouched on error.
func (d *Decoder) Lower(v value.Value, result any) error {
	rv, err := targetOf(result)
	if err != nil {
		return err
	}

	ct, err := d.compiler.Compile(rv.Type())
	if err != nil {
		return err
	}
	return d.store(ct, v, rv)
}

// store lowers into a fresh value and assigns it only on success. A target
// that is itself a pointer receives a newly allocated pointee.
func (d *Decoder) store(ct *CompiledType, v value.Value, rv reflect.Value) error {
	fresh := reflect.New(ct.GoType).Elem()
	if err := d.lower(ct, v, fresh, nil); err != nil {
		return err
	}
	if rv.Type() != ct.GoType {
		p := reflect.New(ct.GoType)
		p.Elem().Set(fresh)
		fresh = p
	}
	rv.Set(fresh)
	return nil
}

func targetOf(result any) (reflect.Value, error) {
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Pointer {
		return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Detail("result must be a pointer, got %T", result).
			Build()
	}
	if rv.IsNil() {
		return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindNilPointer).
			Detail("result pointer is nil").
			Build()
	}
	return rv.Elem(), nil
}

func mismatch(path []string, ct *CompiledType, v value.Value) error {
	got := "nil"
	if v != nil {
		got = v.Kind().String()
	}
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path(path...).
		GoType(ct.GoType.String()).
		ShapeType(ct.Shape.String()).
		Detail("cannot store %s value", got).
		Build()
}

func (d *Decoder) lower(ct *CompiledType, v value.Value, rv reflect.Value, path []string) error {
	switch ct.Kind {
	case value.KindUnit:
		if _, ok := v.(value.Unit); !ok {
			return mismatch(path, ct, v)
		}
		return nil

	case value.KindBool:
		b, ok := v.(value.Bool)
		if !ok {
			return mismatch(path, ct, v)
		}
		rv.SetBool(bool(b))
		return nil

	case value.KindInt:
		n, ok := v.(value.Int)
		if !ok {
			return mismatch(path, ct, v)
		}
		if rv.OverflowInt(int64(n)) {
			return errors.Overflow(errors.PhaseDecode, path, int64(n), ct.GoType.String())
		}
		rv.SetInt(int64(n))
		return nil

	case value.KindUint:
		n, ok := v.(value.Uint)
		if !ok {
			return mismatch(path, ct, v)
		}
		if rv.OverflowUint(uint64(n)) {
			return errors.Overflow(errors.PhaseDecode, path, uint64(n), ct.GoType.String())
		}
		rv.SetUint(uint64(n))
		return nil

	case value.KindFloat:
		f, ok := v.(value.Float)
		if !ok {
			return mismatch(path, ct, v)
		}
		if rv.OverflowFloat(float64(f)) {
			return errors.Overflow(errors.PhaseDecode, path, float64(f), ct.GoType.String())
		}
		rv.SetFloat(float64(f))
		return nil

	case value.KindChar:
		r, ok := v.(value.Char)
		if !ok {
			return mismatch(path, ct, v)
		}
		rv.SetInt(int64(r))
		return nil

	case value.KindString:
		s, ok := v.(value.String)
		if !ok {
			return mismatch(path, ct, v)
		}
		rv.SetString(string(s))
		return nil

	case value.KindSeq:
		s, ok := v.(value.Seq)
		if !ok {
			return mismatch(path, ct, v)
		}
		if _, sized := s.Len(); !sized {
			return errors.New(errors.PhaseDecode, errors.KindUnknownLength).Path(path...).Build()
		}
		out := reflect.MakeSlice(ct.GoType, len(s.Elems), len(s.Elems))
		for i, e := range s.Elems {
			if err := d.lower(ct.Elem, e, out.Index(i), append(append([]string{}, path...), indexSeg(i))); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil

	case value.KindTuple:
		t, ok := v.(value.Tuple)
		if !ok {
			return mismatch(path, ct, v)
		}
		if len(t.Elems) != rv.Len() {
			return errors.OutOfBounds(errors.PhaseDecode, path, len(t.Elems), rv.Len())
		}
		for i, e := range t.Elems {
			if err := d.lower(ct.Elem, e, rv.Index(i), append(append([]string{}, path...), indexSeg(i))); err != nil {
				return err
			}
		}
		return nil

	case value.KindMap:
		return d.lowerMap(ct, v, rv, path)

	case value.KindOption:
		o, ok := v.(value.Option)
		if !ok {
			return mismatch(path, ct, v)
		}
		if !o.IsSome() {
			rv.SetZero()
			return nil
		}
		p := reflect.New(ct.GoType.Elem())
		if err := d.lower(ct.Elem, o.Value, p.Elem(), path); err != nil {
			return err
		}
		rv.Set(p)
		return nil

	case value.KindStruct:
		s, ok := v.(value.Struct)
		if !ok {
			return mismatch(path, ct, v)
		}
		return d.lowerFields(ct, s, rv, path)

	case value.KindEnum:
		en, ok := v.(value.Enum)
		if !ok {
			return mismatch(path, ct, v)
		}
		if ct.Union {
			return d.lowerUnion(ct, en, rv, path)
		}
		if _, ok := ct.Case(en.Variant); !ok || en.Form != value.UnitVariant {
			return errors.InvalidVariant(errors.PhaseDecode, path, en.Variant, ct.Shape.String())
		}
		rv.SetString(en.Variant)
		return nil
	}

	return errors.Unsupported(errors.PhaseDecode, "compiled kind "+ct.Kind.String())
}

func (d *Decoder) lowerMap(ct *CompiledType, v value.Value, rv reflect.Value, path []string) error {
	m, ok := v.(value.Map)
	if !ok {
		return mismatch(path, ct, v)
	}
	out := reflect.MakeMapWithSize(ct.GoType, len(m.Entries))
	for i, e := range m.Entries {
		ep := append(append([]string{}, path...), indexSeg(i))
		k := reflect.New(ct.GoType.Key()).Elem()
		if err := d.lower(ct.Key, e.Key, k, append(ep, "key")); err != nil {
			return err
		}
		val := reflect.New(ct.GoType.Elem()).Elem()
		if err := d.lower(ct.Elem, e.Val, val, append(ep, "value")); err != nil {
			return err
		}
		if out.MapIndex(k).IsValid() {
			return errors.MalformedMap(errors.PhaseDecode, ep, "duplicate key")
		}
		out.SetMapIndex(k, val)
	}
	rv.Set(out)
	return nil
}

func (d *Decoder) lowerFields(ct *CompiledType, s value.Struct, rv reflect.Value, path []string) error {
	for _, f := range ct.Fields {
		fv, ok := s.Get(f.Name)
		if !ok {
			return errors.FieldMissing(errors.PhaseDecode, path, f.Name)
		}
		if err := d.lower(f.Type, fv, rv.Field(f.Index), append(append([]string{}, path...), f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) lowerUnion(ct *CompiledType, en value.Enum, rv reflect.Value, path []string) error {
	c, ok := ct.Case(en.Variant)
	if !ok || c.Form != en.Form {
		return errors.InvalidVariant(errors.PhaseDecode, path, en.Variant, ct.Shape.String())
	}

	field := rv.Field(c.Index)
	p := reflect.New(field.Type().Elem())
	if c.Form != value.UnitVariant {
		if err := d.lower(c.Type, en.Payload, p.Elem(), append(append([]string{}, path...), c.Name)); err != nil {
			return err
		}
	}

	rv.SetZero()
	field.Set(p)
	return nil
}
