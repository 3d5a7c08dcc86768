package value

import (
	"strconv"
	"strings"

	"github.com/wippyai/formcodec/errors"
)

// Shape is the structural schema a decoder reconstructs against.
type Shape struct {
	Elem   *Shape
	Key    *Shape
	Name   string
	Elems  []*Shape
	Fields []FieldShape
	Cases  []CaseShape
	Bits   int // numeric width for range checks; 0 means 64
	Kind   Kind
}

type FieldShape struct {
	Shape *Shape
	Name  string
}

type CaseShape struct {
	Payload *Shape
	Name    string
	Form    VariantForm
}

func ScalarShape(k Kind) *Shape {
	return &Shape{Kind: k}
}

func SeqOf(elem *Shape) *Shape {
	return &Shape{Kind: KindSeq, Elem: elem}
}

func TupleOf(elems ...*Shape) *Shape {
	return &Shape{Kind: KindTuple, Elems: elems}
}

func MapOf(key, val *Shape) *Shape {
	return &Shape{Kind: KindMap, Key: key, Elem: val}
}

func OptionOf(elem *Shape) *Shape {
	return &Shape{Kind: KindOption, Elem: elem}
}

func StructOf(name string, fields ...FieldShape) *Shape {
	return &Shape{Kind: KindStruct, Name: name, Fields: fields}
}

func EnumOf(name string, cases ...CaseShape) *Shape {
	return &Shape{Kind: KindEnum, Name: name, Cases: cases}
}

func FieldOf(name string, s *Shape) FieldShape {
	return FieldShape{Name: name, Shape: s}
}

// Field returns the declared field shape.
func (s *Shape) Field(name string) (*Shape, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Shape, true
		}
	}
	return nil, false
}

// String renders the shape for error messages, e.g. "seq<option<int>>".
func (s *Shape) String() string {
	if s == nil {
		return "<nil>"
	}
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *Shape) write(b *strings.Builder) {
	switch s.Kind {
	case KindInt, KindUint, KindFloat:
		b.WriteString(s.Kind.String())
		if s.Bits != 0 && s.Bits != 64 {
			b.WriteString(strconv.Itoa(s.Bits))
		}
	case KindSeq, KindOption:
		b.WriteString(s.Kind.String())
		b.WriteByte('<')
		s.Elem.write(b)
		b.WriteByte('>')
	case KindMap:
		b.WriteString("map<")
		s.Key.write(b)
		b.WriteString(", ")
		s.Elem.write(b)
		b.WriteByte('>')
	case KindTuple:
		b.WriteByte('(')
		for i, e := range s.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		b.WriteByte(')')
	case KindStruct, KindEnum:
		b.WriteString(s.Kind.String())
		if s.Name != "" {
			b.WriteByte(' ')
			b.WriteString(s.Name)
		}
	default:
		b.WriteString(s.Kind.String())
	}
}

// ShapeOf infers a shape from v. Sequences whose elements disagree in shape
// are described as tuples; absent options infer option<unit>, which merges
// with any present sibling.
func ShapeOf(v Value) (*Shape, error) {
	return shapeOf(v, nil)
}

func shapeOf(v Value, path []string) (*Shape, error) {
	switch x := v.(type) {
	case nil:
		return nil, errors.NilPointer(errors.PhaseCompile, path, "value.Value")
	case Unit, Bool, Int, Uint, Float, Char, String:
		return ScalarShape(v.Kind()), nil

	case Seq:
		if _, sized := x.Len(); !sized {
			return nil, errors.UnknownLength(path)
		}
		elems, err := shapesOf(x.Elems, path)
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return SeqOf(ScalarShape(KindUnit)), nil
		}
		merged := elems[0]
		for _, e := range elems[1:] {
			var ok bool
			if merged, ok = mergeShapes(merged, e); !ok {
				return TupleOf(elems...), nil
			}
		}
		return SeqOf(merged), nil

	case Tuple:
		elems, err := shapesOf(x.Elems, path)
		if err != nil {
			return nil, err
		}
		return TupleOf(elems...), nil

	case Map:
		key, val := ScalarShape(KindUnit), ScalarShape(KindUnit)
		for i, e := range x.Entries {
			p := append(path, "["+strconv.Itoa(i)+"]")
			ks, err := shapeOf(e.Key, append(p, "key"))
			if err != nil {
				return nil, err
			}
			vs, err := shapeOf(e.Val, append(p, "value"))
			if err != nil {
				return nil, err
			}
			if i == 0 {
				key, val = ks, vs
				continue
			}
			var kok, vok bool
			key, kok = mergeShapes(key, ks)
			val, vok = mergeShapes(val, vs)
			if !kok || !vok {
				return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
					Path(p...).
					Detail("map entries disagree in shape").
					Build()
			}
		}
		return MapOf(key, val), nil

	case Struct:
		fields := make([]FieldShape, len(x.Fields))
		for i, f := range x.Fields {
			fs, err := shapeOf(f.Value, append(path, f.Name))
			if err != nil {
				return nil, err
			}
			fields[i] = FieldOf(f.Name, fs)
		}
		return StructOf(x.Name, fields...), nil

	case Enum:
		c := CaseShape{Name: x.Variant, Form: x.Form}
		if x.Form != UnitVariant {
			ps, err := shapeOf(x.Payload, append(path, x.Variant))
			if err != nil {
				return nil, err
			}
			c.Payload = ps
		}
		return EnumOf(x.Name, c), nil

	case Option:
		if !x.IsSome() {
			return OptionOf(ScalarShape(KindUnit)), nil
		}
		inner, err := shapeOf(x.Value, path)
		if err != nil {
			return nil, err
		}
		return OptionOf(inner), nil
	}

	return nil, errors.Unsupported(errors.PhaseCompile, "unknown value type")
}

func shapesOf(vs []Value, path []string) ([]*Shape, error) {
	out := make([]*Shape, len(vs))
	for i, v := range vs {
		s, err := shapeOf(v, append(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// placeholder reports whether s was inferred from an empty container.
func placeholder(s *Shape) bool {
	return s.Kind == KindUnit
}

// mergeShapes unifies two inferred shapes, widening numbers and filling
// placeholders left by empty sequences, empty maps and absent options.
func mergeShapes(a, b *Shape) (*Shape, bool) {
	if ShapeEqual(a, b) {
		return a, true
	}
	if a.Kind != b.Kind {
		if a.Kind.IsNumber() && b.Kind.IsNumber() {
			if a.Kind == KindFloat || b.Kind == KindFloat {
				return ScalarShape(KindFloat), true
			}
			return ScalarShape(KindInt), true
		}
		return nil, false
	}

	switch a.Kind {
	case KindSeq, KindOption:
		switch {
		case placeholder(a.Elem):
			return b, true
		case placeholder(b.Elem):
			return a, true
		}
		elem, ok := mergeShapes(a.Elem, b.Elem)
		if !ok {
			return nil, false
		}
		return &Shape{Kind: a.Kind, Elem: elem}, true

	case KindMap:
		if placeholder(a.Key) && placeholder(a.Elem) {
			return b, true
		}
		if placeholder(b.Key) && placeholder(b.Elem) {
			return a, true
		}
		key, kok := mergeShapes(a.Key, b.Key)
		val, vok := mergeShapes(a.Elem, b.Elem)
		if !kok || !vok {
			return nil, false
		}
		return MapOf(key, val), true

	case KindTuple:
		if len(a.Elems) != len(b.Elems) {
			return nil, false
		}
		elems := make([]*Shape, len(a.Elems))
		for i := range a.Elems {
			var ok bool
			if elems[i], ok = mergeShapes(a.Elems[i], b.Elems[i]); !ok {
				return nil, false
			}
		}
		return TupleOf(elems...), true

	case KindStruct:
		if a.Name != b.Name || len(a.Fields) != len(b.Fields) {
			return nil, false
		}
		fields := make([]FieldShape, len(a.Fields))
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return nil, false
			}
			fs, ok := mergeShapes(a.Fields[i].Shape, b.Fields[i].Shape)
			if !ok {
				return nil, false
			}
			fields[i] = FieldOf(a.Fields[i].Name, fs)
		}
		return StructOf(a.Name, fields...), true

	case KindEnum:
		if a.Name != b.Name {
			return nil, false
		}
		cases := append([]CaseShape(nil), a.Cases...)
		for _, c := range b.Cases {
			found := false
			for _, have := range cases {
				if have.Name == c.Name {
					if have.Form != c.Form || !ShapeEqual(have.Payload, c.Payload) {
						return nil, false
					}
					found = true
					break
				}
			}
			if !found {
				cases = append(cases, c)
			}
		}
		return EnumOf(a.Name, cases...), true
	}
	return nil, false
}

// ShapeEqual reports whether two shapes describe the same structure.
func ShapeEqual(a, b *Shape) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Bits != b.Bits {
		return false
	}
	if !ShapeEqual(a.Elem, b.Elem) || !ShapeEqual(a.Key, b.Key) {
		return false
	}
	if len(a.Elems) != len(b.Elems) || len(a.Fields) != len(b.Fields) || len(a.Cases) != len(b.Cases) {
		return false
	}
	for i := range a.Elems {
		if !ShapeEqual(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name || !ShapeEqual(a.Fields[i].Shape, b.Fields[i].Shape) {
			return false
		}
	}
	for i := range a.Cases {
		ac, bc := a.Cases[i], b.Cases[i]
		if ac.Name != bc.Name || ac.Form != bc.Form || !ShapeEqual(ac.Payload, bc.Payload) {
			return false
		}
	}
	return true
}
