package value

import (
	"iter"
	"slices"
)

// Value is a closed sum over the shape categories. Only the types in this
// package implement it.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Unit   struct{}
	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	Char   rune
	String string
)

func (Unit) Kind() Kind   { return KindUnit }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Uint) Kind() Kind   { return KindUint }
func (Float) Kind() Kind  { return KindFloat }
func (Char) Kind() Kind   { return KindChar }
func (String) Kind() Kind { return KindString }

func (Unit) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Uint) isValue()   {}
func (Float) isValue()  {}
func (Char) isValue()   {}
func (String) isValue() {}

// Seq is an ordered, variable-length sequence. When Stream is set the
// length is not known up front and Elems is ignored.
type Seq struct {
	Stream iter.Seq[Value]
	Elems  []Value
}

func (Seq) Kind() Kind { return KindSeq }
func (Seq) isValue()   {}

// NewSeq builds a sized sequence.
func NewSeq(elems ...Value) Seq {
	return Seq{Elems: elems}
}

// Unsized wraps an iterator whose length cannot be declared in advance.
func Unsized(it iter.Seq[Value]) Seq {
	return Seq{Stream: it}
}

// Len returns the declared length, or false for an unsized sequence.
func (s Seq) Len() (int, bool) {
	if s.Stream != nil {
		return 0, false
	}
	return len(s.Elems), true
}

// All iterates the elements of either representation.
func (s Seq) All() iter.Seq[Value] {
	if s.Stream != nil {
		return s.Stream
	}
	return slices.Values(s.Elems)
}

// Tuple is an ordered, fixed-length, heterogeneous group.
type Tuple struct {
	Elems []Value
}

func (Tuple) Kind() Kind { return KindTuple }
func (Tuple) isValue()   {}

func NewTuple(elems ...Value) Tuple {
	return Tuple{Elems: elems}
}

type MapEntry struct {
	Key Value
	Val Value
}

// Map holds unique keys. Entry order is the emission order and is not
// significant for equality.
type Map struct {
	Entries []MapEntry
}

func (Map) Kind() Kind { return KindMap }
func (Map) isValue()   {}

// Lookup returns the value stored under key.
func (m Map) Lookup(key Value) (Value, bool) {
	for _, e := range m.Entries {
		if Equal(e.Key, key) {
			return e.Val, true
		}
	}
	return nil, false
}

type Field struct {
	Value Value
	Name  string
}

// Struct is a fixed set of named fields in declaration order.
type Struct struct {
	Name   string
	Fields []Field
}

func (Struct) Kind() Kind { return KindStruct }
func (Struct) isValue()   {}

func NewStruct(name string, fields ...Field) Struct {
	return Struct{Name: name, Fields: fields}
}

func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Get returns the named field.
func (s Struct) Get(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Enum is one variant of a tagged union. Payload is nil for unit variants,
// a Tuple for tuple variants, a Struct for struct variants and any Value for
// newtype variants.
type Enum struct {
	Payload Value
	Name    string
	Variant string
	Form    VariantForm
}

func (Enum) Kind() Kind { return KindEnum }
func (Enum) isValue()   {}

func UnitCase(enum, variant string) Enum {
	return Enum{Name: enum, Variant: variant, Form: UnitVariant}
}

func NewtypeCase(enum, variant string, payload Value) Enum {
	return Enum{Name: enum, Variant: variant, Form: NewtypeVariant, Payload: payload}
}

func TupleCase(enum, variant string, elems ...Value) Enum {
	return Enum{Name: enum, Variant: variant, Form: TupleVariant, Payload: Tuple{Elems: elems}}
}

func StructCase(enum, variant string, fields ...Field) Enum {
	return Enum{Name: enum, Variant: variant, Form: StructVariant, Payload: Struct{Name: variant, Fields: fields}}
}

// Option is present when Value is non-nil.
type Option struct {
	Value Value
}

func (Option) Kind() Kind { return KindOption }
func (Option) isValue()   {}

func None() Option {
	return Option{}
}

func Some(v Value) Option {
	return Option{Value: v}
}

func (o Option) IsSome() bool {
	return o.Value != nil
}
