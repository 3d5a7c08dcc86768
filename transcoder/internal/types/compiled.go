package types

import (
	"reflect"

	"github.com/wippyai/formcodec/value"
)

type CompiledType struct {
	GoType reflect.Type
	Shape  *value.Shape
	Elem   *CompiledType // slice, array and pointer elements, map values
	Key    *CompiledType
	Cases  []Case
	Fields []Field
	Kind   value.Kind
	Union  bool // enum backed by a struct of pointer fields
}

type Field struct {
	Type  *CompiledType
	Name  string
	Index int
}

// Case is one enum variant. Index is the pointer field holding the payload
// for unions and -1 for string enums.
type Case struct {
	Type  *CompiledType
	Name  string
	Index int
	Form  value.VariantForm
}

func (ct *CompiledType) IsScalar() bool {
	return ct.Kind.IsScalar()
}

func (ct *CompiledType) Field(name string) (*Field, bool) {
	for i := range ct.Fields {
		if ct.Fields[i].Name == name {
			return &ct.Fields[i], true
		}
	}
	return nil, false
}

func (ct *CompiledType) Case(name string) (*Case, bool) {
	for i := range ct.Cases {
		if ct.Cases[i].Name == name {
			return &ct.Cases[i], true
		}
	}
	return nil, false
}
