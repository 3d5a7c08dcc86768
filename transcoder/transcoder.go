package transcoder

import (
	"reflect"

	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

var defaultCompiler = NewCompiler()

// Marshal encodes v with default options and returns its submission set.
func Marshal(v any) (pathcodec.Entries, error) {
	return NewEncoderWithCompiler(defaultCompiler).EncodeEntries(v)
}

// MarshalForm encodes v with default options and returns the full item list.
func MarshalForm(v any) (*pathcodec.Form, error) {
	return NewEncoderWithCompiler(defaultCompiler).Encode(v)
}

// Unmarshal decodes entries into result, which must be a non-nil pointer.
func Unmarshal(entries pathcodec.Entries, result any) error {
	return NewDecoderWithCompiler(defaultCompiler).DecodeInto(entries, result)
}

func Lift(v any) (value.Value, error) {
	return NewEncoderWithCompiler(defaultCompiler).Lift(v)
}

func Lower(v value.Value, result any) error {
	return NewDecoderWithCompiler(defaultCompiler).Lower(v, result)
}

// ShapeFor returns the decoding shape of T.
func ShapeFor[T any]() (*value.Shape, error) {
	return defaultCompiler.Shape(reflect.TypeFor[T]())
}
