package form

import (
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/transcoder"
	"github.com/wippyai/formcodec/value"
)

// codec converts between a form's held value and its flat representation.
type codec[V any] interface {
	encode(v V) (*pathcodec.Form, error)
	decode(entries pathcodec.Entries) (V, error)
	document(v V) (any, error)
}

type typedCodec[T any] struct {
	enc *transcoder.Encoder
	dec *transcoder.Decoder
}

func (c typedCodec[T]) encode(v T) (*pathcodec.Form, error) {
	return c.enc.Encode(v)
}

func (c typedCodec[T]) decode(entries pathcodec.Entries) (T, error) {
	var out T
	err := c.dec.DecodeInto(entries, &out)
	return out, err
}

func (c typedCodec[T]) document(v T) (any, error) {
	lifted, err := c.enc.Lift(v)
	if err != nil {
		return nil, err
	}
	return value.ToAny(lifted), nil
}

// dynamicCodec decodes against a shape fixed when the form was created.
type dynamicCodec struct {
	shape *value.Shape
	enc   *pathcodec.Encoder
	dec   *pathcodec.Decoder
}

func (c dynamicCodec) encode(v value.Value) (*pathcodec.Form, error) {
	return c.enc.Encode(v)
}

func (c dynamicCodec) decode(entries pathcodec.Entries) (value.Value, error) {
	return c.dec.Decode(entries, c.shape)
}

func (c dynamicCodec) document(v value.Value) (any, error) {
	return value.ToAny(v), nil
}
