package formcodec

import (
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/transcoder"
	"github.com/wippyai/formcodec/value"
)

type (
	Entry   = pathcodec.Entry
	Entries = pathcodec.Entries
	Item    = pathcodec.Item
	Value   = value.Value
	Shape   = value.Shape
)

// Marshal flattens a Go value into its form submission set.
func Marshal(v any) (Entries, error) {
	return transcoder.Marshal(v)
}

// Unmarshal rebuilds a Go value from a submission set. result must be a
// non-nil pointer; it is left untouched when decoding fails.
func Unmarshal(entries Entries, result any) error {
	return transcoder.Unmarshal(entries, result)
}

// Items returns the full markup stream for v: groups, labels, inputs and
// remove markers.
func Items(v any) ([]Item, error) {
	f, err := transcoder.MarshalForm(v)
	if err != nil {
		return nil, err
	}
	return f.Items, nil
}

// EncodeValue flattens a dynamic value.
func EncodeValue(v Value) (Entries, error) {
	return pathcodec.NewEncoder().EncodeEntries(v)
}

// DecodeValue rebuilds a dynamic value against shape.
func DecodeValue(entries Entries, shape *Shape) (Value, error) {
	return pathcodec.NewDecoder().Decode(entries, shape)
}

// ParseQuery reads an urlencoded request body in submission order.
func ParseQuery(body string) (Entries, error) {
	return pathcodec.ParseQuery(body)
}
