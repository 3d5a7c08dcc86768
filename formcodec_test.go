package formcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

type point struct {
	X    int
	Y    int
	Tags []string
}

func TestMarshalUnmarshal(t *testing.T) {
	in := point{X: 1, Y: -2, Tags: []string{"a"}}

	entries, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := Entries{
		{Name: "x.n", Text: "1"},
		{Name: "y.n", Text: "-2"},
		{Name: "tags[0].s", Text: "a"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	var out point
	if err := Unmarshal(entries, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestItems(t *testing.T) {
	items, err := Items(point{})
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	var inputs int
	for _, it := range items {
		if it.Kind == pathcodec.ItemInput {
			inputs++
		}
	}
	if inputs != 2 {
		t.Errorf("got %d inputs, want 2", inputs)
	}
}

func TestDynamic(t *testing.T) {
	v := value.NewStruct("", value.F("on", value.Bool(false)), value.F("n", value.Float(1.5)))
	shape, err := value.ShapeOf(v)
	if err != nil {
		t.Fatalf("ShapeOf: %v", err)
	}

	entries, err := EncodeValue(v)
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}
	body := entries.Encode()
	if body != "on.b=off&n.n=1.5" {
		t.Errorf("body = %q", body)
	}

	parsed, err := ParseQuery(body)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	got, err := DecodeValue(parsed, shape)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if !value.Equal(v, got) {
		t.Errorf("got %v, want %v", got, v)
	}
}
