package transcoder

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

var exampleEntries = pathcodec.Entries{
	{Name: "amount.n", Text: "19"},
	{Name: "vector[0].n", Text: "1"},
	{Name: "vector[1].n", Text: "2"},
	{Name: "vector[2].n", Text: "3"},
	{Name: "vector[3].n", Text: "4"},
	{Name: "vector[4].n", Text: "5"},
	{Name: "string.s", Text: "Hello!"},
	{Name: "boolean.b", Text: "on"},
	{Name: "boolean.b", Text: "off"},
	{Name: "nested.tuple[0].n", Text: "19"},
	{Name: "nested.tuple[1].n", Text: "67"},
}

func TestMarshal_Example(t *testing.T) {
	got, err := Marshal(exampleGo())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if diff := cmp.Diff(exampleEntries, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_Example(t *testing.T) {
	var got Example
	if err := Unmarshal(exampleEntries, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(exampleGo(), got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_Unchecked(t *testing.T) {
	es := append(pathcodec.Entries{}, exampleEntries...)
	es = append(es[:7], es[8:]...) // drop the checked box

	var got Example
	if err := Unmarshal(es, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Boolean {
		t.Error("boolean decoded as true without the checkbox")
	}
}

func roundTrip[T any](t *testing.T, in T) {
	t.Helper()
	es, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out T
	if err := Unmarshal(es, &out); err != nil {
		t.Fatalf("Unmarshal(%v): %v", es, err)
	}
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

type Inventory struct {
	Counts map[int]string
	Grid   [2][2]int
	Flags  []bool
	Ratio  float32
	Small  uint8
}

func TestRoundTrip(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		roundTrip(t, exampleGo())
	})

	t.Run("profile", func(t *testing.T) {
		roundTrip(t, Profile{
			Name:     "Ada Lovelace",
			Initial:  'é',
			Age:      -3,
			Scores:   map[string]int{"b": 2, "a": 1, "a b": -4},
			Nickname: ptr("Ada"),
			Manager:  &Profile{Name: "Grace", Initial: 'G', Favorite: "red"},
			Favorite: "green",
			Shapes: []Figure{
				{Dot: &struct{}{}},
				{Circle: ptr(2.5)},
				{Line: &[2]float64{1, -2}},
				{Rect: &Rect{W: 3, H: 4}},
				{Label: ptr("hi")},
			},
			Tags: []string{"x", "y z"},
		})
	})

	t.Run("inventory", func(t *testing.T) {
		roundTrip(t, Inventory{
			Counts: map[int]string{3: "c", 1: "a", -2: "neg"},
			Grid:   [2][2]int{{1, 2}, {3, 4}},
			Flags:  []bool{true, false, true},
			Ratio:  0.5,
			Small:  255,
		})
	})

	t.Run("tree", func(t *testing.T) {
		roundTrip(t, Tree{Value: 1, Children: []Tree{
			{Value: 2},
			{Value: 3, Children: []Tree{{Value: 4}}},
		}})
	})

	t.Run("pointer", func(t *testing.T) {
		roundTrip(t, &Rect{W: 1.5, H: -1})
	})
}

func TestMarshal_MapOrder(t *testing.T) {
	type scores struct {
		By map[string]int
	}
	got, err := Marshal(scores{By: map[string]int{"b": 2, "c": 3, "a": 1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := pathcodec.Entries{
		{Name: "by[0].key.s", Text: "a"},
		{Name: "by[0].value.n", Text: "1"},
		{Name: "by[1].key.s", Text: "b"},
		{Name: "by[1].value.n", Text: "2"},
		{Name: "by[2].key.s", Text: "c"},
		{Name: "by[2].value.n", Text: "3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLift(t *testing.T) {
	tests := []struct {
		in   any
		want value.Value
		name string
	}{
		{
			name: "example",
			in:   exampleGo(),
			want: value.NewStruct("Example",
				value.F("amount", value.Uint(19)),
				value.F("vector", value.NewSeq(value.Uint(1), value.Uint(2), value.Uint(3), value.Uint(4), value.Uint(5))),
				value.F("string", value.String("Hello!")),
				value.F("boolean", value.Bool(true)),
				value.F("nested", value.NewStruct("NestedExample",
					value.F("tuple", value.NewTuple(value.Uint(19), value.Uint(67))),
				)),
			),
		},
		{name: "enum", in: Color("blue"), want: value.UnitCase("Color", "blue")},
		{name: "unit case", in: Figure{Dot: &struct{}{}}, want: value.UnitCase("Figure", "Dot")},
		{name: "newtype case", in: Figure{Circle: ptr(1.0)}, want: value.NewtypeCase("Figure", "Circle", value.Float(1))},
		{name: "tuple case", in: Figure{Line: &[2]float64{1, 2}}, want: value.TupleCase("Figure", "Line", value.Float(1), value.Float(2))},
		{
			name: "struct case",
			in:   Figure{Rect: &Rect{W: 3, H: 4}},
			want: value.StructCase("Figure", "rect", value.F("w", value.Float(3)), value.F("h", value.Float(4))),
		},
		{name: "nil option", in: struct{ P *int }{}, want: value.NewStruct("", value.F("p", value.None()))},
		{name: "pointer", in: ptr(int16(-4)), want: value.Int(-4)},
		{name: "unit", in: struct{}{}, want: value.Unit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lift(tt.in)
			if err != nil {
				t.Fatalf("Lift: %v", err)
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("got %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestLift_Errors(t *testing.T) {
	type letter struct {
		R rune `form:",char"`
	}

	tests := []struct {
		in   any
		name string
		kind errors.Kind
	}{
		{name: "nil", in: nil, kind: errors.KindNilPointer},
		{name: "nil pointer", in: (*Example)(nil), kind: errors.KindNilPointer},
		{name: "unknown enum case", in: Color("purple"), kind: errors.KindInvalidVariant},
		{name: "empty union", in: Figure{}, kind: errors.KindNilPointer},
		{name: "two union cases", in: Figure{Dot: &struct{}{}, Label: ptr("x")}, kind: errors.KindInvalidInput},
		{name: "invalid rune", in: letter{R: -1}, kind: errors.KindInvalidInput},
		{name: "unsupported", in: make(chan int), kind: errors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lift(tt.in)
			if got := errKind(t, err); got != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	withExtra := append(append(pathcodec.Entries{}, exampleEntries...), pathcodec.Entry{Name: "bogus.s", Text: "x"})

	tests := []struct {
		name    string
		entries pathcodec.Entries
		kind    errors.Kind
	}{
		{name: "unknown field", entries: withExtra, kind: errors.KindFieldUnknown},
		{name: "missing field", entries: exampleEntries[:1], kind: errors.KindFieldMissing},
		{name: "bad number", entries: pathcodec.Entries{{Name: "amount.n", Text: "-1"}}, kind: errors.KindParseFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exampleGo()
			got.Text = "untouched"
			err := Unmarshal(tt.entries, &got)
			if k := errKind(t, err); k != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", k, tt.kind, err)
			}
			if got.Text != "untouched" || got.Amount != 19 {
				t.Errorf("target modified on error: %+v", got)
			}
		})
	}
}

func TestUnmarshal_Target(t *testing.T) {
	if k := errKind(t, Unmarshal(exampleEntries, Example{})); k != errors.KindTypeMismatch {
		t.Errorf("non-pointer: %s", k)
	}
	if k := errKind(t, Unmarshal(exampleEntries, (*Example)(nil))); k != errors.KindNilPointer {
		t.Errorf("nil pointer: %s", k)
	}
}

func TestUnmarshal_RangeChecked(t *testing.T) {
	type small struct {
		Age int8
	}
	var got small
	err := Unmarshal(pathcodec.Entries{{Name: "age.n", Text: "300"}}, &got)
	if k := errKind(t, err); k != errors.KindParseFailure {
		t.Errorf("kind = %s, want parse_failure", k)
	}
}

func TestLower(t *testing.T) {
	var fig Figure
	if err := Lower(value.TupleCase("Figure", "Line", value.Float(1), value.Float(2)), &fig); err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if fig.Line == nil || *fig.Line != [2]float64{1, 2} || fig.Dot != nil {
		t.Errorf("got %+v", fig)
	}

	// switching variants clears the previous case
	if err := Lower(value.UnitCase("Figure", "Dot"), &fig); err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if fig.Dot == nil || fig.Line != nil {
		t.Errorf("got %+v", fig)
	}

	var c Color
	if err := Lower(value.UnitCase("Color", "green"), &c); err != nil || c != "green" {
		t.Errorf("Lower(green) = %q, %v", c, err)
	}
}

func TestLower_Errors(t *testing.T) {
	var (
		i8  int8
		n   int
		c   Color
		fig Figure
		arr [2]int
	)

	tests := []struct {
		v      value.Value
		target any
		name   string
		kind   errors.Kind
	}{
		{name: "overflow", v: value.Int(300), target: &i8, kind: errors.KindOverflow},
		{name: "kind mismatch", v: value.String("x"), target: &n, kind: errors.KindTypeMismatch},
		{name: "uint into int", v: value.Uint(1), target: &n, kind: errors.KindTypeMismatch},
		{name: "unknown enum case", v: value.UnitCase("Color", "purple"), target: &c, kind: errors.KindInvalidVariant},
		{name: "wrong variant form", v: value.NewtypeCase("Figure", "Dot", value.Int(1)), target: &fig, kind: errors.KindInvalidVariant},
		{name: "tuple length", v: value.NewTuple(value.Int(1)), target: &arr, kind: errors.KindOutOfBounds},
		{name: "missing field", v: value.NewStruct("Rect", value.F("w", value.Float(1))), target: &Rect{}, kind: errors.KindFieldMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Lower(tt.v, tt.target)
			if got := errKind(t, err); got != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestShapeFor(t *testing.T) {
	s, err := ShapeFor[Profile]()
	if err != nil {
		t.Fatalf("ShapeFor: %v", err)
	}
	want := []string{"string", "char", "int8", "map<string, int>", "option<string>", "option<struct Profile>", "enum Color", "seq<enum Figure>", "seq<string>"}
	var got []string
	for _, f := range s.Fields {
		got = append(got, f.Shape.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field shapes mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoder_Options(t *testing.T) {
	enc := NewEncoderWithOptions(nil, pathcodec.Options{ActiveSentinel: "yes", FallbackSentinel: "no"})
	es, err := enc.EncodeEntries(struct{ On bool }{On: true})
	if err != nil {
		t.Fatalf("EncodeEntries: %v", err)
	}
	want := pathcodec.Entries{{Name: "on.b", Text: "yes"}, {Name: "on.b", Text: "no"}}
	if diff := cmp.Diff(want, es); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	dec := NewDecoderWithOptions(nil, pathcodec.Options{ActiveSentinel: "yes", FallbackSentinel: "no"})
	var got struct{ On bool }
	if err := dec.DecodeInto(es, &got); err != nil || !got.On {
		t.Errorf("DecodeInto = %+v, %v", got, err)
	}
}

func TestConcurrentMarshal(t *testing.T) {
	c := NewCompiler()
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			es, err := NewEncoderWithCompiler(c).EncodeEntries(exampleGo())
			if err != nil {
				errs <- err
				return
			}
			var out Example
			if err := NewDecoderWithCompiler(c).DecodeInto(es, &out); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
