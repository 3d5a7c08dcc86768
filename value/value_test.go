package value

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/formcodec/errors"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		want string
		k    Kind
	}{
		{"unit", KindUnit},
		{"bool", KindBool},
		{"int", KindInt},
		{"string", KindString},
		{"seq", KindSeq},
		{"map", KindMap},
		{"enum", KindEnum},
		{"option", KindOption},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
	if !KindChar.IsScalar() || KindSeq.IsScalar() {
		t.Error("IsScalar boundary wrong")
	}
	if !KindUint.IsNumber() || KindChar.IsNumber() {
		t.Error("IsNumber boundary wrong")
	}
}

func TestSeq_Len(t *testing.T) {
	s := NewSeq(Int(1), Int(2))
	if n, ok := s.Len(); !ok || n != 2 {
		t.Errorf("Len() = %d, %v", n, ok)
	}

	u := Unsized(slices.Values([]Value{Int(1)}))
	if _, ok := u.Len(); ok {
		t.Error("unsized sequence reported a length")
	}
	if got := slices.Collect(u.All()); len(got) != 1 {
		t.Errorf("All() yielded %d elements", len(got))
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		name string
		want bool
	}{
		{name: "ints", a: Int(1), b: Int(1), want: true},
		{name: "int vs uint", a: Int(1), b: Uint(1), want: false},
		{name: "nan", a: Float(math.NaN()), b: Float(math.NaN()), want: true},
		{name: "nil", a: nil, b: nil, want: true},
		{name: "nil vs unit", a: nil, b: Unit{}, want: false},
		{
			name: "sized vs unsized",
			a:    NewSeq(String("a")),
			b:    Unsized(slices.Values([]Value{String("a")})),
			want: true,
		},
		{
			name: "map order ignored",
			a:    Map{Entries: []MapEntry{{String("a"), Int(1)}, {String("b"), Int(2)}}},
			b:    Map{Entries: []MapEntry{{String("b"), Int(2)}, {String("a"), Int(1)}}},
			want: true,
		},
		{
			name: "map value differs",
			a:    Map{Entries: []MapEntry{{String("a"), Int(1)}}},
			b:    Map{Entries: []MapEntry{{String("a"), Int(2)}}},
			want: false,
		},
		{
			name: "struct field order",
			a:    NewStruct("P", F("x", Int(1)), F("y", Int(2))),
			b:    NewStruct("P", F("y", Int(2)), F("x", Int(1))),
			want: false,
		},
		{name: "none vs some", a: None(), b: Some(Int(1)), want: false},
		{name: "unit variants", a: UnitCase("E", "A"), b: UnitCase("E", "A"), want: true},
		{name: "variant names", a: UnitCase("E", "A"), b: UnitCase("E", "B"), want: false},
		{
			name: "tuple variants",
			a:    TupleCase("E", "T", Int(1), String("x")),
			b:    TupleCase("E", "T", Int(1), String("x")),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeOf(t *testing.T) {
	tests := []struct {
		v    Value
		name string
		want string
	}{
		{name: "scalar", v: Float(1), want: "float"},
		{name: "empty seq", v: NewSeq(), want: "seq<unit>"},
		{name: "widened numbers", v: NewSeq(Int(1), Float(2.5)), want: "seq<float>"},
		{name: "heterogeneous seq", v: NewSeq(Int(1), String("x")), want: "(int, string)"},
		{name: "options fill in", v: NewSeq(None(), Some(Int(3))), want: "seq<option<int>>"},
		{name: "nested empties", v: NewSeq(NewSeq(), NewSeq(Bool(true))), want: "seq<seq<bool>>"},
		{name: "map", v: Map{Entries: []MapEntry{{String("k"), Int(5)}}}, want: "map<string, int>"},
		{name: "struct", v: NewStruct("Point", F("x", Int(1))), want: "struct Point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ShapeOf(tt.v)
			if err != nil {
				t.Fatalf("ShapeOf: %v", err)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestShapeOf_Errors(t *testing.T) {
	_, err := ShapeOf(Unsized(slices.Values([]Value{Int(1)})))
	if !stderrors.Is(err, errors.ErrUnknownLength) {
		t.Errorf("unsized seq: got %v", err)
	}

	mixed := Map{Entries: []MapEntry{{String("a"), Int(1)}, {String("b"), String("x")}}}
	_, err = ShapeOf(mixed)
	var fe *errors.Error
	if !stderrors.As(err, &fe) || fe.Kind != errors.KindUnsupported {
		t.Errorf("mixed map: got %v", err)
	}
}

func TestShapeOf_StructFields(t *testing.T) {
	s, err := ShapeOf(NewStruct("", F("a", Bool(true)), F("b", None())))
	if err != nil {
		t.Fatal(err)
	}
	want := StructOf("", FieldOf("a", ScalarShape(KindBool)), FieldOf("b", OptionOf(ScalarShape(KindUnit))))
	if !ShapeEqual(s, want) {
		t.Errorf("got %s", s)
	}
	if fs, ok := s.Field("a"); !ok || fs.Kind != KindBool {
		t.Errorf("Field(a) = %v, %v", fs, ok)
	}
	if _, ok := s.Field("zz"); ok {
		t.Error("Field(zz) found")
	}
}

func TestFits(t *testing.T) {
	if !FitsInt(127, 8) || FitsInt(128, 8) || !FitsInt(-128, 8) || FitsInt(-129, 8) {
		t.Error("FitsInt 8-bit bounds")
	}
	if !FitsUint(255, 8) || FitsUint(256, 8) || !FitsUint(math.MaxUint64, 0) {
		t.Error("FitsUint bounds")
	}
	if FitsFloat(1e300, 32) || !FitsFloat(1e300, 64) {
		t.Error("FitsFloat bounds")
	}
}

func TestCoerce(t *testing.T) {
	if v, ok := CoerceInt64(float64(3)); !ok || v != 3 {
		t.Errorf("CoerceInt64(3.0) = %d, %v", v, ok)
	}
	if _, ok := CoerceInt64(3.5); ok {
		t.Error("CoerceInt64(3.5) accepted")
	}
	if _, ok := CoerceUint64(int64(-1)); ok {
		t.Error("CoerceUint64(-1) accepted")
	}
	if v, ok := CoerceFloat64(uint8(7)); !ok || v != 7 {
		t.Errorf("CoerceFloat64(uint8) = %v, %v", v, ok)
	}
}

func TestFromAny(t *testing.T) {
	doc := Object{
		{Key: "name", Value: "box"},
		{Key: "size", Value: uint64(3)},
		{Key: "tags", Value: []any{"a", "b"}},
		{Key: "extra", Value: nil},
		{Key: "ratio", Value: json.Number("0.5")},
	}
	got, err := FromAny(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := NewStruct("",
		F("name", String("box")),
		F("size", Int(3)),
		F("tags", NewSeq(String("a"), String("b"))),
		F("extra", None()),
		F("ratio", Float(0.5)),
	)
	if !Equal(got, want) {
		t.Errorf("FromAny = %#v", got)
	}
}

func TestFromAny_SortsPlainMaps(t *testing.T) {
	got, err := FromAny(map[string]any{"b": true, "a": false})
	if err != nil {
		t.Fatal(err)
	}
	s := got.(Struct)
	if s.Fields[0].Name != "a" || s.Fields[1].Name != "b" {
		t.Errorf("fields not sorted: %v", s.Fields)
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	var fe *errors.Error
	if !stderrors.As(err, &fe) || fe.Kind != errors.KindUnsupported {
		t.Errorf("got %v", err)
	}
}

func TestToAny(t *testing.T) {
	v := NewStruct("",
		F("n", Int(1)),
		F("c", Char('x')),
		F("opt", None()),
		F("m", Map{Entries: []MapEntry{{Int(1), String("one")}}}),
		F("e", UnitCase("Color", "Red")),
		F("t", TupleCase("Shape", "Line", Int(1), Int(2))),
	)
	got := ToAny(v)
	want := Object{
		{Key: "n", Value: int64(1)},
		{Key: "c", Value: "x"},
		{Key: "opt", Value: nil},
		{Key: "m", Value: []any{Object{{Key: "key", Value: int64(1)}, {Key: "value", Value: "one"}}}},
		{Key: "e", Value: "Red"},
		{Key: "t", Value: Object{{Key: "Line", Value: []any{int64(1), int64(2)}}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}

func TestObject_MarshalJSON(t *testing.T) {
	obj := Object{{Key: "z", Value: 1}, {Key: "a", Value: []any{"x"}}}
	b, err := json.Marshal(obj)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"z":1,"a":["x"]}` {
		t.Errorf("got %s", b)
	}
}
