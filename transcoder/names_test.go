package transcoder

import (
	"reflect"
	"testing"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"FirstName", "first_name"},
		{"HTTPServer", "http_server"},
		{"ID", "id"},
		{"UserID", "user_id"},
		{"X", "x"},
		{"already_snake", "already_snake"},
		{"Amount", "amount"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	type tagged struct {
		Plain   int
		Renamed int  `form:"alias"`
		Skipped int  `form:"-"`
		Letter  rune `form:",char"`
		Both    rune `form:"ch,char"`
	}
	rt := reflect.TypeFor[tagged]()

	tests := []struct {
		field string
		want  fieldTag
		name  string
	}{
		{field: "Plain", want: fieldTag{}, name: "plain"},
		{field: "Renamed", want: fieldTag{name: "alias"}, name: "alias"},
		{field: "Skipped", want: fieldTag{skip: true}, name: "skipped"},
		{field: "Letter", want: fieldTag{char: true}, name: "letter"},
		{field: "Both", want: fieldTag{name: "ch", char: true}, name: "ch"},
	}
	for _, tt := range tests {
		f, _ := rt.FieldByName(tt.field)
		got := parseTag(f)
		if got != tt.want {
			t.Errorf("parseTag(%s) = %+v, want %+v", tt.field, got, tt.want)
		}
		if tt.want.skip {
			continue
		}
		if n := fieldName(f, got); n != tt.name {
			t.Errorf("fieldName(%s) = %q, want %q", tt.field, n, tt.name)
		}
	}
}

func TestCaseName(t *testing.T) {
	type u struct {
		Circle *float64
		Rect   *struct{} `form:"rect"`
	}
	rt := reflect.TypeFor[u]()
	for field, want := range map[string]string{"Circle": "Circle", "Rect": "rect"} {
		f, _ := rt.FieldByName(field)
		if got := caseName(f, parseTag(f)); got != want {
			t.Errorf("caseName(%s) = %q, want %q", field, got, want)
		}
	}
}
