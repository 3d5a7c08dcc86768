package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/formcodec/value"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    format
		wantErr bool
	}{
		{"a.yaml", formatYAML, false},
		{"a.YML", formatYAML, false},
		{"dir/a.json", formatJSON, false},
		{"a.toml", formatTOML, false},
		{"a.txt", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := formatOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    value.Value
	}{
		{
			name: "yaml keeps key order",
			file: "doc.yaml",
			content: `name: svc
retries: 3
verbose: true
hosts:
  - a
  - b
`,
			want: value.NewStruct("",
				value.F("name", value.String("svc")),
				value.F("retries", value.Int(3)),
				value.F("verbose", value.Bool(true)),
				value.F("hosts", value.NewSeq(value.String("a"), value.String("b"))),
			),
		},
		{
			name:    "json keeps key order",
			file:    "doc.json",
			content: `{"zeta": 1.5, "alpha": [true, null], "mid": {"k": "v"}}`,
			want: value.NewStruct("",
				value.F("zeta", value.Float(1.5)),
				value.F("alpha", value.NewSeq(value.Bool(true), value.None())),
				value.F("mid", value.NewStruct("", value.F("k", value.String("v")))),
			),
		},
		{
			name: "toml follows source position",
			file: "doc.toml",
			content: `title = "x"
count = 2

[owner]
name = "t"
`,
			want: value.NewStruct("",
				value.F("title", value.String("x")),
				value.F("count", value.Int(2)),
				value.F("owner", value.NewStruct("", value.F("name", value.String("t")))),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadDocument(writeTemp(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("loadDocument: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	if _, err := loadDocument(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := loadDocument(writeTemp(t, "doc.ini", "a=1")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := loadDocument(writeTemp(t, "doc.toml", "a = ")); err == nil {
		t.Error("expected error for broken toml")
	}
}

func TestEncodeDocument_JSON(t *testing.T) {
	doc := value.Object{
		{Key: "name", Value: "svc"},
		{Key: "retries", Value: int64(3)},
		{Key: "hosts", Value: []any{"a"}},
	}
	got, err := encodeDocument(doc, formatJSON)
	if err != nil {
		t.Fatalf("encodeDocument: %v", err)
	}
	want := `{
  "name": "svc",
  "retries": 3,
  "hosts": [
    "a"
  ]
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDocument_RoundTrip(t *testing.T) {
	v := value.NewStruct("",
		value.F("name", value.String("svc")),
		value.F("retries", value.Int(3)),
		value.F("ratio", value.Float(0.5)),
		value.F("hosts", value.NewSeq(value.String("a"), value.String("b"))),
		value.F("owner", value.NewStruct("", value.F("name", value.String("t")))),
	)

	for _, f := range []format{formatYAML, formatJSON} {
		data, err := encodeDocument(value.ToAny(v), f)
		if err != nil {
			t.Fatalf("encodeDocument(%d): %v", f, err)
		}
		doc, err := decodeDocument(data, f)
		if err != nil {
			t.Fatalf("decodeDocument(%d): %v\n%s", f, err, data)
		}
		got, err := value.FromAny(doc)
		if err != nil {
			t.Fatalf("FromAny: %v", err)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("format %d round trip (-want +got):\n%s", f, diff)
		}
	}
}

func TestEncodeDocument_TOML(t *testing.T) {
	doc := value.Object{
		{Key: "title", Value: "x"},
		{Key: "gone", Value: nil},
		{Key: "servers", Value: []any{
			value.Object{{Key: "host", Value: "a"}},
			value.Object{{Key: "host", Value: "b"}},
		}},
	}
	data, err := encodeDocument(doc, formatTOML)
	if err != nil {
		t.Fatalf("encodeDocument: %v", err)
	}
	back, err := decodeDocument(data, formatTOML)
	if err != nil {
		t.Fatalf("decodeDocument: %v\n%s", err, data)
	}
	obj := back.(value.Object)

	if _, ok := obj.Get("gone"); ok {
		t.Error("null member should be dropped")
	}
	if title, _ := obj.Get("title"); title != "x" {
		t.Errorf("title = %v", title)
	}
	servers, _ := obj.Get("servers")
	want := []any{
		value.Object{{Key: "host", Value: "a"}},
		value.Object{{Key: "host", Value: "b"}},
	}
	if diff := cmp.Diff(want, servers); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDocument_TOMLNeedsTable(t *testing.T) {
	if _, err := encodeDocument([]any{"a"}, formatTOML); err == nil {
		t.Error("expected error for non-table document")
	}
}
