package pathcodec

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery_KeepsOrder(t *testing.T) {
	got, err := ParseQuery("b.n=2&a.b=on&a.b=off&s.s=hello+world&q.s=%26")
	if err != nil {
		t.Fatal(err)
	}
	want := Entries{
		{Name: "b.n", Text: "2"},
		{Name: "a.b", Text: "on"},
		{Name: "a.b", Text: "off"},
		{Name: "s.s", Text: "hello world"},
		{Name: "q.s", Text: "&"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuery_BadEscape(t *testing.T) {
	if _, err := ParseQuery("a.s=%zz"); err == nil {
		t.Error("expected error for bad escape")
	}
}

func TestEntries_EncodeParse(t *testing.T) {
	es := Entries{
		{Name: "m[0].key.s", Text: "k 1"},
		{Name: `"odd name".s`, Text: "x=y&z"},
	}
	got, err := ParseQuery(es.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(es, got); diff != "" {
		t.Errorf("Encode/ParseQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries_Names(t *testing.T) {
	es := Entries{{Name: "b.b"}, {Name: "a.n"}, {Name: "b.b"}}
	if diff := cmp.Diff([]string{"b.b", "a.n"}, es.Names()); diff != "" {
		t.Errorf("Names mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, Entries{{"b.b", "x"}, {"a.n", "1"}, {"b.b", "y"}}.Get("b.b")); diff != "" {
		t.Errorf("Get mismatch:\n%s", diff)
	}
}

func TestFromValues(t *testing.T) {
	v := url.Values{
		"z.n": {"1"},
		"a.b": {"on", "off"},
	}
	want := Entries{
		{Name: "a.b", Text: "on"},
		{Name: "a.b", Text: "off"},
		{Name: "z.n", Text: "1"},
	}
	if diff := cmp.Diff(want, FromValues(v)); diff != "" {
		t.Errorf("FromValues mismatch (-want +got):\n%s", diff)
	}
	if got := want.Values(); len(got["a.b"]) != 2 || got["a.b"][0] != "on" {
		t.Errorf("Values() = %v", got)
	}
}
