package pathcodec

import (
	"net/url"
	"sort"
	"strings"

	"github.com/wippyai/formcodec/errors"
)

// Entry is one (name, raw text) pair as a form submission delivers it.
type Entry struct {
	Name string
	Text string
}

// Entries is an ordered submission set. Several entries may share a name.
type Entries []Entry

// Names returns the distinct names in first-seen order.
func (es Entries) Names() []string {
	seen := make(map[string]struct{}, len(es))
	var out []string
	for _, e := range es {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e.Name)
	}
	return out
}

// Get returns every text submitted under name, in order.
func (es Entries) Get(name string) []string {
	var out []string
	for _, e := range es {
		if e.Name == name {
			out = append(out, e.Text)
		}
	}
	return out
}

// Values converts to url.Values. Order within a name is kept; order across
// names is not.
func (es Entries) Values() url.Values {
	v := make(url.Values, len(es))
	for _, e := range es {
		v[e.Name] = append(v[e.Name], e.Text)
	}
	return v
}

// Encode renders the entries as application/x-www-form-urlencoded text,
// keeping their order.
func (es Entries) Encode() string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.Text))
	}
	return b.String()
}

// FromValues converts url.Values with names in sorted order. The decoder
// only depends on order within a name, which url.Values keeps.
func FromValues(v url.Values) Entries {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	var out Entries
	for _, name := range names {
		for _, text := range v[name] {
			out = append(out, Entry{Name: name, Text: text})
		}
	}
	return out
}

// ParseQuery decodes application/x-www-form-urlencoded text in submission
// order.
func ParseQuery(query string) (Entries, error) {
	var out Entries
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}
		rawName, rawText, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Value(rawName).
				Cause(err).
				Detail("bad form field name").
				Build()
		}
		text, err := url.QueryUnescape(rawText)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path(name).
				Value(rawText).
				Cause(err).
				Detail("bad form field value").
				Build()
		}
		out = append(out, Entry{Name: name, Text: text})
	}
	return out, nil
}
