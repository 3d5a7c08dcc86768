package transcoder

import (
	"reflect"
	"strings"
	"unicode"
)

// fieldTag is the parsed form:"name,opts" struct tag.
type fieldTag struct {
	name string
	skip bool
	char bool
}

func parseTag(f reflect.StructField) fieldTag {
	tag, ok := f.Tag.Lookup("form")
	if !ok {
		return fieldTag{}
	}
	if tag == "-" {
		return fieldTag{skip: true}
	}
	name, opts, _ := strings.Cut(tag, ",")
	t := fieldTag{name: name}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "char" {
			t.char = true
		}
	}
	return t
}

// fieldName resolves the path segment for a struct field: the tag name if
// given, otherwise the snake_case Go name.
func fieldName(f reflect.StructField, tag fieldTag) string {
	if tag.name != "" {
		return tag.name
	}
	return toSnakeCase(f.Name)
}

// caseName resolves a union case name: the tag name if given, otherwise the
// Go field name unchanged.
func caseName(f reflect.StructField, tag fieldTag) string {
	if tag.name != "" {
		return tag.name
	}
	return f.Name
}

// toSnakeCase converts Go identifiers, keeping acronyms together:
// FirstName -> first_name, HTTPServer -> http_server, ID -> id.
func toSnakeCase(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 {
				prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if prevLower || (nextLower && unicode.IsUpper(rs[i-1])) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
