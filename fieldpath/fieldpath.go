package fieldpath

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Suffix is the one-letter type tag terminating every leaf path.
type Suffix byte

const (
	SuffixNone   Suffix = 0
	SuffixBool   Suffix = 'b'
	SuffixNumber Suffix = 'n'
	SuffixString Suffix = 's'
)

func (s Suffix) String() string {
	switch s {
	case SuffixBool:
		return "bool"
	case SuffixNumber:
		return "number"
	case SuffixString:
		return "string"
	default:
		return "none"
	}
}

func (s Suffix) valid() bool {
	return s == SuffixBool || s == SuffixNumber || s == SuffixString
}

// Segment is a field name or a sequence index.
type Segment struct {
	Name    string
	Index   int
	isIndex bool
}

// Reserved segments distinguishing the two halves of a map entry.
var (
	KeySegment   = Field("key")
	ValueSegment = Field("value")
)

func Field(name string) Segment {
	return Segment{Name: name}
}

func Index(i int) Segment {
	return Segment{Index: i, isIndex: true}
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

// String renders a single segment the way it appears inside a path.
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if needsQuote(s.Name) {
		return strconv.Quote(s.Name)
	}
	return s.Name
}

// Path is an ordered list of segments plus the leaf suffix. A Path with
// SuffixNone addresses an interior node.
type Path struct {
	Segments []Segment
	Suffix   Suffix
}

func (p Path) String() string {
	return Render(p)
}

// Strings renders each segment separately, for error paths.
func Strings(segs []Segment) []string {
	if len(segs) == 0 {
		return nil
	}
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.String()
	}
	return out
}

// Render produces the textual form of p. Index segments attach to the
// preceding segment; fields and the suffix are separated by dots.
func Render(p Path) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		if !seg.isIndex && b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	if p.Suffix != SuffixNone {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteByte(byte(p.Suffix))
	}
	return b.String()
}

func needsQuote(name string) bool {
	if name == "" {
		return true
	}
	for _, r := range name {
		switch r {
		case '.', '[', ']', '"', '\\':
			return true
		}
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}

type parseState uint8

const (
	stateStart parseState = iota
	stateAfterDot
	stateAfterToken
)

// Parse is the inverse of Render for leaf paths: the final dot-separated
// token must be a bare type suffix.
func Parse(s string) (Path, error) {
	var (
		segs   []Segment
		quoted []bool
		state  = stateStart
		i      int
	)

	for i < len(s) {
		switch c := s[i]; c {
		case '.':
			if state != stateAfterToken {
				return Path{}, parseErr(s, i, "empty segment")
			}
			state = stateAfterDot
			i++

		case '[':
			if state == stateAfterDot {
				return Path{}, parseErr(s, i, "index must follow a segment, not a dot")
			}
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return Path{}, parseErr(s, i, "unterminated index")
			}
			digits := s[i+1 : i+end]
			if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
				return Path{}, parseErr(s, i, "index must be a non-negative integer")
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				return Path{}, parseErr(s, i, "index out of range")
			}
			segs = append(segs, Index(n))
			quoted = append(quoted, false)
			state = stateAfterToken
			i += end + 1

		case '"':
			if state == stateAfterToken {
				return Path{}, parseErr(s, i, "missing dot before field")
			}
			lit, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return Path{}, parseErr(s, i, "bad quoted field")
			}
			name, err := strconv.Unquote(lit)
			if err != nil {
				return Path{}, parseErr(s, i, "bad quoted field")
			}
			segs = append(segs, Field(name))
			quoted = append(quoted, true)
			state = stateAfterToken
			i += len(lit)

		default:
			if state == stateAfterToken {
				return Path{}, parseErr(s, i, "missing dot before field")
			}
			end := strings.IndexAny(s[i:], ".[")
			if end < 0 {
				end = len(s) - i
			}
			name := s[i : i+end]
			if strings.ContainsAny(name, "]\"") {
				return Path{}, parseErr(s, i, "unexpected character in field")
			}
			segs = append(segs, Field(name))
			quoted = append(quoted, false)
			state = stateAfterToken
			i += end
		}
	}

	if state != stateAfterToken {
		return Path{}, parseErr(s, len(s), "path must end with a type suffix")
	}

	last := len(segs) - 1
	tail := segs[last]
	if tail.isIndex || quoted[last] || len(tail.Name) != 1 || !Suffix(tail.Name[0]).valid() {
		return Path{}, parseErr(s, len(s), "missing type suffix")
	}

	p := Path{Suffix: Suffix(tail.Name[0])}
	if last > 0 {
		p.Segments = segs[:last]
	}
	return p, nil
}

// Label turns a snake_case field name into a display label: underscores
// become spaces and the first letter is upper-cased.
func Label(snake string) string {
	if snake == "" {
		return ""
	}
	spaced := strings.ReplaceAll(snake, "_", " ")
	r, size := utf8.DecodeRuneInString(spaced)
	return string(unicode.ToUpper(r)) + spaced[size:]
}
