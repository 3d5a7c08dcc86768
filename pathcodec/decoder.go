package pathcodec

import (
	stderrors "errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/fieldpath"
	"github.com/wippyai/formcodec/value"
)

type Decoder struct {
	opts Options
}

func NewDecoder() *Decoder {
	return &Decoder{opts: DefaultOptions()}
}

func NewDecoderWithOptions(opts Options) *Decoder {
	return &Decoder{opts: opts.withDefaults()}
}

// leaf is a parsed entry positioned relative to the node being decoded.
type leaf struct {
	name   string
	text   string
	segs   []fieldpath.Segment
	suffix fieldpath.Suffix
}

func (l leaf) shift() leaf {
	l.segs = l.segs[1:]
	return l
}

// Decode rebuilds a value of the given shape from a complete submission
// set. It stops at the first error and returns no partial value.
func (d *Decoder) Decode(entries Entries, shape *value.Shape) (value.Value, error) {
	if shape == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, nil, "*value.Shape")
	}

	leaves := make([]leaf, 0, len(entries))
	for _, e := range entries {
		p, err := fieldpath.Parse(e.Name)
		if err != nil {
			return nil, errors.ParseFailure(errors.PhaseDecode, nil, e.Name, "field path", err)
		}
		leaves = append(leaves, leaf{name: e.Name, text: e.Text, segs: p.Segments, suffix: p.Suffix})
	}

	return d.decode(shape, leaves, nil)
}

func childPath(path []string, seg string) []string {
	return append(path[:len(path):len(path)], seg)
}

func indexSeg(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func (d *Decoder) decode(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	switch s.Kind {
	case value.KindUnit:
		if len(ls) > 0 {
			return nil, unexpected(path, s, ls[0])
		}
		return value.Unit{}, nil

	case value.KindBool, value.KindInt, value.KindUint, value.KindFloat, value.KindChar, value.KindString:
		return d.decodeScalar(s, ls, path)

	case value.KindSeq:
		return d.decodeSeq(s, ls, path)

	case value.KindTuple:
		return d.decodeTuple(s, ls, path)

	case value.KindMap:
		return d.decodeMap(s, ls, path)

	case value.KindStruct:
		return d.decodeStruct(s, s.Name, ls, path)

	case value.KindEnum:
		return d.decodeEnum(s, ls, path)

	case value.KindOption:
		if len(ls) == 0 {
			return value.None(), nil
		}
		inner, err := d.decode(s.Elem, ls, path)
		if err != nil {
			return nil, err
		}
		return value.Some(inner), nil
	}

	return nil, errors.Unsupported(errors.PhaseDecode, "unknown shape kind "+s.Kind.String())
}

func unexpected(path []string, s *value.Shape, l leaf) *errors.Error {
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path(path...).
		ShapeType(s.String()).
		Value(l.name).
		Detail("unexpected entry %q", l.name).
		Build()
}

func suffixFor(k value.Kind) fieldpath.Suffix {
	switch k {
	case value.KindBool:
		return fieldpath.SuffixBool
	case value.KindInt, value.KindUint, value.KindFloat:
		return fieldpath.SuffixNumber
	case value.KindChar, value.KindString:
		return fieldpath.SuffixString
	}
	return fieldpath.SuffixNone
}

func fieldName(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

func (d *Decoder) decodeScalar(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	if len(ls) == 0 {
		return nil, errors.FieldMissing(errors.PhaseDecode, path, fieldName(path))
	}

	want := suffixFor(s.Kind)
	for _, l := range ls {
		if len(l.segs) > 0 {
			return nil, unexpected(path, s, l)
		}
		if l.suffix != want {
			return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(path...).
				ShapeType(s.String()).
				Value(l.name).
				Detail("entry %q carries a %s suffix, want %s", l.name, l.suffix, want).
				Build()
		}
	}

	if s.Kind == value.KindBool {
		return d.decodeBool(ls, path)
	}

	// last entry is authoritative
	text := ls[len(ls)-1].text

	switch s.Kind {
	case value.KindInt:
		n, err := parseInt(text, s.Bits)
		if err != nil {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, text, s.String(), err)
		}
		return value.Int(n), nil

	case value.KindUint:
		n, err := parseUint(text, s.Bits)
		if err != nil {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, text, s.String(), err)
		}
		return value.Uint(n), nil

	case value.KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err == nil && !value.FitsFloat(f, s.Bits) {
			err = strconv.ErrRange
		}
		if err != nil {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, text, s.String(), err)
		}
		return value.Float(f), nil

	case value.KindChar:
		if utf8.RuneCountInString(text) != 1 || !utf8.ValidString(text) {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, text, "char", nil)
		}
		r, _ := utf8.DecodeRuneInString(text)
		return value.Char(r), nil

	default:
		return value.String(text), nil
	}
}

var errNotIntegral = stderrors.New("not an integer")

// parseInt accepts integer text, then integral float text such as "3.0".
func parseInt(text string, bits int) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return 0, err
		}
		var ok bool
		if n, ok = value.CoerceInt64(f); !ok {
			if f != math.Trunc(f) {
				return 0, errNotIntegral
			}
			return 0, strconv.ErrRange
		}
	}
	if !value.FitsInt(n, bits) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func parseUint(text string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return 0, err
		}
		var ok bool
		if n, ok = value.CoerceUint64(f); !ok {
			if f != math.Trunc(f) {
				return 0, errNotIntegral
			}
			return 0, strconv.ErrRange
		}
	}
	if !value.FitsUint(n, bits) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func (d *Decoder) boolToken(text string) (bool, bool) {
	switch text {
	case d.opts.ActiveSentinel:
		return true, true
	case d.opts.FallbackSentinel:
		return false, true
	}
	switch strings.ToLower(text) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0", "":
		return false, true
	}
	return false, false
}

func (d *Decoder) decodeBool(ls []leaf, path []string) (value.Value, error) {
	vals := make([]bool, len(ls))
	for i, l := range ls {
		b, ok := d.boolToken(l.text)
		if !ok {
			return nil, errors.ParseFailure(errors.PhaseDecode, path, l.text, "bool", nil)
		}
		vals[i] = b
	}

	switch d.opts.BoolPolicy {
	case BoolLastWins:
		return value.Bool(vals[len(vals)-1]), nil
	case BoolFirstWins:
		return value.Bool(vals[0]), nil
	default:
		for _, b := range vals {
			if b {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	}
}

// groupByIndex partitions leaves by their leading index segment.
func (d *Decoder) groupByIndex(s *value.Shape, ls []leaf, path []string) (map[int][]leaf, int, error) {
	groups := make(map[int][]leaf)
	n := 0
	for _, l := range ls {
		if len(l.segs) == 0 || !l.segs[0].IsIndex() {
			return nil, 0, unexpected(path, s, l)
		}
		i := l.segs[0].Index
		if i >= d.opts.MaxLength {
			return nil, 0, errors.OutOfBounds(errors.PhaseDecode, path, i, d.opts.MaxLength)
		}
		groups[i] = append(groups[i], l.shift())
		if i+1 > n {
			n = i + 1
		}
	}
	return groups, n, nil
}

// decodeElem decodes one indexed element. An index with no entries must
// decode from the empty set, otherwise it is a gap. n is one past the
// highest index seen.
func (d *Decoder) decodeElem(s *value.Shape, ls []leaf, path []string, i, n int) (value.Value, error) {
	v, err := d.decode(s, ls, childPath(path, indexSeg(i)))
	if err != nil && len(ls) == 0 && stderrors.Is(err, errors.ErrMissingField) {
		return nil, errors.MissingIndex(errors.PhaseDecode, path, i, n-1)
	}
	return v, err
}

func (d *Decoder) decodeSeq(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	groups, n, err := d.groupByIndex(s, ls, path)
	if err != nil {
		return nil, err
	}

	elems := make([]value.Value, n)
	for i := range n {
		if elems[i], err = d.decodeElem(s.Elem, groups[i], path, i, n); err != nil {
			return nil, err
		}
	}
	return value.Seq{Elems: elems}, nil
}

func (d *Decoder) decodeTuple(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	groups, n, err := d.groupByIndex(s, ls, path)
	if err != nil {
		return nil, err
	}

	if n > len(s.Elems) {
		// a gap below the highest index is reported before its overflow
		for i := range n - 1 {
			if len(groups[i]) == 0 {
				return nil, errors.MissingIndex(errors.PhaseDecode, path, i, n-1)
			}
		}
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, n-1, len(s.Elems))
	}

	elems := make([]value.Value, len(s.Elems))
	for i, es := range s.Elems {
		if elems[i], err = d.decodeElem(es, groups[i], path, i, n); err != nil {
			return nil, err
		}
	}
	return value.Tuple{Elems: elems}, nil
}

func (d *Decoder) decodeMap(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	groups, n, err := d.groupByIndex(s, ls, path)
	if err != nil {
		return nil, err
	}

	out := value.Map{Entries: make([]value.MapEntry, 0, n)}
	for i := range n {
		g := groups[i]
		ep := childPath(path, indexSeg(i))
		if len(g) == 0 {
			// an entry whose key and value both emit nothing
			k, kerr := d.decode(s.Key, nil, childPath(ep, "key"))
			v, verr := d.decode(s.Elem, nil, childPath(ep, "value"))
			if kerr != nil || verr != nil {
				return nil, errors.MalformedMap(errors.PhaseDecode, ep, "entry has neither key nor value")
			}
			if _, dup := out.Lookup(k); dup {
				return nil, errors.MalformedMap(errors.PhaseDecode, ep, "duplicate key")
			}
			out.Entries = append(out.Entries, value.MapEntry{Key: k, Val: v})
			continue
		}

		var keys, vals []leaf
		for _, l := range g {
			switch {
			case len(l.segs) > 0 && l.segs[0] == fieldpath.KeySegment:
				keys = append(keys, l.shift())
			case len(l.segs) > 0 && l.segs[0] == fieldpath.ValueSegment:
				vals = append(vals, l.shift())
			default:
				return nil, errors.MalformedMap(errors.PhaseDecode, ep, "unexpected entry "+strconv.Quote(l.name))
			}
		}

		k, err := d.decodeHalf(s.Key, keys, ep, "key")
		if err != nil {
			return nil, err
		}
		v, err := d.decodeHalf(s.Elem, vals, ep, "value")
		if err != nil {
			return nil, err
		}
		if _, dup := out.Lookup(k); dup {
			return nil, errors.MalformedMap(errors.PhaseDecode, ep, "duplicate key")
		}
		out.Entries = append(out.Entries, value.MapEntry{Key: k, Val: v})
	}
	return out, nil
}

func (d *Decoder) decodeHalf(s *value.Shape, ls []leaf, path []string, half string) (value.Value, error) {
	v, err := d.decode(s, ls, childPath(path, half))
	if err != nil && len(ls) == 0 && stderrors.Is(err, errors.ErrMissingField) {
		return nil, errors.MalformedMap(errors.PhaseDecode, path, "entry has no "+half)
	}
	return v, err
}

func (d *Decoder) decodeStruct(s *value.Shape, name string, ls []leaf, path []string) (value.Value, error) {
	parts := make(map[string][]leaf, len(s.Fields))
	for _, l := range ls {
		if len(l.segs) == 0 || l.segs[0].IsIndex() {
			return nil, unexpected(path, s, l)
		}
		fname := l.segs[0].Name
		if _, ok := s.Field(fname); !ok {
			if d.opts.AllowUnknownFields {
				continue
			}
			return nil, errors.FieldUnknown(errors.PhaseDecode, path, fname)
		}
		parts[fname] = append(parts[fname], l.shift())
	}

	fields := make([]value.Field, len(s.Fields))
	for i, f := range s.Fields {
		v, err := d.decode(f.Shape, parts[f.Name], childPath(path, fieldpath.Field(f.Name).String()))
		if err != nil {
			return nil, err
		}
		fields[i] = value.F(f.Name, v)
	}
	return value.Struct{Name: name, Fields: fields}, nil
}

// decodeEnum matches a unit case by name first, then tries the remaining
// cases in declaration order. The first payload that decodes wins.
func (d *Decoder) decodeEnum(s *value.Shape, ls []leaf, path []string) (value.Value, error) {
	if len(ls) == 1 && len(ls[0].segs) == 0 && ls[0].suffix == fieldpath.SuffixString {
		for _, c := range s.Cases {
			if c.Form == value.UnitVariant && c.Name == ls[0].text {
				return value.UnitCase(s.Name, c.Name), nil
			}
		}
	}

	for _, c := range s.Cases {
		var (
			payload value.Value
			err     error
		)
		switch c.Form {
		case value.UnitVariant:
			continue
		case value.NewtypeVariant:
			payload, err = d.decode(c.Payload, ls, path)
		case value.TupleVariant:
			payload, err = d.decodeTuple(c.Payload, ls, path)
		case value.StructVariant:
			payload, err = d.decodeStruct(c.Payload, c.Name, ls, path)
		default:
			continue
		}
		if err == nil {
			return value.Enum{Name: s.Name, Variant: c.Name, Form: c.Form, Payload: payload}, nil
		}
	}

	if len(ls) == 0 {
		return nil, errors.FieldMissing(errors.PhaseDecode, path, fieldName(path))
	}
	var got any = ls[0].name
	if len(ls) == 1 && len(ls[0].segs) == 0 {
		got = ls[0].text
	}
	return nil, errors.InvalidVariant(errors.PhaseDecode, path, got, s.String())
}
