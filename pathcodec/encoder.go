package pathcodec

import (
	"strconv"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/fieldpath"
	"github.com/wippyai/formcodec/value"
)

type Encoder struct {
	opts Options
}

func NewEncoder() *Encoder {
	return &Encoder{opts: DefaultOptions()}
}

func NewEncoderWithOptions(opts Options) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

// encodeState is private to one Encode call: the nesting stack and the
// items emitted so far.
type encodeState struct {
	segs  *[]fieldpath.Segment
	items []Item
}

func (st *encodeState) push(seg fieldpath.Segment) {
	*st.segs = append(*st.segs, seg)
}

func (st *encodeState) pop() {
	*st.segs = (*st.segs)[:len(*st.segs)-1]
}

func (st *encodeState) leaf(s fieldpath.Suffix) string {
	return fieldpath.Render(fieldpath.Path{Segments: *st.segs, Suffix: s})
}

func (st *encodeState) node() string {
	return fieldpath.Render(fieldpath.Path{Segments: *st.segs})
}

func (st *encodeState) path() []string {
	return fieldpath.Strings(*st.segs)
}

func (st *encodeState) emit(it Item) {
	st.items = append(st.items, it)
}

// Encode flattens v into an ordered item stream. Nothing is returned on
// error.
func (e *Encoder) Encode(v value.Value) (*Form, error) {
	st := &encodeState{segs: getSegs()}
	defer putSegs(st.segs)

	if err := e.encode(st, v); err != nil {
		return nil, err
	}
	return &Form{Items: st.items}, nil
}

// EncodeEntries is Encode followed by Form.Entries.
func (e *Encoder) EncodeEntries(v value.Value) (Entries, error) {
	f, err := e.Encode(v)
	if err != nil {
		return nil, err
	}
	return f.Entries(), nil
}

func (e *Encoder) encode(st *encodeState, v value.Value) error {
	switch x := v.(type) {
	case nil:
		return errors.NilPointer(errors.PhaseEncode, st.path(), "value.Value")

	case value.Unit:
		return nil

	case value.Bool:
		name := st.leaf(fieldpath.SuffixBool)
		st.emit(Item{Kind: ItemInput, Control: ControlCheckbox, Name: name, Text: e.opts.ActiveSentinel, Checked: bool(x)})
		st.emit(Item{Kind: ItemInput, Control: ControlHidden, Name: name, Text: e.opts.FallbackSentinel})
		return nil

	case value.Int:
		st.emit(Item{Kind: ItemInput, Control: ControlNumber, Name: st.leaf(fieldpath.SuffixNumber), Text: strconv.FormatInt(int64(x), 10)})
		return nil

	case value.Uint:
		st.emit(Item{Kind: ItemInput, Control: ControlNumber, Name: st.leaf(fieldpath.SuffixNumber), Text: strconv.FormatUint(uint64(x), 10), Unsigned: true})
		return nil

	case value.Float:
		st.emit(Item{Kind: ItemInput, Control: ControlNumber, Name: st.leaf(fieldpath.SuffixNumber), Text: strconv.FormatFloat(float64(x), 'g', -1, 64)})
		return nil

	case value.Char:
		st.emit(Item{Kind: ItemInput, Control: ControlChar, Name: st.leaf(fieldpath.SuffixString), Text: string(rune(x))})
		return nil

	case value.String:
		st.emit(Item{Kind: ItemInput, Control: ControlText, Name: st.leaf(fieldpath.SuffixString), Text: string(x)})
		return nil

	case value.Seq:
		if _, sized := x.Len(); !sized {
			return errors.UnknownLength(st.path())
		}
		return e.encodeList(st, x.Elems)

	case value.Tuple:
		return e.encodeList(st, x.Elems)

	case value.Map:
		return e.encodeMap(st, x)

	case value.Struct:
		return e.encodeStruct(st, x.Name, x.Fields)

	case value.Enum:
		return e.encodeEnum(st, x)

	case value.Option:
		if !x.IsSome() {
			return nil
		}
		if err := e.encode(st, x.Value); err != nil {
			return err
		}
		st.emit(Item{Kind: ItemRemove, Name: st.node()})
		return nil
	}

	return errors.Unsupported(errors.PhaseEncode, "unknown value type")
}

// encodeList writes elements under ascending indices. Every list, tuple
// variants included, numbers its elements from zero.
func (e *Encoder) encodeList(st *encodeState, elems []value.Value) error {
	st.emit(Item{Kind: ItemListOpen, Name: st.node()})
	for i, el := range elems {
		st.push(fieldpath.Index(i))
		err := e.encode(st, el)
		st.pop()
		if err != nil {
			return err
		}
	}
	st.emit(Item{Kind: ItemListClose, Name: st.node()})
	return nil
}

func (e *Encoder) encodeMap(st *encodeState, m value.Map) error {
	st.emit(Item{Kind: ItemGroupOpen, Name: st.node(), Text: "map"})
	for i, ent := range m.Entries {
		st.push(fieldpath.Index(i))

		st.push(fieldpath.KeySegment)
		err := e.encode(st, ent.Key)
		st.pop()
		if err != nil {
			st.pop()
			return err
		}

		st.push(fieldpath.ValueSegment)
		err = e.encode(st, ent.Val)
		st.pop()

		st.pop()
		if err != nil {
			return err
		}
	}
	st.emit(Item{Kind: ItemGroupClose, Name: st.node()})
	return nil
}

func (e *Encoder) encodeStruct(st *encodeState, name string, fields []value.Field) error {
	st.emit(Item{Kind: ItemGroupOpen, Name: st.node(), Text: name})
	for _, f := range fields {
		st.push(fieldpath.Field(f.Name))
		st.emit(Item{Kind: ItemLabel, Name: st.node(), Text: fieldpath.Label(f.Name)})
		err := e.encode(st, f.Value)
		st.pop()
		if err != nil {
			return err
		}
	}
	st.emit(Item{Kind: ItemGroupClose, Name: st.node()})
	return nil
}

func (e *Encoder) encodeEnum(st *encodeState, x value.Enum) error {
	switch x.Form {
	case value.UnitVariant:
		st.emit(Item{Kind: ItemInput, Control: ControlText, Name: st.leaf(fieldpath.SuffixString), Text: x.Variant})
		return nil

	case value.NewtypeVariant:
		return e.encode(st, x.Payload)

	case value.TupleVariant:
		t, ok := x.Payload.(value.Tuple)
		if !ok {
			return variantPayloadErr(st, x, "tuple")
		}
		return e.encodeList(st, t.Elems)

	case value.StructVariant:
		s, ok := x.Payload.(value.Struct)
		if !ok {
			return variantPayloadErr(st, x, "struct")
		}
		return e.encodeStruct(st, x.Variant, s.Fields)
	}
	return errors.Unsupported(errors.PhaseEncode, "unknown variant form "+x.Form.String())
}

func variantPayloadErr(st *encodeState, x value.Enum, want string) error {
	got := "nil"
	if x.Payload != nil {
		got = x.Payload.Kind().String()
	}
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(st.path()...).
		ShapeType(want).
		Detail("variant %s.%s carries a %s payload", x.Name, x.Variant, got).
		Build()
}
