package pathcodec

// ItemKind classifies the markup stream produced by the encoder.
type ItemKind uint8

const (
	ItemGroupOpen  ItemKind = iota // start of a struct, variant or map
	ItemGroupClose                 // end of the innermost group
	ItemListOpen                   // start of a sequence or tuple
	ItemListClose                  // end of the innermost list
	ItemLabel                      // human-readable field name
	ItemInput                      // an input control that submits an entry
	ItemRemove                     // control that clears a present option
)

var itemKindNames = [...]string{
	ItemGroupOpen:  "group-open",
	ItemGroupClose: "group-close",
	ItemListOpen:   "list-open",
	ItemListClose:  "list-close",
	ItemLabel:      "label",
	ItemInput:      "input",
	ItemRemove:     "remove",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "unknown"
}

// Control is the input hint carried by ItemInput.
type Control uint8

const (
	ControlNone Control = iota
	ControlNumber
	ControlText
	ControlChar
	ControlCheckbox
	ControlHidden
)

var controlNames = [...]string{
	ControlNone:     "none",
	ControlNumber:   "number",
	ControlText:     "text",
	ControlChar:     "char",
	ControlCheckbox: "checkbox",
	ControlHidden:   "hidden",
}

func (c Control) String() string {
	if int(c) < len(controlNames) {
		return controlNames[c]
	}
	return "unknown"
}

// Item is one element of the encoded form.
//
// Name is the rendered leaf path for inputs. For groups, lists, labels and
// remove markers it is the path of the node without a suffix. Text is the
// input's value, the label text, or the group title.
type Item struct {
	Name     string
	Text     string
	Kind     ItemKind
	Control  Control
	Checked  bool
	Unsigned bool
}

// Form is the flat representation of one value.
type Form struct {
	Items []Item
}

// Inputs returns the input items in order.
func (f *Form) Inputs() []Item {
	var out []Item
	for _, it := range f.Items {
		if it.Kind == ItemInput {
			out = append(out, it)
		}
	}
	return out
}

// Entries is the submission set of the untouched form. An unchecked
// checkbox submits nothing, so a false bool contributes only its hidden
// fallback.
func (f *Form) Entries() Entries {
	var out Entries
	for _, it := range f.Items {
		if it.Kind != ItemInput {
			continue
		}
		if it.Control == ControlCheckbox && !it.Checked {
			continue
		}
		out = append(out, Entry{Name: it.Name, Text: it.Text})
	}
	return out
}
