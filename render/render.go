package render

import (
	"html"
	"strings"

	"github.com/wippyai/formcodec/pathcodec"
)

// HTML renders an encoded form as markup. Groups become fieldsets, lists
// become "formlist" divs and every input carries its entry name verbatim.
//
// A label's for attribute names the node path; the first input after it
// takes that path as its id.
func HTML(items []pathcodec.Item) string {
	var w writer
	for _, it := range items {
		w.item(it)
	}
	return w.b.String()
}

type writer struct {
	b     strings.Builder
	label string // id owed to the next input
}

func (w *writer) item(it pathcodec.Item) {
	b := &w.b
	switch it.Kind {
	case pathcodec.ItemGroupOpen:
		b.WriteString(`<fieldset name="`)
		b.WriteString(html.EscapeString(it.Text))
		b.WriteString(`">`)
	case pathcodec.ItemGroupClose:
		w.label = ""
		b.WriteString(`</fieldset>`)
	case pathcodec.ItemListOpen:
		b.WriteString(`<div class="formlist">`)
	case pathcodec.ItemListClose:
		w.label = ""
		b.WriteString(`</div>`)
	case pathcodec.ItemLabel:
		w.label = it.Name
		b.WriteString(`<label class="inputname" for="`)
		b.WriteString(html.EscapeString(it.Name))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(it.Text))
		b.WriteString(` </label>`)
	case pathcodec.ItemInput:
		id := ""
		if it.Control != pathcodec.ControlHidden {
			id, w.label = w.label, ""
		}
		writeInput(b, it, id)
	case pathcodec.ItemRemove:
		b.WriteString(`<button type="button" class="remove" data-target="`)
		b.WriteString(html.EscapeString(it.Name))
		b.WriteString(`" onclick="formRemove(this)">Remove</button>`)
	}
}

func writeInput(b *strings.Builder, it pathcodec.Item, id string) {
	b.WriteString(`<input name="`)
	b.WriteString(html.EscapeString(it.Name))
	b.WriteString(`"`)
	if id != "" {
		b.WriteString(` id="`)
		b.WriteString(html.EscapeString(id))
		b.WriteString(`"`)
	}

	switch it.Control {
	case pathcodec.ControlNumber:
		b.WriteString(` type="number" step="any"`)
		if it.Unsigned {
			b.WriteString(` min="0"`)
		}
	case pathcodec.ControlChar:
		b.WriteString(` type="text" maxlength="1"`)
	case pathcodec.ControlCheckbox:
		b.WriteString(` type="checkbox"`)
		if it.Checked {
			b.WriteString(` checked`)
		}
	case pathcodec.ControlHidden:
		b.WriteString(` type="hidden"`)
	default:
		b.WriteString(` type="text"`)
	}

	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(it.Text))
	b.WriteString(`"/>`)
	if it.Control != pathcodec.ControlHidden {
		b.WriteString(`<br/>`)
	}
}
