package render

import (
	"html/template"
	"io"

	"github.com/wippyai/formcodec/pathcodec"
)

// removeScript drops every control below the button's target path so the
// option submits as absent.
const removeScript = `function formRemove(btn) {
  const p = btn.dataset.target;
  for (const el of [...btn.form.elements]) {
    const n = el.name || "";
    if (el !== btn && n !== "" && (p === "" || n.startsWith(p + ".") || n.startsWith(p + "["))) {
      el.remove();
    }
  }
  btn.remove();
}`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script>{{.Script}}</script>
</head>
<body>
{{if .Error}}<p class="error">{{.Error}}</p>
{{end}}<form method="post" action="{{.Action}}">
{{.Body}}
<button type="submit">Save</button>
</form>
</body>
</html>
`))

// Page describes a complete HTML document wrapping one form.
type Page struct {
	Title  string
	Action string
	Error  string
	Items  []pathcodec.Item
}

// Write renders p as a standalone document.
func (p Page) Write(w io.Writer) error {
	return pageTemplate.Execute(w, struct {
		Title, Action, Error string
		Script               template.JS
		Body                 template.HTML
	}{
		Title:  p.Title,
		Action: p.Action,
		Error:  p.Error,
		Script: template.JS(removeScript),
		Body:   template.HTML(HTML(p.Items)),
	})
}
