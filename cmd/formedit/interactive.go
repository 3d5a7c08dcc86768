package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/formcodec/form"
	"github.com/wippyai/formcodec/pathcodec"
	"github.com/wippyai/formcodec/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// field is one input of the form. Hidden fallbacks are kept so every
// submission is complete, but they are never focused.
type field struct {
	item    pathcodec.Item
	input   textinput.Model
	checked bool
}

func (f *field) editable() bool {
	return f.item.Control != pathcodec.ControlHidden
}

func (f *field) entry() (pathcodec.Entry, bool) {
	switch f.item.Control {
	case pathcodec.ControlCheckbox:
		return pathcodec.Entry{Name: f.item.Name, Text: f.item.Text}, f.checked
	case pathcodec.ControlHidden:
		return pathcodec.Entry{Name: f.item.Name, Text: f.item.Text}, true
	default:
		return pathcodec.Entry{Name: f.item.Name, Text: f.input.Value()}, true
	}
}

type interactiveModel struct {
	err      error
	form     *form.Form[value.Value]
	outFile  string
	status   string
	labels   map[string]string
	fields   []field
	focusIdx int
}

type savedMsg struct {
	err  error
	path string
}

func newInteractiveModel(f *form.Form[value.Value], outFile string) (*interactiveModel, error) {
	items, err := f.Items()
	if err != nil {
		return nil, err
	}

	m := &interactiveModel{
		form:     f,
		outFile:  outFile,
		labels:   make(map[string]string),
		focusIdx: -1,
	}
	for _, it := range items {
		switch it.Kind {
		case pathcodec.ItemLabel:
			m.labels[it.Name] = it.Text
		case pathcodec.ItemInput:
			fd := field{item: it, checked: it.Checked}
			if it.Control != pathcodec.ControlCheckbox && it.Control != pathcodec.ControlHidden {
				ti := textinput.New()
				ti.Prompt = ""
				ti.Width = 40
				ti.SetValue(it.Text)
				if it.Control == pathcodec.ControlChar {
					ti.CharLimit = 1
				}
				fd.input = ti
			}
			m.fields = append(m.fields, fd)
		}
	}
	m.move(1)
	return m, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// move focuses the next editable field in direction dir.
func (m *interactiveModel) move(dir int) {
	n := len(m.fields)
	if n == 0 {
		return
	}
	if m.focusIdx >= 0 {
		m.fields[m.focusIdx].input.Blur()
	}
	i := m.focusIdx
	for range n {
		i = ((i+dir)%n + n) % n
		if m.fields[i].editable() {
			m.focusIdx = i
			if m.fields[i].item.Control != pathcodec.ControlCheckbox {
				m.fields[i].input.Focus()
			}
			return
		}
	}
}

func (m *interactiveModel) entries() pathcodec.Entries {
	var out pathcodec.Entries
	for i := range m.fields {
		if e, ok := m.fields[i].entry(); ok {
			out = append(out, e)
		}
	}
	return out
}

// submit decodes the whole input set. A rejected set keeps the typed text
// and the last good value.
func (m *interactiveModel) submit() {
	if err := m.form.Update(m.entries()); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m *interactiveModel) save() tea.Msg {
	doc, err := m.form.Document()
	if err == nil {
		err = writeDocument(m.outFile, doc)
	}
	return savedMsg{err: err, path: m.outFile}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+s":
			if m.err != nil {
				m.status = ""
				return m, nil
			}
			return m, m.save

		case "tab", "down", "enter":
			m.move(1)
			return m, nil

		case "shift+tab", "up":
			m.move(-1)
			return m, nil

		case " ", "x":
			if m.focusIdx >= 0 && m.fields[m.focusIdx].item.Control == pathcodec.ControlCheckbox {
				m.fields[m.focusIdx].checked = !m.fields[m.focusIdx].checked
				m.submit()
				return m, nil
			}
		}

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("save failed: %v", msg.err))
		} else {
			m.status = okStyle.Render("saved " + msg.path)
		}
		return m, nil
	}

	if m.focusIdx < 0 || !m.fields[m.focusIdx].editable() || m.fields[m.focusIdx].item.Control == pathcodec.ControlCheckbox {
		return m, nil
	}

	fd := &m.fields[m.focusIdx]
	before := fd.input.Value()
	var cmd tea.Cmd
	fd.input, cmd = fd.input.Update(msg)
	if fd.input.Value() != before {
		m.status = ""
		m.submit()
	}
	return m, cmd
}

// labelFor finds the label of the field an entry belongs to.
func (m *interactiveModel) labelFor(name string) string {
	node := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		node = name[:i]
	}
	if l, ok := m.labels[node]; ok {
		return l + " (" + node + ")"
	}
	if node == name {
		return "value"
	}
	return node
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Form Editor"))
	b.WriteString(" ")
	b.WriteString(m.outFile)
	b.WriteString("\n\n")

	for i := range m.fields {
		fd := &m.fields[i]
		if !fd.editable() {
			continue
		}
		label := labelStyle.Render(m.labelFor(fd.item.Name))
		if i == m.focusIdx {
			label = selectedStyle.Render("> " + m.labelFor(fd.item.Name))
		}
		b.WriteString(label)
		b.WriteString(": ")

		if fd.item.Control == pathcodec.ControlCheckbox {
			box := "[ ]"
			if fd.checked {
				box = "[x]"
			}
			b.WriteString(box)
		} else {
			b.WriteString(fd.input.View())
			b.WriteString(" ")
			b.WriteString(hintStyle.Render(fd.item.Control.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.status != "":
		b.WriteString(m.status)
	default:
		b.WriteString(okStyle.Render("valid"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab/↓ next • shift+tab/↑ prev • space toggle • ctrl+s save • esc quit"))

	return b.String()
}

func runInteractive(inFile, outFile string) error {
	f, err := openForm(inFile)
	if err != nil {
		return err
	}
	m, err := newInteractiveModel(f, outFile)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
