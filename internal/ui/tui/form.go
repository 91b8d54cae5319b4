package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// formModel is a write view: one text input per field plus the submission state.
type formModel struct {
	res    domain.Resource
	op     domain.Operation
	id     string
	fields []domain.Field
	inputs []textinput.Model
	focus  int
	state  domain.FormState
	filter bool
}

func newForm(res domain.Resource, op domain.Operation, id string, fields []domain.Field, prefill domain.Record) formModel {
	f := formModel{
		res:    res,
		op:     op,
		id:     id,
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
		state:  domain.NewFormState(fields),
	}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		ti.Width = 40
		ti.Placeholder = placeholder(fd)
		if fd.Kind == domain.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if v, ok := prefill[fd.Name]; ok && v != nil && fd.Kind != domain.FieldPassword && fd.Kind != domain.FieldFile {
			ti.SetValue(prefillText(fd, v))
		}
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// newFilterForm edits the list filters declared on res, starting from the active ones.
func newFilterForm(res domain.Resource, active map[string]string) formModel {
	fields := make([]domain.Field, len(res.Filters))
	prefill := domain.Record{}
	for i, name := range res.Filters {
		fields[i] = domain.Field{Name: name, Label: name, Kind: domain.FieldText}
		if v, ok := active[name]; ok {
			prefill[name] = v
		}
	}
	f := newForm(res, "", "", fields, prefill)
	f.filter = true
	return f
}

func placeholder(fd domain.Field) string {
	switch fd.Kind {
	case domain.FieldDate:
		return "YYYY-MM-DD"
	case domain.FieldBool:
		return "true / false"
	case domain.FieldNumber:
		return "0.00"
	case domain.FieldSelect:
		return strings.Join(fd.Options, " | ")
	case domain.FieldFile:
		return "path/to/file"
	}
	return fd.Hint
}

// prefillText turns a stored value back into what the user would type.
// Stored ISO timestamps are shown as plain dates.
func prefillText(fd domain.Field, v any) string {
	s := textOf(v)
	if fd.Kind == domain.FieldDate {
		if t, err := domain.ParseDate(s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func (f formModel) title() string {
	if f.filter {
		return "Filter " + f.res.Title
	}
	switch f.op {
	case domain.OpUpdate:
		return "Edit " + f.res.Title
	case domain.OpCreate:
		return "New " + f.res.Title
	}
	return f.res.Title
}

func (f formModel) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fd := range f.fields {
		out[fd.Name] = f.inputs[i].Value()
	}
	return out
}

func (f *formModel) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f formModel) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

// reset clears every input after a successful create.
func (f *formModel) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(0)
}

// update routes navigation keys and forwards everything else to the focused input.
func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		}
	}
	if f.state.Submitting || len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f formModel) view(t Theme, width int) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(f.title()))
	if f.id != "" {
		b.WriteString(t.Subtitle.Render("  " + f.id))
	}
	b.WriteString("\n\n")

	labelW := 0
	for _, fd := range f.fields {
		if n := len(labelOf(fd)); n > labelW {
			labelW = n
		}
	}

	for i, fd := range f.fields {
		label := labelOf(fd)
		label += strings.Repeat(" ", labelW-len(label))
		style := t.Label
		if i == f.focus {
			style = t.Active
		}
		b.WriteString(style.Render(label))
		b.WriteString("  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case f.state.Submitting:
		b.WriteString(t.Disabled.Render("[ Submitting… ]"))
	case f.filter:
		b.WriteString(t.Active.Render("[ Apply ]"))
	default:
		b.WriteString(t.Active.Render("[ Submit ]"))
	}
	b.WriteString("\n")

	if f.state.Err != "" {
		b.WriteString("\n" + errorText(t, f.state.Err, width) + "\n")
	}
	if f.state.Success != "" {
		b.WriteString("\n" + t.Success.Render(f.state.Success) + "\n")
	}
	return b.String()
}

func labelOf(fd domain.Field) string {
	l := fd.Label
	if l == "" {
		l = fd.Name
	}
	if fd.Required {
		l += " *"
	}
	return l
}
