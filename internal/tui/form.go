package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Key    string
	Label  string
	Value  string
	Secret bool
	// Accept rejects edits that would leave the field in an invalid state.
	Accept func(string) bool
}

// form is a focus-cycling stack of text inputs.
type form struct {
	fields []formField
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...formField) *form {
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = f.Label + ": "
		inp.PromptStyle = mutedStyle
		inp.CharLimit = 256
		inp.SetValue(f.Value)
		if f.Secret {
			inp.EchoMode = textinput.EchoPassword
			inp.EchoCharacter = '•'
		}
		if i == 0 {
			inp.Focus()
			inp.PromptStyle = titleStyle
		}
		inputs = append(inputs, inp)
	}
	return &form{fields: fields, inputs: inputs}
}

func (f *form) move(dir int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.inputs[f.focus].PromptStyle = mutedStyle
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	f.inputs[f.focus].PromptStyle = titleStyle
}

// update handles focus keys itself and forwards everything else to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			f.move(1)
			return nil
		case "shift+tab", "up":
			f.move(-1)
			return nil
		}
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if accept := f.fields[f.focus].Accept; accept != nil && !accept(f.inputs[f.focus].Value()) {
		f.inputs[f.focus].SetValue(before)
	}
	return cmd
}

func (f *form) focused() string { return f.fields[f.focus].Key }

func (f *form) value(key string) string {
	for i, fl := range f.fields {
		if fl.Key == key {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (f *form) set(key, value string) {
	for i, fl := range f.fields {
		if fl.Key == key {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

func (f *form) view() string {
	lines := make([]string, 0, len(f.inputs))
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	return strings.Join(lines, "\n")
}
