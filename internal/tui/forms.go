package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Width = width
	return ti
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := newInput(placeholder, 40)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}

// form is a vertical group of inputs with one focused at a time. focus may
// sit one past the last input when the step has a trailing non-input control
// (the city picker).
type form struct {
	inputs []textinput.Model
	focus  int
	extra  int // extra focus slots after the inputs
}

func (f *form) slots() int { return len(f.inputs) + f.extra }

func (f *form) cycle(delta int) {
	n := f.slots()
	if n == 0 {
		return
	}
	f.focus = (f.focus + delta + n) % n
	f.applyFocus()
}

func (f *form) applyFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *form) focusFirst() {
	f.focus = 0
	f.applyFocus()
}

// update forwards a message to the focused input, if any.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}
