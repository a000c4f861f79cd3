package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clientdesk/internal/domain"
	clientsvc "clientdesk/internal/services/clients"
)

// form is the create/edit client form.
type form struct {
	inputs     [3]textinput.Model
	focus      int
	editing    domain.ClientID // empty when creating
	submitting bool
	err        string
}

func newForm(c *domain.Client) form {
	placeholders := [3]string{"Digite o nome:", "Digite o salário:", "Digite o valor da empresa:"}
	var f form
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		f.inputs[i] = in
	}
	if c != nil {
		f.editing = c.ID
		f.inputs[0].SetValue(c.Name)
		f.inputs[1].SetValue(clientsvc.FormatAmount(c.Salary))
		f.inputs[2].SetValue(clientsvc.FormatAmount(c.CompanyValuation))
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) focusNext(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f form) values() (name, salary, valuation string) {
	return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}
