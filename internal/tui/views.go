package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clientdesk/internal/domain"
	"clientdesk/internal/util/currency"
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewLogin:
		body = m.viewLogin()
	case viewClients:
		body = m.header() + "\n" + m.viewClients()
	case viewSelected:
		body = m.header() + "\n" + m.viewSelected()
	case viewForm:
		body = m.header() + "\n" + m.viewForm()
	case viewConfirmDelete:
		body = m.header() + "\n" + m.viewConfirm()
	}
	if m.err != "" {
		body += "\n" + errorStyle.Render(m.err)
	}
	return body + "\n"
}

func (m Model) header() string {
	return headerStyle.Render("Olá, " + valueStyle.Render(m.name+"!"))
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Olá, seja bem-vindo!"))
	b.WriteString("\n")
	b.WriteString(m.login.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: entrar • esc: sair"))
	return b.String()
}

func (m Model) viewClients() string {
	var b strings.Builder
	switch {
	case m.fetch.IsLoading:
		b.WriteString(m.spinner.View() + " Carregando clientes...\n")
	case m.fetch.Error != "":
		b.WriteString(errorStyle.Render(m.fetch.Error) + "\n")
	default:
		b.WriteString(titleStyle.Render(fmt.Sprintf("%d clientes encontrados:", len(m.fetch.Clients))))
		b.WriteString("  " + labelStyle.Render("Clientes por página: ") + valueStyle.Render(strconv.Itoa(m.limit)))
		b.WriteString("\n")
		for i, c := range m.fetch.Clients {
			b.WriteString(m.card(c, i == m.cursor, m.deps.Selection.Contains(c.ID)))
			b.WriteString("\n")
		}
		b.WriteString(m.pager())
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(successStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓: mover • ←/→: página • enter: selecionar • n: criar cliente • e: editar • d: excluir\n" +
		"s: clientes por página • r: recarregar • tab: selecionados • x: sair da conta • q: fechar"))
	return b.String()
}

func (m Model) card(c domain.Client, active, selected bool) string {
	mark := "+"
	if selected {
		mark = "✓"
	}
	text := lipgloss.JoinVertical(lipgloss.Left,
		valueStyle.Render(c.Name)+"  "+mutedStyle.Render(mark),
		labelStyle.Render("Salário: ")+currency.FormatBRL(c.Salary),
		labelStyle.Render("Empresa: ")+currency.FormatBRL(c.CompanyValuation),
	)
	if active {
		return activeCardStyle.Render(text)
	}
	return cardStyle.Render(text)
}

func (m Model) pager() string {
	items := pageItems(m.fetch.CurrentPage, m.fetch.TotalPages)
	parts := make([]string, 0, len(items))
	for _, p := range items {
		switch {
		case p == 0:
			parts = append(parts, mutedStyle.Render("..."))
		case p == m.fetch.CurrentPage:
			parts = append(parts, currentPageStyle.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewSelected() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clientes selecionados:"))
	b.WriteString("\n")
	selected := m.deps.Selection.Clients()
	if len(selected) == 0 {
		b.WriteString(mutedStyle.Render("Nenhum cliente selecionado ainda."))
		b.WriteString("\n")
	}
	for i, c := range selected {
		text := lipgloss.JoinVertical(lipgloss.Left,
			valueStyle.Render(c.Name)+"  "+mutedStyle.Render("-"),
			labelStyle.Render("Salário: ")+currency.FormatBRL(c.Salary),
			labelStyle.Render("Empresa: ")+currency.FormatBRL(c.CompanyValuation),
		)
		if i == m.selCursor {
			b.WriteString(activeCardStyle.Render(text))
		} else {
			b.WriteString(cardStyle.Render(text))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓: mover • d: remover • c: limpar clientes selecionados • tab: voltar • q: fechar"))
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	title, action := "Criar cliente:", "Criar cliente"
	if m.form.editing != "" {
		title, action = "Editar cliente:", "Salvar alterações"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if m.form.err != "" {
		b.WriteString(errorStyle.Render(m.form.err) + "\n")
	}
	for _, in := range m.form.inputs {
		b.WriteString(in.View() + "\n")
	}
	if m.form.submitting {
		action = "Salvando..."
	}
	b.WriteString("\n" + currentPageStyle.Render("["+action+"]"))
	b.WriteString(helpStyle.Render("\ntab: próximo campo • enter: confirmar • esc: cancelar"))
	return b.String()
}

func (m Model) viewConfirm() string {
	return titleStyle.Render("Excluir cliente:") + "\n" +
		"Você está prestes a excluir o cliente: " + valueStyle.Render(m.target.Name) + "\n" +
		helpStyle.Render("y: excluir cliente • n: cancelar")
}
