// Package tui is the interactive terminal front end: login, the paginated
// client list with create, edit and delete, and the selected-clients view.
package tui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clientdesk/internal/domain"
	clientsvc "clientdesk/internal/services/clients"
)

type view int

const (
	viewLogin view = iota
	viewClients
	viewSelected
	viewForm
	viewConfirmDelete
)

// Deps are the services the TUI drives.
type Deps struct {
	Session   domain.SessionService
	Selection domain.SelectionService
	Clients   domain.ClientService
	Pages     domain.PageController
	PageSize  int
	PageSizes []int
}

// Model is the Bubbletea model for clientdesk.
type Model struct {
	ctx         context.Context
	deps        Deps
	states      chan domain.FetchState
	unsubscribe func()

	// State
	view      view
	width     int
	height    int
	name      string
	page      int
	limit     int
	fetch     domain.FetchState
	cursor    int
	selCursor int
	notice    string
	err       string

	// Components
	login   textinput.Model
	form    form
	target  domain.Client
	spinner spinner.Model
}

// New creates the model. When a session is already stored the client list
// is shown and the first page is requested right away.
func New(ctx context.Context, deps Deps) Model {
	if deps.PageSize <= 0 {
		deps.PageSize = 16
	}
	if len(deps.PageSizes) == 0 {
		deps.PageSizes = []int{8, 16, 32}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = currentPageStyle

	li := textinput.New()
	li.Placeholder = "Digite o seu nome:"
	li.CharLimit = 80
	li.Focus()

	m := Model{
		ctx:     ctx,
		deps:    deps,
		states:  make(chan domain.FetchState, 1),
		view:    viewLogin,
		page:    1,
		limit:   deps.PageSize,
		fetch:   deps.Pages.State(),
		login:   li,
		spinner: sp,
	}
	m.unsubscribe = deps.Pages.Subscribe(m.deliver)

	if name, ok := deps.Session.Name(); ok {
		m.name = name
		m.view = viewClients
		m.configure()
	}
	return m
}

// deliver keeps only the newest state in the mailbox; each state is a full
// snapshot, so older ones can be dropped.
func (m Model) deliver(st domain.FetchState) {
	for {
		select {
		case m.states <- st:
			return
		default:
		}
		select {
		case <-m.states:
		default:
		}
	}
}

// Close detaches the model from the page controller.
func (m Model) Close() {
	m.unsubscribe()
}

// Init starts the spinner and the state subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.states), textinput.Blink)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateMsg:
		m.fetch = domain.FetchState(msg)
		m.cursor = clamp(m.cursor, len(m.fetch.Clients))
		return m, waitForState(m.states)

	case mutatedMsg:
		m.form.submitting = false
		if msg.err != nil {
			if m.view == viewForm {
				m.form.err = msg.err.Error()
			} else {
				m.err = msg.err.Error()
			}
			return m, nil
		}
		m.view = viewClients
		m.notice, m.err = msg.note, ""
		m.refetch()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewClients:
			return m.updateClients(msg)
		case viewSelected:
			return m.updateSelected(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewConfirmDelete:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		if err := m.deps.Session.Login(m.login.Value()); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.name, _ = m.deps.Session.Name()
		m.login.SetValue("")
		m.err = ""
		m.view = viewClients
		m.configure()
		return m, nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) updateClients(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(m.fetch.Clients))
	case "left", "h":
		if m.page > 1 {
			m.page--
			m.configure()
		}
	case "right", "l":
		if m.page < m.fetch.TotalPages {
			m.page++
			m.configure()
		}
	case "s":
		i := slices.Index(m.deps.PageSizes, m.limit)
		m.limit = m.deps.PageSizes[(i+1)%len(m.deps.PageSizes)]
		m.page = 1
		m.configure()
	case "r":
		m.refetch()
	case "enter", " ":
		if c, ok := m.current(); ok {
			if err := m.deps.Selection.Add(c); err != nil {
				m.err = err.Error()
			} else {
				m.notice = c.Name + " selecionado."
			}
		}
	case "n":
		m.form = newForm(nil)
		m.view = viewForm
		return m, textinput.Blink
	case "e":
		if c, ok := m.current(); ok {
			m.form = newForm(&c)
			m.view = viewForm
			return m, textinput.Blink
		}
	case "d":
		if c, ok := m.current(); ok {
			m.target = c
			m.view = viewConfirmDelete
		}
	case "tab":
		m.selCursor = 0
		m.view = viewSelected
	case "x":
		if err := m.deps.Session.Logout(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.name = ""
		m.view = viewLogin
		m.login.Focus()
	}
	return m, nil
}

func (m Model) updateSelected(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.deps.Selection.Clients()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "esc":
		m.view = viewClients
	case "up", "k":
		m.selCursor = max(0, m.selCursor-1)
	case "down", "j":
		m.selCursor = clamp(m.selCursor+1, len(selected))
	case "d", "backspace", "delete":
		if m.selCursor < len(selected) {
			if err := m.deps.Selection.Remove(selected[m.selCursor].ID); err != nil {
				m.err = err.Error()
			}
			m.selCursor = clamp(m.selCursor, len(selected)-1)
		}
	case "c":
		if err := m.deps.Selection.Clear(); err != nil {
			m.err = err.Error()
		}
		m.selCursor = 0
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.view = viewClients
		return m, nil
	case "tab", "down":
		m.form.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusNext(-1)
		return m, nil
	case "enter":
		in, err := clientsvc.ParseInput(m.form.values())
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.err = ""
		m.form.submitting = true
		return m, m.save(m.form.editing, in)
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "s":
		m.view = viewClients
		return m, m.remove(m.target)
	case "n", "esc":
		m.view = viewClients
	}
	return m, nil
}

// configure applies the current page and limit to the controller.
func (m *Model) configure() {
	if _, err := m.deps.Pages.Configure(m.ctx, m.page, m.limit); err != nil {
		m.err = err.Error()
	}
}

func (m *Model) refetch() {
	if err := m.deps.Pages.Refetch(m.ctx); err != nil {
		m.configure()
	}
}

func (m Model) current() (domain.Client, bool) {
	if m.cursor < 0 || m.cursor >= len(m.fetch.Clients) {
		return domain.Client{}, false
	}
	return m.fetch.Clients[m.cursor], true
}

func (m Model) save(id domain.ClientID, in domain.ClientInput) tea.Cmd {
	ctx, clients := m.ctx, m.deps.Clients
	return func() tea.Msg {
		if id == "" {
			c, err := clients.Create(ctx, in)
			return mutatedMsg{note: "Cliente " + c.Name + " criado.", err: err}
		}
		c, err := clients.Update(ctx, id, in)
		return mutatedMsg{note: "Cliente " + c.Name + " atualizado.", err: err}
	}
}

func (m Model) remove(c domain.Client) tea.Cmd {
	ctx, clients := m.ctx, m.deps.Clients
	return func() tea.Msg {
		err := clients.Delete(ctx, c.ID)
		return mutatedMsg{note: "Cliente " + c.Name + " excluído.", err: err}
	}
}

// clamp limits i to a valid index for a list of n items.
func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	return max(0, min(i, n-1))
}
