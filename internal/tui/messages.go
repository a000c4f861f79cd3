package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"clientdesk/internal/domain"
)

// stateMsg carries a FetchState published by the page controller.
type stateMsg domain.FetchState

// mutatedMsg is sent when a create, update or delete round-trip finishes.
type mutatedMsg struct {
	note string
	err  error
}

// waitForState delivers the next published state.
func waitForState(ch <-chan domain.FetchState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ch)
	}
}
