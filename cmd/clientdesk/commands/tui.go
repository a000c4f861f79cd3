package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clientdesk/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := tui.New(cmd.Context(), tui.Deps{
				Session:   wire.Session,
				Selection: wire.Selection,
				Clients:   wire.Clients,
				Pages:     wire.Pages,
				PageSize:  settings.UI.PageSize,
				PageSizes: settings.UI.PageSizes,
			})
			defer m.Close()
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
