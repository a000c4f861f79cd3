package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name>",
		Short: "Start a session under <name>",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Login(strings.Join(args, " ")); err != nil {
				return err
			}
			name, _ := wire.Session.Name()
			fmt.Fprintf(cmd.OutOrStdout(), "Olá, %s!\n", name)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Session.Logout()
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the session name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := wire.Session.Name()
			if !ok {
				return errors.New("not logged in. use: clientdesk login <name>")
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
