package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"clientdesk/internal/domain"
)

// scanLimit is the page size used when looking a client up by id.
const scanLimit = 32

func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Add a client to the shortlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := findClient(cmd.Context(), wire.API, domain.ClientID(args[0]))
			if err != nil {
				return err
			}
			if err := wire.Selection.Add(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cliente selecionado: %s\n", c.Name)
			return nil
		},
	}
}

func unselectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unselect <id>",
		Short: "Remove a client from the shortlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Selection.Remove(domain.ClientID(args[0]))
		},
	}
}

func selectedCmd() *cobra.Command {
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "selected",
		Short: "Print the shortlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clients := wire.Selection.Clients()
			return out.render(cmd.OutOrStdout(), clients, func(w io.Writer) error {
				if len(clients) == 0 {
					_, err := fmt.Fprintln(w, "Nenhum cliente selecionado ainda.")
					return err
				}
				fmt.Fprintln(w, "Clientes selecionados:")
				return clientTable(w, clients)
			})
		},
	}
	out.addFlags(cmd)
	return cmd
}

func clearSelectedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-selected",
		Short: "Empty the shortlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.Selection.Clear()
		},
	}
}

// findClient walks the listing until it finds id.
func findClient(ctx context.Context, lister domain.ClientLister, id domain.ClientID) (domain.Client, error) {
	for page := 1; ; page++ {
		p, err := lister.ListClients(ctx, page, scanLimit)
		if err != nil {
			return domain.Client{}, err
		}
		for _, c := range p.Clients {
			if c.ID == id {
				return c, nil
			}
		}
		if page >= p.TotalPages || len(p.Clients) == 0 {
			return domain.Client{}, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
		}
	}
}
