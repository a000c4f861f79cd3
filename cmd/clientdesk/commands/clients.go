package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clientdesk/internal/domain"
	clientsvc "clientdesk/internal/services/clients"
	"clientdesk/internal/util/currency"
)

func listCmd() *cobra.Command {
	var (
		page, limit int
		out         outputOptions
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit == 0 {
				limit = settings.UI.PageSize
			}
			if _, err := wire.Pages.Configure(cmd.Context(), page, limit); err != nil {
				return err
			}
			wire.Pages.Wait()

			st := wire.Pages.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}
			result := domain.Page{Clients: st.Clients, TotalPages: st.TotalPages, CurrentPage: st.CurrentPage}
			return out.render(cmd.OutOrStdout(), result, func(w io.Writer) error {
				if err := clientTable(w, st.Clients); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "\n%d clientes encontrados. Página %d de %d.\n",
					len(st.Clients), st.CurrentPage, st.TotalPages)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "clients per page (default from config)")
	out.addFlags(cmd)
	return cmd
}

// clientFlags are the create/update form fields.
type clientFlags struct {
	name, salary, valuation string
}

func (f *clientFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "client name")
	cmd.Flags().StringVar(&f.salary, "salary", "", "salary, e.g. 3500 or 3.500,00")
	cmd.Flags().StringVar(&f.valuation, "valuation", "", "company valuation")
}

func createCmd() *cobra.Command {
	var f clientFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := clientsvc.ParseInput(f.name, f.salary, f.valuation)
			if err != nil {
				return err
			}
			c, err := wire.Clients.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cliente criado: %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	f.add(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	var f clientFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a client's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := clientsvc.ParseInput(f.name, f.salary, f.valuation)
			if err != nil {
				return err
			}
			c, err := wire.Clients.Update(cmd.Context(), domain.ClientID(args[0]), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cliente atualizado: %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	f.add(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ClientID(args[0])
			if err := wire.Clients.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cliente excluído: %s\n", id)
			return nil
		},
	}
}

func clientTable(w io.Writer, clients []domain.Client) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tSALÁRIO\tEMPRESA\tSELECIONADO")
	for _, c := range clients {
		mark := ""
		if wire.Selection.Contains(c.ID) {
			mark = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, currency.FormatBRL(c.Salary), currency.FormatBRL(c.CompanyValuation), mark)
	}
	return tw.Flush()
}
