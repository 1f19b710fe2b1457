package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taff-facture/pkg/logger"
)

func newSummaryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Lista las tarjetas resumen de las facturas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := opts.useCase(logger.Nop())
			if err != nil {
				return err
			}
			items, err := uc.ListSummaries(cmd.Context())
			if err != nil {
				return fmt.Errorf("listar facturas: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Aucune facture")
				return nil
			}

			fmt.Fprintf(out, "%-4s %-12s %-24s %-18s %14s\n", "#", "ID", "Nom", "Statut", "Total TTC")
			fmt.Fprintln(out, "------------------------------------------------------------------------------")
			for _, it := range items {
				if it.Error != "" {
					fmt.Fprintf(out, "%-4d %-12s ERREUR: %s\n", it.Index, truncate(it.ID, 12), it.Error)
					continue
				}
				fmt.Fprintf(out, "%-4d %-12s %-24s %-18s %14s\n",
					it.Index,
					truncate(it.ID, 12),
					truncate(it.Name, 24),
					it.Badge.Text,
					it.Total,
				)
			}
			fmt.Fprintf(out, "\nTotal: %d facture(s)\n", len(items))
			return nil
		},
	}
}
