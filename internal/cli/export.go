package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/pkg/config"
	"github.com/jhoicas/taff-facture/pkg/logger"
)

func newExportCommand(opts *options, log *logger.Logger) *cobra.Command {
	var id, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta una factura a PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := opts.useCase(log)
			if err != nil {
				return err
			}
			res, err := uc.ExportInvoice(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("exportar %s: %w", id, err)
			}
			if res.Status != export.StatusSucceeded {
				return fmt.Errorf("%w: %s: %v", errExportFailed, res.Status, res.Err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("crear directorio de salida: %w", err)
			}
			path := filepath.Join(outDir, res.Filename)
			if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
				return fmt.Errorf("escribir PDF: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d octets) 🎉\n", path, len(res.PDF))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "identificador de la factura")
	cmd.Flags().StringVar(&outDir, "out", ".", "directorio de salida")
	cmd.Flags().StringVar(&opts.mode, "mode", config.ExportRaster, "modo de exportación: raster | vector")
	cmd.Flags().Float64Var(&opts.scale, "scale", export.DefaultScale, "factor de sobremuestreo (modo raster)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
