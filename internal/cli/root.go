// Package cli implementa la línea de comandos facture: resumen de facturas y
// exportación a PDF sin levantar el servidor HTTP.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/taff-facture/internal/infrastructure/pdf"
	"github.com/jhoicas/taff-facture/pkg/config"
	"github.com/jhoicas/taff-facture/pkg/logger"
)

// options flags compartidos por todos los subcomandos.
type options struct {
	fixtures string
	locale   string
	currency string
	mode     string
	scale    float64
}

// NewRootCommand construye el comando raíz con sus subcomandos.
func NewRootCommand(log *logger.Logger) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "facture",
		Short: "Resumen y exportación PDF de facturas",
		Long: `facture lee facturas desde un archivo de fixtures YAML, muestra sus
tarjetas resumen y exporta el documento de una factura a PDF.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.fixtures, "fixtures", "./fixtures/invoices.yaml", "archivo YAML de facturas")
	root.PersistentFlags().StringVar(&opts.locale, "locale", view.DefaultLocale, "locale de fechas (fr-FR, en-US, es-ES)")
	root.PersistentFlags().StringVar(&opts.currency, "currency", view.DefaultCurrency, "sufijo de moneda")

	root.AddCommand(newSummaryCommand(opts))
	root.AddCommand(newExportCommand(opts, log))
	return root
}

// useCase carga los fixtures y arma el caso de uso con el modo de exportación de opts.
func (o *options) useCase(log *logger.Logger) (*billing.InvoiceUseCase, error) {
	repo, err := memory.LoadFile(o.fixtures)
	if err != nil {
		return nil, err
	}
	mode := o.mode
	if mode == "" {
		mode = config.ExportRaster
	}
	renderer, err := infrapdf.NewRenderer(config.ExportConfig{Mode: mode, Scale: o.scale}, "facture")
	if err != nil {
		return nil, err
	}
	formatter := view.NewFormatter(o.locale, o.currency)
	hooks := export.NewLogHooks(log)
	exporter := export.NewExporter(renderer, formatter, export.WithObserver(hooks), export.WithCelebrator(hooks))
	return billing.NewInvoiceUseCase(repo, exporter, formatter), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var errExportFailed = errors.New("exportación fallida")
