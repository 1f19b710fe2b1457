package billing

import (
	"context"

	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

// InvoiceExporter exporta una factura a PDF con los totales dados.
// *export.Exporter lo implementa.
type InvoiceExporter interface {
	Export(ctx context.Context, inv *entity.Invoice, totals entity.Totals) export.Result
}
