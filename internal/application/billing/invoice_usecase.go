package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/taff-facture/internal/application/dto"
	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/domain/invoice"
	"github.com/jhoicas/taff-facture/internal/domain/repository"
)

// InvoiceUseCase casos de uso de presentación y exportación de facturas.
type InvoiceUseCase struct {
	repo      repository.InvoiceRepository
	exporter  InvoiceExporter
	formatter view.Formatter
}

// NewInvoiceUseCase construye el caso de uso inyectando sus dependencias.
func NewInvoiceUseCase(repo repository.InvoiceRepository, exporter InvoiceExporter, formatter view.Formatter) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, exporter: exporter, formatter: formatter}
}

// ListEntries devuelve las entradas del listado. Una factura mal formada
// produce una entrada con Err sin afectar al resto.
func (uc *InvoiceUseCase) ListEntries(ctx context.Context) ([]view.SummaryEntry, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing: listar facturas: %w", err)
	}
	return view.BuildSummaryEntries(list, uc.formatter), nil
}

// ListSummaries igual que ListEntries, mapeado a DTO.
func (uc *InvoiceUseCase) ListSummaries(ctx context.Context) ([]dto.InvoiceSummaryResponse, error) {
	entries, err := uc.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromSummaryEntries(entries).Items, nil
}

// GetDocument arma el documento de la factura id.
//
// Retorna:
//   - domain.ErrNotFound       si la factura no existe.
//   - domain.ErrInvalidInvoice si sus líneas están ausentes.
func (uc *InvoiceUseCase) GetDocument(ctx context.Context, id string) (*view.Document, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	totals, err := invoice.CalculateTotals(inv)
	if err != nil {
		return nil, fmt.Errorf("billing: totales de %s: %w", id, err)
	}
	return view.BuildDocument(inv, totals, uc.formatter)
}

// ExportInvoice exporta la factura id. Los fallos de render vienen en
// Result.Status/Result.Err; el error solo cubre la carga y los totales.
func (uc *InvoiceUseCase) ExportInvoice(ctx context.Context, id string) (export.Result, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return export.Result{}, err
	}
	return uc.ExportPayload(ctx, inv)
}

// ExportPayload exporta una factura enviada por el llamador. Los totales se
// calculan aquí con invoice.CalculateTotals y el exportador los usa tal cual.
func (uc *InvoiceUseCase) ExportPayload(ctx context.Context, inv *entity.Invoice) (export.Result, error) {
	if inv == nil {
		return uc.exporter.Export(ctx, nil, entity.Totals{}), nil
	}
	totals, err := invoice.CalculateTotals(inv)
	if err != nil {
		return export.Result{InvoiceID: inv.ID}, fmt.Errorf("billing: totales de %s: %w", inv.ID, err)
	}
	return uc.exporter.Export(ctx, inv, totals), nil
}

// SummarizePayload tarjeta de una factura enviada por el llamador.
func (uc *InvoiceUseCase) SummarizePayload(inv *entity.Invoice, index int) (*view.SummaryCard, error) {
	if inv == nil {
		return nil, domain.ErrInvalidInvoice
	}
	return view.BuildSummaryCard(inv, index, uc.formatter)
}

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
