package view

import (
	"fmt"
	"net/url"

	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/domain/invoice"
)

// SummaryCard resumen compacto de una factura para el listado.
type SummaryCard struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Badge Badge  `json:"badge"`
	Total string `json:"total"`
	Link  string `json:"link"`
}

// SummaryEntry una entrada del listado: la tarjeta o el error que impidió construirla.
type SummaryEntry struct {
	ID   string
	Card *SummaryCard
	Err  error
}

// DetailLink ruta de la página de detalle: /invoice/<id>.
func DetailLink(id string) string {
	return "/invoice/" + url.PathEscape(id)
}

// BuildSummaryCard construye la tarjeta. El total TTC se calcula con
// invoice.CalculateTotals; su error se propaga sin capturar.
func BuildSummaryCard(inv *entity.Invoice, index int, f Formatter) (*SummaryCard, error) {
	totals, err := invoice.CalculateTotals(inv)
	if err != nil {
		return nil, fmt.Errorf("view: total de la tarjeta: %w", err)
	}
	return &SummaryCard{
		Index: index,
		ID:    inv.ID,
		Name:  inv.Name,
		Badge: BadgeFor(inv.Status),
		Total: f.Money(totals.TotalTTC),
		Link:  DetailLink(inv.ID),
	}, nil
}

// BuildSummaryEntries arma el listado aislando los errores por tarjeta.
func BuildSummaryEntries(invoices []*entity.Invoice, f Formatter) []SummaryEntry {
	entries := make([]SummaryEntry, 0, len(invoices))
	for i, inv := range invoices {
		card, err := BuildSummaryCard(inv, i, f)
		entry := SummaryEntry{Card: card, Err: err}
		if inv != nil {
			entry.ID = inv.ID
		}
		entries = append(entries, entry)
	}
	return entries
}
