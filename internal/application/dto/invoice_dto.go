package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

// InvoicePayload factura enviada por el llamador en POST /api/invoices/summary
// y POST /api/invoices/export.
//
// Lines ausente o null se conserva como nil (factura mal formada); [] es válido.
type InvoicePayload struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	IssuerName    string          `json:"issuer_name"`
	IssuerAddress string          `json:"issuer_address"`
	ClientName    string          `json:"client_name"`
	ClientAddress string          `json:"client_address"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	Lines         []LinePayload   `json:"lines"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	VATActive     bool            `json:"vat_active"`
	Status        int             `json:"status"`
}

// LinePayload línea de factura en el payload.
type LinePayload struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ToEntity convierte el payload. Las fechas mal formadas devuelven
// domain.ErrInvalidInput.
func (p InvoicePayload) ToEntity() (*entity.Invoice, error) {
	invoiceDate, err := entity.ParseDate(p.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice_date %q", domain.ErrInvalidInput, p.InvoiceDate)
	}
	dueDate, err := entity.ParseDate(p.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date %q", domain.ErrInvalidInput, p.DueDate)
	}

	var lines []entity.InvoiceLine
	if p.Lines != nil {
		lines = make([]entity.InvoiceLine, len(p.Lines))
		for i, l := range p.Lines {
			lines[i] = entity.InvoiceLine{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		}
	}

	return &entity.Invoice{
		ID:            p.ID,
		Name:          p.Name,
		IssuerName:    p.IssuerName,
		IssuerAddress: p.IssuerAddress,
		ClientName:    p.ClientName,
		ClientAddress: p.ClientAddress,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Lines:         lines,
		VATRate:       p.VATRate,
		VATActive:     p.VATActive,
		Status:        entity.Status(p.Status),
	}, nil
}

// InvoiceSummaryResponse tarjeta resumen en GET /api/invoices.
// Si la factura no se pudo resumir solo van ID y Error.
type InvoiceSummaryResponse struct {
	ID    string    `json:"id"`
	Index int       `json:"index"`
	Name  string    `json:"name,omitempty"`
	Badge *BadgeDTO `json:"badge,omitempty"`
	Total string    `json:"total,omitempty"`
	Link  string    `json:"link,omitempty"`
	Error string    `json:"error,omitempty"`
}

// BadgeDTO insignia de estado.
type BadgeDTO struct {
	Variant string `json:"variant"`
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Emoji   string `json:"emoji"`
	Class   string `json:"class"`
	Text    string `json:"text"`
}

// InvoiceListResponse respuesta de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceSummaryResponse `json:"items"`
	Total int                      `json:"total"`
}

// FromSummaryCard mapea una tarjeta resuelta.
func FromSummaryCard(c *view.SummaryCard) InvoiceSummaryResponse {
	b := c.Badge
	return InvoiceSummaryResponse{
		ID:    c.ID,
		Index: c.Index,
		Name:  c.Name,
		Badge: &BadgeDTO{
			Variant: string(b.Variant),
			Label:   b.Label,
			Icon:    b.Icon,
			Emoji:   b.Emoji,
			Class:   b.Class,
			Text:    b.Text(),
		},
		Total: c.Total,
		Link:  c.Link,
	}
}

// FromSummaryEntries mapea la lista, conservando el error por tarjeta.
func FromSummaryEntries(entries []view.SummaryEntry) InvoiceListResponse {
	items := make([]InvoiceSummaryResponse, 0, len(entries))
	for i, e := range entries {
		if e.Err != nil {
			items = append(items, InvoiceSummaryResponse{ID: e.ID, Index: i, Error: e.Err.Error()})
			continue
		}
		items = append(items, FromSummaryCard(e.Card))
	}
	return InvoiceListResponse{Items: items, Total: len(items)}
}
