package view

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/domain/invoice"
)

// Textos fijos del documento.
const (
	Brand          = "TaffFacture"
	LabelIssuer    = "Émetteur"
	LabelClient    = "Client"
	LabelDate      = "Date"
	LabelDueDate   = "Date d'échéance"
	LabelTotalHT   = "Total Hors Taxes"
	LabelTotalTTC  = "Total Toutes Taxes Comprises"
	LabelColDesc   = "Description"
	LabelColQty    = "Quantité"
	LabelColPrice  = "Prix Unitaire"
	LabelColTotal  = "Total"
	ExportBtnLabel = "Format.PDF"
)

// Document vista completa de una factura, lista para HTML, captura o PDF vectorial.
type Document struct {
	InvoiceID   string      `json:"invoice_id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	InvoiceDate string      `json:"invoice_date"`
	DueDate     string      `json:"due_date"`
	Issuer      Party       `json:"issuer"`
	Client      Party       `json:"client"`
	Rows        []Row       `json:"rows"`
	Totals      TotalsBlock `json:"totals"`
}

// Party bloque emisor o cliente.
type Party struct {
	Label   string `json:"label"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Row fila de la tabla de líneas (Index empieza en 1).
type Row struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

// TotalsBlock bloque de totales. VAT es nil cuando la TVA no está activa.
type TotalsBlock struct {
	HT  string   `json:"total_ht"`
	VAT *VATLine `json:"vat,omitempty"`
	TTC string   `json:"total_ttc"`
}

// VATLine línea de TVA: "TVA 20 %" y su monto.
type VATLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// BuildDocument arma el documento con los totales recibidos del llamador
// (no los recalcula). El total por fila sí se calcula aquí.
//
// Retorna domain.ErrRenderTargetMissing si inv es nil y domain.ErrInvalidInvoice
// si las líneas están ausentes.
func BuildDocument(inv *entity.Invoice, totals entity.Totals, f Formatter) (*Document, error) {
	if inv == nil {
		return nil, domain.ErrRenderTargetMissing
	}
	if inv.Lines == nil {
		return nil, fmt.Errorf("%w: líneas ausentes en la factura %q", domain.ErrInvalidInvoice, inv.ID)
	}

	rows := lo.Map(inv.Lines, func(l entity.InvoiceLine, i int) Row {
		return Row{
			Index:       i + 1,
			Description: l.Description,
			Quantity:    f.Number(l.Quantity),
			UnitPrice:   f.Money(l.UnitPrice),
			Total:       f.Money(invoice.LineTotal(l)),
		}
	})

	block := TotalsBlock{
		HT:  f.Money(totals.TotalHT),
		TTC: f.Money(totals.TotalTTC),
	}
	if inv.VATActive {
		block.VAT = &VATLine{
			Label:  "TVA " + f.Number(inv.VATRate) + " %",
			Amount: f.Money(totals.TotalVAT),
		}
	}

	return &Document{
		InvoiceID:   inv.ID,
		Name:        inv.Name,
		Title:       "Facture n° " + inv.ID,
		InvoiceDate: f.Date(inv.InvoiceDate),
		DueDate:     f.Date(inv.DueDate),
		Issuer:      Party{Label: LabelIssuer, Name: inv.IssuerName, Address: inv.IssuerAddress},
		Client:      Party{Label: LabelClient, Name: inv.ClientName, Address: inv.ClientAddress},
		Rows:        rows,
		Totals:      block,
	}, nil
}
