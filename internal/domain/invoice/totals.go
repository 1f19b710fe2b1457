// Package invoice contiene el cálculo puro de totales compartido por la
// tarjeta resumen y por todos los llamadores del exportador PDF.
package invoice

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CalculateTotals calcula HT, TVA y TTC.
//
//	TotalHT  = Σ cantidad × precio unitario
//	TotalVAT = TotalHT × VATRate / 100   (0 si la TVA no está activa)
//	TotalTTC = TotalHT + TotalVAT
//
// Retorna domain.ErrInvalidInvoice si la factura es nil o sus líneas están ausentes.
func CalculateTotals(inv *entity.Invoice) (entity.Totals, error) {
	if inv == nil {
		return entity.Totals{}, fmt.Errorf("%w: factura nil", domain.ErrInvalidInvoice)
	}
	if inv.Lines == nil {
		return entity.Totals{}, fmt.Errorf("%w: líneas ausentes en la factura %q", domain.ErrInvalidInvoice, inv.ID)
	}

	totalHT := lo.Reduce(inv.Lines, func(acc decimal.Decimal, l entity.InvoiceLine, _ int) decimal.Decimal {
		return acc.Add(LineTotal(l))
	}, decimal.Zero)

	totalVAT := decimal.Zero
	if inv.VATActive {
		totalVAT = totalHT.Mul(inv.VATRate).Div(hundred)
	}

	return entity.Totals{
		TotalHT:  totalHT,
		TotalVAT: totalVAT,
		TotalTTC: totalHT.Add(totalVAT),
	}, nil
}

// LineTotal total de una fila de la tabla (independiente de entity.Totals).
func LineTotal(l entity.InvoiceLine) decimal.Decimal {
	return l.Total()
}
