package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea facturable.
type InvoiceLine struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Total cantidad × precio unitario.
func (l InvoiceLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
