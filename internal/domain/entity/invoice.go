package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status código de estado de una factura (contrato externo, no cambiar los valores).
type Status int

const (
	StatusDraft     Status = 1 // Brouillon
	StatusPending   Status = 2 // En attente
	StatusPaid      Status = 3 // Payée
	StatusCancelled Status = 4 // Annulée
	StatusUnpaid    Status = 5 // Impayée
)

// Known indica si el código pertenece a la enumeración cerrada.
func (s Status) Known() bool {
	return s >= StatusDraft && s <= StatusUnpaid
}

// Invoice representa una factura ya construida por un colaborador externo.
// Es de solo lectura para este servicio.
//
// Lines == nil representa "líneas ausentes" (dato mal formado); un slice vacío
// no nil es una factura válida sin líneas.
type Invoice struct {
	ID            string
	Name          string
	IssuerName    string
	IssuerAddress string
	ClientName    string
	ClientAddress string
	InvoiceDate   time.Time
	DueDate       time.Time
	Lines         []InvoiceLine
	VATRate       decimal.Decimal // porcentaje, ej. 20 = 20 %
	VATActive     bool
	Status        Status
}

// Totals totales monetarios de una factura.
type Totals struct {
	TotalHT  decimal.Decimal
	TotalVAT decimal.Decimal
	TotalTTC decimal.Decimal
}

// ParseDate acepta "2006-01-02" o RFC 3339; vacío devuelve la fecha cero.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
