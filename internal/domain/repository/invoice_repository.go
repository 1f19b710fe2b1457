package repository

import (
	"context"

	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

// InvoiceRepository puerto de lectura de facturas. Las facturas las crea y
// persiste un colaborador externo; aquí solo se consultan.
type InvoiceRepository interface {
	// GetByID devuelve (nil, nil) si la factura no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
}
