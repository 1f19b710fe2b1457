package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de solo lectura de InvoiceRepository (usable con pool o tx).
// Las facturas leídas de la base siempre tienen Lines no nil.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, name, issuer_name, issuer_address, client_name, client_address,
	invoice_date, due_date, vat_rate, vat_active, status`

// GetByID obtiene una factura con sus líneas. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lines, err := r.linesByInvoice(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Lines = lines[inv.ID]
	return inv, nil
}

// List devuelve todas las facturas (más recientes primero) con sus líneas.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices ORDER BY invoice_date DESC NULLS LAST, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, inv := range list {
		ids = append(ids, inv.ID)
	}
	lines, err := r.linesByInvoice(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, inv := range list {
		inv.Lines = lines[inv.ID]
	}
	return list, nil
}

// linesByInvoice agrupa las líneas por factura; toda factura pedida recibe un slice no nil.
func (r *InvoiceRepo) linesByInvoice(ctx context.Context, ids []string) (map[string][]entity.InvoiceLine, error) {
	query := `
		SELECT invoice_id, description, quantity, unit_price
		FROM invoice_lines WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.InvoiceLine, len(ids))
	for _, id := range ids {
		out[id] = []entity.InvoiceLine{}
	}
	for rows.Next() {
		var (
			invoiceID   string
			description *string
			qty, price  decimal.NullDecimal
		)
		if err := rows.Scan(&invoiceID, &description, &qty, &price); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		out[invoiceID] = append(out[invoiceID], entity.InvoiceLine{
			Description: derefStr(description),
			Quantity:    qty.Decimal,
			UnitPrice:   price.Decimal,
		})
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                  entity.Invoice
		name, issuerName     *string
		issuerAddr, client   *string
		clientAddr           *string
		invoiceDate, dueDate *time.Time
		vatRate              decimal.NullDecimal
		status               int
	)
	err := row.Scan(
		&inv.ID, &name, &issuerName, &issuerAddr, &client, &clientAddr,
		&invoiceDate, &dueDate, &vatRate, &inv.VATActive, &status,
	)
	if err != nil {
		return nil, err
	}
	inv.Name = derefStr(name)
	inv.IssuerName = derefStr(issuerName)
	inv.IssuerAddress = derefStr(issuerAddr)
	inv.ClientName = derefStr(client)
	inv.ClientAddress = derefStr(clientAddr)
	inv.InvoiceDate = dateOrZero(invoiceDate)
	inv.DueDate = dateOrZero(dueDate)
	inv.VATRate = vatRate.Decimal
	inv.Status = entity.Status(status)
	return &inv, nil
}
