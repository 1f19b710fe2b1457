// Package memory implementa InvoiceRepository sobre un archivo YAML cargado en memoria.
package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo repositorio en memoria, seguro para lectura concurrente.
type InvoiceRepo struct {
	mu       sync.RWMutex
	order    []string
	invoices map[string]*entity.Invoice
}

// NewInvoiceRepository crea un repositorio con las facturas dadas (en ese orden).
func NewInvoiceRepository(invoices ...*entity.Invoice) *InvoiceRepo {
	r := &InvoiceRepo{invoices: make(map[string]*entity.Invoice, len(invoices))}
	for _, inv := range invoices {
		r.put(inv)
	}
	return r
}

// LoadFile lee un archivo de fixtures YAML.
func LoadFile(path string) (*InvoiceRepo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("memory: abrir fixtures: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodifica fixtures YAML:
//
//	invoices:
//	  - id: INV-42
//	    name: Acme-Jan
//	    invoice_date: 2024-01-05
//	    lines:
//	      - {description: Conseil, quantity: 2, unit_price: 10}
//
// Un campo lines ausente o null queda como nil (factura mal formada);
// lines: [] es una factura válida sin líneas.
func Load(r io.Reader) (*InvoiceRepo, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("memory: decodificar fixtures: %w", err)
	}
	repo := NewInvoiceRepository()
	for i, rec := range file.Invoices {
		inv, err := rec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("memory: factura #%d (%s): %w", i, rec.ID, err)
		}
		repo.put(inv)
	}
	return repo, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.invoices[id], nil
}

// List devuelve las facturas en orden de carga.
func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Invoice, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.invoices[id])
	}
	return list, nil
}

func (r *InvoiceRepo) put(inv *entity.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.invoices[inv.ID]; !exists {
		r.order = append(r.order, inv.ID)
	}
	r.invoices[inv.ID] = inv
}

// ── Formato de fixtures ───────────────────────────────────────────────────────

type fixtureFile struct {
	Invoices []invoiceRecord `yaml:"invoices"`
}

type invoiceRecord struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	IssuerName    string       `yaml:"issuer_name"`
	IssuerAddress string       `yaml:"issuer_address"`
	ClientName    string       `yaml:"client_name"`
	ClientAddress string       `yaml:"client_address"`
	InvoiceDate   string       `yaml:"invoice_date"`
	DueDate       string       `yaml:"due_date"`
	Lines         []lineRecord `yaml:"lines"`
	VATRate       string       `yaml:"vat_rate"`
	VATActive     bool         `yaml:"vat_active"`
	Status        int          `yaml:"status"`
}

type lineRecord struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
}

func (rec invoiceRecord) toEntity() (*entity.Invoice, error) {
	invoiceDate, err := entity.ParseDate(rec.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("invoice_date: %w", err)
	}
	dueDate, err := entity.ParseDate(rec.DueDate)
	if err != nil {
		return nil, fmt.Errorf("due_date: %w", err)
	}
	vatRate, err := parseDecimal(rec.VATRate)
	if err != nil {
		return nil, fmt.Errorf("vat_rate: %w", err)
	}

	var lines []entity.InvoiceLine
	if rec.Lines != nil {
		lines = make([]entity.InvoiceLine, 0, len(rec.Lines))
		for i, l := range rec.Lines {
			qty, err := parseDecimal(l.Quantity)
			if err != nil {
				return nil, fmt.Errorf("lines[%d].quantity: %w", i, err)
			}
			price, err := parseDecimal(l.UnitPrice)
			if err != nil {
				return nil, fmt.Errorf("lines[%d].unit_price: %w", i, err)
			}
			lines = append(lines, entity.InvoiceLine{Description: l.Description, Quantity: qty, UnitPrice: price})
		}
	}

	return &entity.Invoice{
		ID:            rec.ID,
		Name:          rec.Name,
		IssuerName:    rec.IssuerName,
		IssuerAddress: rec.IssuerAddress,
		ClientName:    rec.ClientName,
		ClientAddress: rec.ClientAddress,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Lines:         lines,
		VATRate:       vatRate,
		VATActive:     rec.VATActive,
		Status:        entity.Status(rec.Status),
	}, nil
}

// Un valor ausente vale cero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
