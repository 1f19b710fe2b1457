package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/infrastructure/postgres"
	"github.com/jhoicas/taff-facture/pkg/config"
)

// Test de integración: requiere TEST_DATABASE_URL apuntando a una base desechable.
func TestInvoiceRepo_Integracion(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/0001_invoices.sql")
	require.NoError(t, err)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	_, err = tx.Exec(ctx, string(schema))
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (id, name, client_name, invoice_date, vat_rate, vat_active, status)
		VALUES ('T-1', 'Acme-Jan', 'Acme', '2024-01-05', 20, TRUE, 3),
		       ('T-2', 'Vide', NULL, NULL, NULL, FALSE, 9)`)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `
		INSERT INTO invoice_lines (invoice_id, position, description, quantity, unit_price)
		VALUES ('T-1', 2, 'Support', 1, 5), ('T-1', 1, 'Conseil', 2, 10)`)
	require.NoError(t, err)

	repo := postgres.NewInvoiceRepository(tx)

	inv, err := repo.GetByID(ctx, "T-1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.True(t, inv.VATActive)
	assert.Equal(t, "20", inv.VATRate.String())
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Conseil", inv.Lines[0].Description, "ordenadas por posición")

	empty, err := repo.GetByID(ctx, "T-2")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.NotNil(t, empty.Lines)
	assert.Empty(t, empty.Lines)
	assert.True(t, empty.InvoiceDate.IsZero())

	missing, err := repo.GetByID(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(list), 2)
}
