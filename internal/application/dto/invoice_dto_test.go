package dto_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taff-facture/internal/application/dto"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

func decode(t *testing.T, body string) dto.InvoicePayload {
	t.Helper()
	var p dto.InvoicePayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestInvoicePayload_ToEntity(t *testing.T) {
	p := decode(t, `{
		"id": "INV-42", "name": "Acme-Jan",
		"invoice_date": "2024-01-05", "due_date": "2024-02-04T00:00:00Z",
		"vat_rate": "20", "vat_active": true, "status": 3,
		"lines": [{"description": "Conseil", "quantity": 2, "unit_price": "10.50"}]
	}`)

	inv, err := p.ToEntity()

	require.NoError(t, err)
	assert.Equal(t, "INV-42", inv.ID)
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.Equal(t, 2024, inv.InvoiceDate.Year())
	assert.Equal(t, 4, inv.DueDate.Day())
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "10.5", inv.Lines[0].UnitPrice.String())
	assert.True(t, inv.VATActive)
}

func TestInvoicePayload_ConservaLineasAusentes(t *testing.T) {
	for name, body := range map[string]string{
		"ausente": `{"id": "A"}`,
		"null":    `{"id": "A", "lines": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			inv, err := decode(t, body).ToEntity()
			require.NoError(t, err)
			assert.Nil(t, inv.Lines)
		})
	}

	inv, err := decode(t, `{"id": "A", "lines": []}`).ToEntity()
	require.NoError(t, err)
	assert.NotNil(t, inv.Lines)
	assert.Empty(t, inv.Lines)
}

func TestInvoicePayload_FechaInvalida(t *testing.T) {
	_, err := decode(t, `{"id": "A", "invoice_date": "05/01/2024"}`).ToEntity()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFromSummaryEntries(t *testing.T) {
	entries := []view.SummaryEntry{
		{ID: "INV-42", Card: &view.SummaryCard{
			Index: 0, ID: "INV-42", Name: "Acme-Jan",
			Badge: view.BadgeFor(entity.StatusPaid), Total: "30.00 €", Link: "/invoice/INV-42",
		}},
		{ID: "INV-BAD", Err: errors.New("líneas ausentes")},
	}

	out := dto.FromSummaryEntries(entries)

	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Payée 💲", out.Items[0].Badge.Text)
	assert.Equal(t, "paid", out.Items[0].Badge.Variant)
	assert.Equal(t, "INV-BAD", out.Items[1].ID)
	assert.Equal(t, 1, out.Items[1].Index)
	assert.Equal(t, "líneas ausentes", out.Items[1].Error)
	assert.Nil(t, out.Items[1].Badge)
}
