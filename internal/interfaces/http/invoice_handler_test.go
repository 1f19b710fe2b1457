package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/dto"
	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
	"github.com/jhoicas/taff-facture/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/taff-facture/internal/interfaces/http"
	"github.com/jhoicas/taff-facture/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type rendererFunc func(ctx context.Context, doc *view.Document) ([]byte, error)

func (f rendererFunc) RenderPDF(ctx context.Context, doc *view.Document) ([]byte, error) {
	return f(ctx, doc)
}

func okRenderer(context.Context, *view.Document) ([]byte, error) {
	return []byte("%PDF-1.3 test"), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// buildTestApp construye la aplicación Fiber con repositorio en memoria y el
// renderer indicado.
func buildTestApp(t *testing.T, renderer export.Renderer) *fiber.App {
	t.Helper()
	repo := memory.NewInvoiceRepository(
		&entity.Invoice{
			ID: "INV-42", Name: "Acme-Jan",
			IssuerName: "Taff SARL", ClientName: "Acme",
			Lines: []entity.InvoiceLine{
				{Description: "Conseil", Quantity: d("2"), UnitPrice: d("10")},
				{Description: "Support", Quantity: d("1"), UnitPrice: d("5")},
			},
			VATRate: d("20"), VATActive: true, Status: entity.StatusPaid,
		},
		&entity.Invoice{ID: "INV-BAD", Name: "Cassée"},
	)
	f := view.NewFormatter(view.DefaultLocale, view.DefaultCurrency)
	uc := billing.NewInvoiceUseCase(repo, export.NewExporter(renderer, f), f)
	pages, err := view.NewPages()
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{InvoiceUC: uc, Pages: pages})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestList_DevuelveTarjetasConErrorPorEntrada(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodGet, "/api/invoices", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	var out dto.InvoiceListResponse
	decodeJSON(t, resp, &out)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "30.00 €", out.Items[0].Total)
	assert.Equal(t, "Payée 💲", out.Items[0].Badge.Text)
	assert.Equal(t, "INV-BAD", out.Items[1].ID)
	assert.NotEmpty(t, out.Items[1].Error)
}

func TestGetByID(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodGet, "/api/invoices/INV-42", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var doc view.Document
	decodeJSON(t, resp, &doc)
	assert.Equal(t, "Facture n° INV-42", doc.Title)
	assert.Equal(t, "30.00 €", doc.Totals.TTC)
	require.NotNil(t, doc.Totals.VAT)
	assert.Equal(t, "TVA 20 %", doc.Totals.VAT.Label)
}

func TestGetByID_Errores(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	cases := map[string]struct {
		path   string
		status int
		code   string
	}{
		"no existe":   {"/api/invoices/NOPE", fiber.StatusNotFound, dto.CodeNotFound},
		"mal formada": {"/api/invoices/INV-BAD", fiber.StatusUnprocessableEntity, dto.CodeInvalidInvoice},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.status, resp.StatusCode)
			var e dto.ErrorResponse
			decodeJSON(t, resp, &e)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestErrorResponse_LlevaElRequestID(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodGet, "/api/invoices/NOPE", "")
	generated := resp.Header.Get(apphttp.HeaderRequestID)
	require.NotEmpty(t, generated)
	var e dto.ErrorResponse
	decodeJSON(t, resp, &e)
	assert.Equal(t, generated, e.RequestID)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/NOPE", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
	decodeJSON(t, resp, &e)
	assert.Equal(t, "req-123", e.RequestID)
}

func TestExport_DevuelvePDFConCelebracion(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/INV-42/export", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="facture-Acme-Jan.pdf"; filename*=UTF-8''facture-Acme-Jan.pdf`, resp.Header.Get("Content-Disposition"))
	assert.NotEmpty(t, resp.Header.Get("X-Export-ID"))

	var c export.Celebration
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get(apphttp.HeaderCelebration)), &c))
	assert.Equal(t, export.DefaultCelebration(), c)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestExport_FalloDelRender(t *testing.T) {
	app := buildTestApp(t, rendererFunc(func(context.Context, *view.Document) ([]byte, error) {
		return nil, errors.New("captura fallida")
	}))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/INV-42/export", "")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(apphttp.HeaderCelebration))

	var e dto.ErrorResponse
	decodeJSON(t, resp, &e)
	assert.Equal(t, dto.CodeExportFailed, e.Code)
	assert.Contains(t, e.Message, "captura fallida")
}

func TestExport_DuplicadoEnCursoDevuelve409(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	app := buildTestApp(t, rendererFunc(func(context.Context, *view.Document) ([]byte, error) {
		close(started)
		<-release
		return []byte("%PDF-1.3"), nil
	}))

	first := make(chan *http.Response, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/invoices/INV-42/export", nil)
		resp, _ := app.Test(req, -1)
		first <- resp
	}()
	<-started

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/INV-42/export", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decodeJSON(t, resp, &e)
	assert.Equal(t, dto.CodeExportInProgress, e.Code)

	close(release)
	r := <-first
	require.NotNil(t, r)
	assert.Equal(t, fiber.StatusOK, r.StatusCode)
}

func TestExport_NoExiste(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/NOPE/export", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSummarize(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/summary", `{
		"id": "X-1", "name": "Ad hoc", "status": 4,
		"vat_rate": 20, "vat_active": false,
		"lines": [{"description": "a", "quantity": 3, "unit_price": 2.5}]
	}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var card dto.InvoiceSummaryResponse
	decodeJSON(t, resp, &card)
	assert.Equal(t, "7.50 €", card.Total)
	assert.Equal(t, "Annulée", card.Badge.Label)
	assert.Equal(t, "/invoice/X-1", card.Link)
}

func TestSummarize_LineasAusentes(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/summary", `{"id": "X-2", "lines": null}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSummarize_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/summary", `{"id": `)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportPayload(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/export", `{
		"id": "X-3", "name": "Payload", "invoice_date": "2024-05-01",
		"lines": []
	}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="facture-Payload.pdf"; filename*=UTF-8''facture-Payload.pdf`, resp.Header.Get("Content-Disposition"))
}

func TestExportPayload_NombreConAcentosYComillas(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodPost, "/api/invoices/export", `{"id": "X-4", "name": "Été-Café", "lines": []}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cd := resp.Header.Get("Content-Disposition")
	assert.Equal(t, `attachment; filename="facture-_t_-Caf_.pdf"; filename*=UTF-8''facture-%C3%89t%C3%A9-Caf%C3%A9.pdf`, cd)

	resp = doRequest(t, app, http.MethodPost, "/api/invoices/export", `{"id": "X-5", "name": "Devis \"A\"", "lines": []}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="facture-Devis _A_.pdf"; filename*=UTF-8''facture-Devis%20%22A%22.pdf`, resp.Header.Get("Content-Disposition"))
}

func TestContentDisposition_SoloASCII(t *testing.T) {
	for _, name := range []string{"facture-Été-Café.pdf", "facture-Devis \"A\".pdf", "facture-a\\b.pdf", "facture-1+1.pdf"} {
		cd := apphttp.ContentDisposition(name)
		for _, r := range cd {
			assert.True(t, r >= 0x20 && r <= 0x7e, "byte no ASCII en %q", cd)
		}
		i := strings.Index(cd, "filename*=UTF-8''")
		require.GreaterOrEqual(t, i, 0)
		decoded, err := url.PathUnescape(cd[i+len("filename*=UTF-8''"):])
		require.NoError(t, err)
		assert.Equal(t, name, decoded)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Páginas HTML
// ──────────────────────────────────────────────────────────────────────────────

func TestPages(t *testing.T) {
	app := buildTestApp(t, rendererFunc(okRenderer))

	resp := doRequest(t, app, http.MethodGet, "/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Acme-Jan")
	assert.Contains(t, string(body), "/invoice/INV-42")

	resp = doRequest(t, app, http.MethodGet, "/invoice/INV-42", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Facture n° INV-42")
	assert.Contains(t, string(body), `data-export-url="/api/invoices/INV-42/export"`)

	resp = doRequest(t, app, http.MethodGet, "/invoice/NOPE", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
