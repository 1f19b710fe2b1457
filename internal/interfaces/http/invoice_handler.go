package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/dto"
	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/domain"
)

// HeaderCelebration lleva el efecto a disparar en el cliente tras una exportación exitosa.
const HeaderCelebration = "X-Celebration"

// InvoiceHandler maneja las peticiones HTTP de facturas.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List lista las tarjetas resumen; una factura mal formada lleva su error
// en la propia entrada.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListSummaries(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.InvoiceListResponse{Items: items, Total: len(items)})
}

// GetByID devuelve el documento de la factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, dto.CodeInvalidInput, "id requerido")
	}
	doc, err := h.uc.GetDocument(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return c.JSON(doc)
}

// Export exporta la factura a PDF y la devuelve como adjunto.
// POST /api/invoices/:id/export
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondError(c, fiber.StatusBadRequest, dto.CodeInvalidInput, "id requerido")
	}
	res, err := h.uc.ExportInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	return writeExport(c, res)
}

// Summarize tarjeta resumen de una factura enviada en el cuerpo.
// POST /api/invoices/summary
func (h *InvoiceHandler) Summarize(c *fiber.Ctx) error {
	var in dto.InvoicePayload
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	inv, err := in.ToEntity()
	if err != nil {
		return writeError(c, err, "")
	}
	card, err := h.uc.SummarizePayload(inv, 0)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.FromSummaryCard(card))
}

// ExportPayload exporta a PDF una factura enviada en el cuerpo.
// POST /api/invoices/export
func (h *InvoiceHandler) ExportPayload(c *fiber.Ctx) error {
	var in dto.InvoicePayload
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	inv, err := in.ToEntity()
	if err != nil {
		return writeError(c, err, "")
	}
	res, err := h.uc.ExportPayload(c.UserContext(), inv)
	if err != nil {
		return writeError(c, err, "")
	}
	return writeExport(c, res)
}

// writeExport traduce export.Result a la respuesta HTTP:
//   - succeeded → 200 application/pdf + Content-Disposition + X-Celebration
//   - busy      → 409 EXPORT_IN_PROGRESS
//   - failed    → 500 EXPORT_FAILED con el motivo
//   - skipped   → 204 sin cuerpo
func writeExport(c *fiber.Ctx, res export.Result) error {
	c.Set("X-Export-ID", res.ExportID)

	switch res.Status {
	case export.StatusSucceeded:
		celebration, err := json.Marshal(res.Celebration)
		if err != nil {
			return writeError(c, err, "")
		}
		c.Set(HeaderCelebration, string(celebration))
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, ContentDisposition(res.Filename))
		return c.Status(fiber.StatusOK).Send(res.PDF)
	case export.StatusBusy:
		return writeError(c, domain.ErrExportInProgress, "")
	case export.StatusFailed:
		return respondError(c, fiber.StatusInternalServerError, dto.CodeExportFailed, "error generando el PDF: "+res.Err.Error())
	default:
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ContentDisposition cabecera de adjunto (RFC 6266): filename con un respaldo
// ASCII sin comillas ni barras y filename* con el nombre UTF-8 percent-encoded.
func ContentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	encoded := strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, encoded)
}
