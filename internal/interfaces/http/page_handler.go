package http

import (
	"bytes"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/view"
)

// PageHandler sirve las páginas HTML (listado y documento).
type PageHandler struct {
	uc    *billing.InvoiceUseCase
	pages *view.Pages
}

// NewPageHandler construye el handler.
func NewPageHandler(uc *billing.InvoiceUseCase, pages *view.Pages) *PageHandler {
	return &PageHandler{uc: uc, pages: pages}
}

// List página con una tarjeta por factura.
// GET /
func (h *PageHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.ListEntries(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	var buf bytes.Buffer
	if err := h.pages.RenderList(&buf, entries); err != nil {
		return err
	}
	return sendHTML(c, buf.Bytes())
}

// Document página de detalle con el botón de exportación.
// GET /invoice/:id
func (h *PageHandler) Document(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.uc.GetDocument(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	var buf bytes.Buffer
	if err := h.pages.RenderDocument(&buf, doc, exportURL(doc.InvoiceID)); err != nil {
		return err
	}
	return sendHTML(c, buf.Bytes())
}

func exportURL(id string) string {
	return "/api/invoices/" + url.PathEscape(id) + "/export"
}

func sendHTML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}
