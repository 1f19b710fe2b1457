package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taff-facture/internal/application/dto"
	"github.com/jhoicas/taff-facture/internal/domain"
)

// writeError traduce los errores de dominio a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, dto.CodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrInvalidInvoice):
		return respondError(c, fiber.StatusUnprocessableEntity, dto.CodeInvalidInvoice, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, dto.CodeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrExportInProgress):
		return respondError(c, fiber.StatusConflict, dto.CodeExportInProgress, "ya hay una exportación en curso para esta factura")
	default:
		return respondError(c, fiber.StatusInternalServerError, dto.CodeInternal, err.Error())
	}
}

// respondError escribe el cuerpo de error con el request id de la petición.
func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: GetRequestID(c),
	})
}
