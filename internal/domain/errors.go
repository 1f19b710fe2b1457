package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidInvoice      = errors.New("données de facture invalides ou manquantes")
	ErrExportInProgress    = errors.New("exportación en curso para esta factura")
	ErrRenderTargetMissing = errors.New("documento no disponible para exportar")
)
