package export

import (
	"context"

	"github.com/jhoicas/taff-facture/pkg/logger"
)

// LogHooks registra resultados y celebraciones en el logger estructurado.
type LogHooks struct {
	log *logger.Logger
}

// NewLogHooks construye los hooks sobre el logger de la aplicación.
func NewLogHooks(log *logger.Logger) *LogHooks {
	return &LogHooks{log: log}
}

// ExportFinished fallos a nivel error, el resto a nivel info/debug.
func (h *LogHooks) ExportFinished(_ context.Context, r Result) {
	switch r.Status {
	case StatusFailed:
		h.log.Error().Err(r.Err).
			Str("export_id", r.ExportID).
			Str("invoice_id", r.InvoiceID).
			Dur("duration", r.Duration).
			Msg("error generando el PDF")
	case StatusSucceeded:
		h.log.Info().
			Str("export_id", r.ExportID).
			Str("invoice_id", r.InvoiceID).
			Str("filename", r.Filename).
			Int("bytes", len(r.PDF)).
			Dur("duration", r.Duration).
			Msg("PDF generado")
	default:
		h.log.Debug().
			Str("export_id", r.ExportID).
			Str("invoice_id", r.InvoiceID).
			Str("status", string(r.Status)).
			Msg("exportación no ejecutada")
	}
}

// Celebrate deja rastro del efecto enviado a la interfaz.
func (h *LogHooks) Celebrate(_ context.Context, invoiceID string, c Celebration) {
	h.log.Debug().
		Str("invoice_id", invoiceID).
		Str("effect", c.Effect).
		Int("particles", c.ParticleCount).
		Msg("celebración")
}
