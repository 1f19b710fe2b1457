// Package export implementa el flujo de exportación de una factura a PDF:
//
//	Idle ──Export()──▶ Exporting ──▶ Idle
//	                       │
//	                       ├─ éxito  → Result{succeeded} + celebración
//	                       └─ fallo  → Result{failed, Err}
//
// Un disparo sobre una factura que ya se está exportando se ignora (Result{busy}).
// Las facturas sin id no comparten ese bloqueo.
// Sin documento (factura nil) el disparo es un no-op (Result{skipped}).
package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
	"github.com/jhoicas/taff-facture/internal/domain/entity"
)

// Exporter coordina la exportación y guarda el estado por factura.
type Exporter struct {
	renderer   Renderer
	formatter  view.Formatter
	celebrator Celebrator
	observer   Observer
	timeout    time.Duration
	newID      func() string

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configura el Exporter.
type Option func(*Exporter)

// WithCelebrator registra el receptor del efecto de celebración.
func WithCelebrator(c Celebrator) Option {
	return func(e *Exporter) { e.celebrator = c }
}

// WithObserver registra el observador de resultados.
func WithObserver(o Observer) Option {
	return func(e *Exporter) { e.observer = o }
}

// WithTimeout limita la duración del render (captura + codificación + armado).
func WithTimeout(d time.Duration) Option {
	return func(e *Exporter) { e.timeout = d }
}

// NewExporter construye el exportador.
func NewExporter(renderer Renderer, formatter view.Formatter, opts ...Option) *Exporter {
	e := &Exporter{
		renderer:   renderer,
		formatter:  formatter,
		celebrator: nopHooks{},
		observer:   nopHooks{},
		newID:      uuid.NewString,
		inflight:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State devuelve el estado actual de la exportación de una factura.
func (e *Exporter) State(invoiceID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.inflight[invoiceID]; ok {
		return StateExporting
	}
	return StateIdle
}

// Export exporta la factura usando los totales del llamador (no los recalcula).
func (e *Exporter) Export(ctx context.Context, inv *entity.Invoice, totals entity.Totals) Result {
	start := time.Now()
	res := Result{ExportID: e.newID(), Status: StatusSkipped}

	if inv != nil {
		res.InvoiceID = inv.ID
		key := inflightKey(inv.ID, res.ExportID)
		if e.acquire(key) {
			res = e.run(ctx, res, inv, totals)
			e.release(key)
		} else {
			res.Status = StatusBusy
			res.Err = domain.ErrExportInProgress
		}
	}

	res.Duration = time.Since(start)
	if res.OK() {
		e.celebrator.Celebrate(ctx, res.InvoiceID, *res.Celebration)
	}
	e.observer.ExportFinished(ctx, res)
	return res
}

func (e *Exporter) run(ctx context.Context, res Result, inv *entity.Invoice, totals entity.Totals) (out Result) {
	out = res
	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.PDF = nil
			out.Celebration = nil
			out.Err = fmt.Errorf("export: pánico en el render: %v", r)
		}
	}()

	doc, err := view.BuildDocument(inv, totals, e.formatter)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("export: armar documento: %w", err)
		return out
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	pdf, err := e.renderer.RenderPDF(ctx, doc)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	c := DefaultCelebration()
	out.Status = StatusSucceeded
	out.Filename = Filename(inv.Name)
	out.PDF = pdf
	out.Celebration = &c
	return out
}

// inflightKey una factura sin id no se puede identificar entre disparos:
// cada exportación sin id es independiente.
func inflightKey(invoiceID, exportID string) string {
	if invoiceID == "" {
		return "export:" + exportID
	}
	return invoiceID
}

func (e *Exporter) acquire(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[id]; busy {
		return false
	}
	e.inflight[id] = struct{}{}
	return true
}

func (e *Exporter) release(id string) {
	e.mu.Lock()
	delete(e.inflight, id)
	e.mu.Unlock()
}

type nopHooks struct{}

func (nopHooks) Celebrate(context.Context, string, Celebration) {}
func (nopHooks) ExportFinished(context.Context, Result)         {}
