package export

import (
	"context"
	"fmt"

	"github.com/jhoicas/taff-facture/internal/application/view"
)

// DefaultScale factor de sobremuestreo para nitidez de impresión.
const DefaultScale = 3

// RasterRenderer captura → codifica → arma: el documento termina como una
// única imagen a lo ancho de una página A4.
type RasterRenderer struct {
	capturer  Capturer
	encoder   Encoder
	assembler Assembler
	scale     float64
}

// NewRasterRenderer construye el pipeline. scale <= 0 usa DefaultScale.
func NewRasterRenderer(capturer Capturer, encoder Encoder, assembler Assembler, scale float64) *RasterRenderer {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &RasterRenderer{capturer: capturer, encoder: encoder, assembler: assembler, scale: scale}
}

// RenderPDF ejecuta los tres pasos; cualquier error corta el pipeline.
func (r *RasterRenderer) RenderPDF(ctx context.Context, doc *view.Document) ([]byte, error) {
	img, err := r.capturer.Capture(ctx, doc, r.scale)
	if err != nil {
		return nil, fmt.Errorf("export: captura: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export: captura: %w", err)
	}

	encoded, err := r.encoder.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("export: codificación: %w", err)
	}

	pdf, err := r.assembler.Assemble(ctx, encoded, img.Bounds().Size(), doc.Title)
	if err != nil {
		return nil, fmt.Errorf("export: armado PDF: %w", err)
	}
	return pdf, nil
}
