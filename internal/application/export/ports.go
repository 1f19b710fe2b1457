package export

import (
	"context"
	"image"

	"github.com/jhoicas/taff-facture/internal/application/view"
)

// Renderer convierte un documento ya armado en los bytes de un PDF.
type Renderer interface {
	RenderPDF(ctx context.Context, doc *view.Document) ([]byte, error)
}

// Capturer rasteriza el documento a un bitmap con el factor de sobremuestreo indicado.
type Capturer interface {
	Capture(ctx context.Context, doc *view.Document, scale float64) (image.Image, error)
}

// Encoder codifica el bitmap como imagen (PNG).
type Encoder interface {
	Encode(img image.Image) ([]byte, error)
}

// Assembler arma el PDF A4 vertical en milímetros a partir de la imagen codificada.
type Assembler interface {
	Assemble(ctx context.Context, img []byte, size image.Point, title string) ([]byte, error)
}

// Celebrator recibe el efecto de celebración tras una exportación exitosa.
type Celebrator interface {
	Celebrate(ctx context.Context, invoiceID string, c Celebration)
}

// Observer recibe todo resultado terminal (éxito, fallo, omitido u ocupado).
type Observer interface {
	ExportFinished(ctx context.Context, r Result)
}
