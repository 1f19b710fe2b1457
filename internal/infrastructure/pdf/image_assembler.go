package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhoicas/taff-facture/internal/application/export"
)

var _ export.Assembler = (*ImageAssembler)(nil)

const imageName = "facture"

// ImageAssembler arma un PDF A4 vertical (mm) cuya única página es la imagen
// capturada, a todo el ancho y con alto proporcional. Si la imagen es más alta
// que la página, el excedente queda fuera (sin paginar).
type ImageAssembler struct {
	creator string
}

// NewImageAssembler construye el ensamblador; creator va a los metadatos del PDF.
func NewImageAssembler(creator string) *ImageAssembler {
	return &ImageAssembler{creator: creator}
}

// ImageHeight alto en mm de una imagen de size píxeles escalada a pageWidth mm.
func ImageHeight(size image.Point, pageWidth float64) float64 {
	return float64(size.Y) * pageWidth / float64(size.X)
}

// Assemble incrusta img (PNG) en la página y devuelve los bytes del PDF.
func (a *ImageAssembler) Assemble(ctx context.Context, img []byte, size image.Point, title string) ([]byte, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("pdf: dimensiones de imagen inválidas %v", size)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetCreator(a.creator, true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(img))
	doc.ImageOptions(imageName, 0, 0, pageWidth, ImageHeight(size, pageWidth), false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return buf.Bytes(), nil
}
