package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jhoicas/taff-facture/internal/application/export"
)

var _ export.Encoder = PNGEncoder{}

// PNGEncoder codifica el bitmap capturado como PNG.
type PNGEncoder struct{}

// Encode devuelve los bytes PNG de img.
func (PNGEncoder) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("raster: imagen nil")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}
