package pdf

import (
	"fmt"

	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/infrastructure/raster"
	"github.com/jhoicas/taff-facture/pkg/config"
)

// NewRenderer arma el renderer según EXPORT_MODE:
//   - raster: captura → PNG → página A4 (gofpdf)
//   - vector: documento dibujado con Maroto
func NewRenderer(cfg config.ExportConfig, author string) (export.Renderer, error) {
	switch cfg.Mode {
	case config.ExportVector:
		return NewMarotoPDFGenerator(author), nil
	case config.ExportRaster, "":
		capturer, err := raster.NewCapturer()
		if err != nil {
			return nil, fmt.Errorf("pdf: capturador: %w", err)
		}
		return export.NewRasterRenderer(capturer, raster.PNGEncoder{}, NewImageAssembler(author), cfg.Scale), nil
	default:
		return nil, fmt.Errorf("pdf: modo de exportación desconocido %q", cfg.Mode)
	}
}
