package export

import (
	"strings"
	"time"
)

// Status resultado terminal de una exportación.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped" // documento no disponible: no-op silencioso
	StatusBusy      Status = "busy"    // ya hay una exportación en curso para la factura
)

// State estado de la acción de exportar para una factura.
type State string

const (
	StateIdle      State = "idle"
	StateExporting State = "exporting"
)

// Celebration parámetros del efecto de partículas mostrado tras el éxito.
type Celebration struct {
	Effect        string  `json:"effect"`
	ParticleCount int     `json:"particle_count"`
	Spread        int     `json:"spread"`
	OriginY       float64 `json:"origin_y"`
	ZIndex        int     `json:"z_index"`
}

// DefaultCelebration confeti: 200 partículas, apertura 70, origen y=0.6, z-index 9999.
func DefaultCelebration() Celebration {
	return Celebration{
		Effect:        "confetti",
		ParticleCount: 200,
		Spread:        70,
		OriginY:       0.6,
		ZIndex:        9999,
	}
}

// Result valor devuelto al llamador en lugar de tragar el error.
type Result struct {
	ExportID    string
	InvoiceID   string
	Status      Status
	Filename    string
	PDF         []byte
	Celebration *Celebration
	Err         error
	Duration    time.Duration
}

// OK indica si se produjo un archivo.
func (r Result) OK() bool { return r.Status == StatusSucceeded }

// Filename nombre del archivo descargado: facture-<nombre>.pdf.
// Los separadores de ruta y caracteres de control del nombre se reemplazan por "-".
func Filename(name string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f {
			return '-'
		}
		return r
	}, name)
	return "facture-" + clean + ".pdf"
}
