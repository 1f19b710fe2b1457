// Package raster dibuja un view.Document en un bitmap (captura) y lo codifica en PNG.
//
// Las coordenadas se expresan en píxeles CSS sobre un ancho fijo de 794px
// (A4 a 96 dpi) y se multiplican por el factor de sobremuestreo al dibujar;
// las fuentes se rasterizan directamente al tamaño escalado.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
)

var _ export.Capturer = (*Capturer)(nil)

// PageWidth ancho lógico del documento capturado, en píxeles CSS.
const PageWidth = 794

// PageHeight alto de una página A4 al ancho PageWidth. El PDF muestra una sola
// página, así que el lienzo nunca pasa de este alto.
const PageHeight = PageWidth * 297.0 / 210.0

const padding = 32

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorText   = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	colorMuted  = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	colorAccent = color.RGBA{R: 55, G: 205, B: 190, A: 255}
	colorInfo   = color.RGBA{R: 58, G: 191, B: 248, A: 255}
	colorZebra  = color.RGBA{R: 242, G: 242, B: 242, A: 255}
	colorRule   = color.RGBA{R: 229, G: 231, B: 235, A: 255}
)

// Capturer implementa export.Capturer con las fuentes Go (regular y negrita).
type Capturer struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// NewCapturer parsea las fuentes embebidas.
func NewCapturer() (*Capturer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: fuente regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: fuente negrita: %w", err)
	}
	return &Capturer{regular: regular, bold: bold}, nil
}

// Capture mide el documento, reserva el lienzo a su alto (recortado a una
// página A4) y lo dibuja. Lo que queda por debajo de la página no se pinta.
func (c *Capturer) Capture(ctx context.Context, doc *view.Document, scale float64) (image.Image, error) {
	if doc == nil {
		return nil, domain.ErrRenderTargetMissing
	}
	if scale <= 0 {
		scale = 1
	}

	p := &painter{scale: scale, capturer: c, faces: make(map[faceSpec]font.Face)}
	defer p.close()

	height, err := p.layout(ctx, doc)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, p.px(PageWidth), p.px(math.Min(height, PageHeight))))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	p.img = img

	if _, err := p.layout(ctx, doc); err != nil {
		return nil, err
	}
	return img, nil
}

// ── Painter ───────────────────────────────────────────────────────────────────

type faceSpec struct {
	bold bool
	size float64
}

var (
	brandFace = faceSpec{bold: true, size: 24}
	titleFace = faceSpec{bold: true, size: 14}
	bodyFace  = faceSpec{size: 14}
	smallFace = faceSpec{size: 12}
	labelFace = faceSpec{bold: true, size: 12}
)

type align int

const (
	alignLeft align = iota
	alignRight
)

// painter recorre el layout; con img == nil solo mide.
type painter struct {
	img      *image.RGBA
	scale    float64
	capturer *Capturer
	faces    map[faceSpec]font.Face
	err      error
}

func (p *painter) px(v float64) int { return int(math.Round(v * p.scale)) }

func (p *painter) face(spec faceSpec) font.Face {
	if f, ok := p.faces[spec]; ok {
		return f
	}
	src := p.capturer.regular
	if spec.bold {
		src = p.capturer.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    spec.size * p.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("raster: crear fuente %.0fpx: %w", spec.size, err)
		}
		return nil
	}
	p.faces[spec] = f
	return f
}

func (p *painter) close() {
	for _, f := range p.faces {
		_ = f.Close()
	}
}

// width ancho del texto en píxeles CSS.
func (p *painter) width(s string, spec faceSpec) float64 {
	f := p.face(spec)
	if f == nil {
		return 0
	}
	return float64(font.MeasureString(f, s)) / 64 / p.scale
}

func (p *painter) text(x, baseline float64, s string, spec faceSpec, col color.Color, a align) {
	if p.img == nil || s == "" {
		return
	}
	if p.px(baseline-spec.size*2) > p.img.Bounds().Max.Y {
		return
	}
	f := p.face(spec)
	if f == nil {
		return
	}
	d := &font.Drawer{Dst: p.img, Src: image.NewUniform(col), Face: f}
	dotX := fixed.I(p.px(x))
	if a == alignRight {
		dotX -= d.MeasureString(s)
	}
	d.Dot = fixed.Point26_6{X: dotX, Y: fixed.I(p.px(baseline))}
	d.DrawString(s)
}

func (p *painter) fill(x, y, w, h float64, col color.Color) {
	if p.img == nil {
		return
	}
	r := image.Rect(p.px(x), p.px(y), p.px(x+w), p.px(y+h))
	draw.Draw(p.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// wrap corta s en líneas de como máximo maxWidth píxeles CSS.
func (p *painter) wrap(s string, spec faceSpec, maxWidth float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if p.width(candidate, spec) > maxWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// ── Layout ────────────────────────────────────────────────────────────────────

// Columnas de la tabla (x en píxeles CSS).
const (
	colIndex     = padding + 8
	colDesc      = padding + 48
	colQty       = 440
	colUnitRight = 640
	colTotal     = PageWidth - padding - 8
	descWidth    = colQty - colDesc - 16
	addressWidth = 208
)

// layout dibuja (o mide) el documento y devuelve el alto total en píxeles CSS.
func (p *painter) layout(ctx context.Context, doc *view.Document) (float64, error) {
	right := float64(PageWidth - padding)
	y := float64(padding)

	// Encabezado: marca a la izquierda, número y fechas a la derecha.
	p.text(padding, y+28, "Taff", brandFace, colorText, alignLeft)
	p.text(padding+p.width("Taff", brandFace), y+28, "Facture", brandFace, colorAccent, alignLeft)
	p.text(right, y+14, strings.ToUpper(doc.Title), labelFace, colorInfo, alignRight)
	p.text(right, y+36, strings.ToUpper(view.LabelDate+" "+doc.InvoiceDate), smallFace, colorText, alignRight)
	p.text(right, y+54, strings.ToUpper(view.LabelDueDate+" "+doc.DueDate), smallFace, colorText, alignRight)
	y += 72

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("raster: %w", err)
	}

	// Emisor y cliente.
	y += 24
	p.text(padding, y+14, doc.Issuer.Label, labelFace, colorInfo, alignLeft)
	p.text(right, y+14, doc.Client.Label, labelFace, colorInfo, alignRight)
	y += 28
	p.text(padding, y+14, doc.Issuer.Name, titleFace, colorText, alignLeft)
	p.text(right, y+14, doc.Client.Name, titleFace, colorText, alignRight)
	y += 20
	issuer := p.wrap(doc.Issuer.Address, smallFace, addressWidth)
	client := p.wrap(doc.Client.Address, smallFace, addressWidth)
	for i, l := range issuer {
		p.text(padding, y+14+float64(i)*18, l, smallFace, colorMuted, alignLeft)
	}
	for i, l := range client {
		p.text(right, y+14+float64(i)*18, l, smallFace, colorMuted, alignRight)
	}
	y += float64(max(len(issuer), len(client)))*18 + 24

	// Tabla de líneas.
	p.text(colDesc, y+20, view.LabelColDesc, labelFace, colorMuted, alignLeft)
	p.text(colQty, y+20, view.LabelColQty, labelFace, colorMuted, alignLeft)
	p.text(colUnitRight, y+20, view.LabelColPrice, labelFace, colorMuted, alignRight)
	p.text(colTotal, y+20, view.LabelColTotal, labelFace, colorMuted, alignRight)
	y += 32
	p.fill(padding, y-1, right-padding, 1, colorRule)

	for i, row := range doc.Rows {
		if i%50 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, fmt.Errorf("raster: %w", err)
			}
		}
		desc := p.wrap(row.Description, bodyFace, descWidth)
		h := float64(max(len(desc), 1))*18 + 12
		if i%2 == 1 {
			p.fill(padding, y, right-padding, h, colorZebra)
		}
		baseline := y + 20
		p.text(colIndex, baseline, fmt.Sprint(row.Index), bodyFace, colorText, alignLeft)
		for j, l := range desc {
			p.text(colDesc, baseline+float64(j)*18, l, bodyFace, colorText, alignLeft)
		}
		p.text(colQty, baseline, row.Quantity, bodyFace, colorText, alignLeft)
		p.text(colUnitRight, baseline, row.UnitPrice, bodyFace, colorText, alignRight)
		p.text(colTotal, baseline, row.Total, bodyFace, colorText, alignRight)
		y += h
	}
	y += 24

	// Totales.
	p.text(padding, y+20, view.LabelTotalHT, titleFace, colorText, alignLeft)
	p.text(right, y+20, doc.Totals.HT, bodyFace, colorText, alignRight)
	y += 30
	if vat := doc.Totals.VAT; vat != nil {
		p.text(padding, y+20, vat.Label, titleFace, colorText, alignLeft)
		p.text(right, y+20, vat.Amount, bodyFace, colorText, alignRight)
		y += 30
	}
	ttcWidth := p.width(doc.Totals.TTC, titleFace) + 24
	p.fill(right-ttcWidth, y+2, ttcWidth, 26, colorAccent)
	p.text(padding, y+20, view.LabelTotalTTC, titleFace, colorText, alignLeft)
	p.text(right-12, y+20, doc.Totals.TTC, titleFace, colorText, alignRight)
	y += 30 + padding

	return y, p.err
}
