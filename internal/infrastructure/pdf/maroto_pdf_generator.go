// Package pdf genera los PDF de factura.
//
// Modo raster: ImageAssembler pega la captura del documento en una página A4.
// Modo vector: MarotoPDFGenerator dibuja el mismo view.Document con Maroto v2.
//
// Layout de la página A4 (modo vector):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TaffFacture          │  Facture n° + fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÉMETTEUR: nombre + dirección │  CLIENT: nombre + dirección  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Description | Quantité | Prix Unitaire | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: HT / TVA (si activa) / TTC                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/taff-facture/internal/application/export"
	"github.com/jhoicas/taff-facture/internal/application/view"
	"github.com/jhoicas/taff-facture/internal/domain"
)

var _ export.Renderer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorAccent = &props.Color{Red: 55, Green: 205, Blue: 190}
	colorInfo   = &props.Color{Red: 58, Green: 191, Blue: 248}
	colorGray   = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorZebra  = &props.Color{Red: 242, Green: 242, Blue: 242}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa export.Renderer usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// RenderPDF genera el PDF vectorial y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderPDF(ctx context.Context, doc *view.Document) ([]byte, error) {
	if doc == nil {
		return nil, domain.ErrRenderTargetMissing
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(partiesRow(doc))
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(doc.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Totals)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y número + fechas (der).
func headerRow(doc *view.Document) core.Row {
	return row.New(22).Add(
		col.New(6).Add(
			text.New(view.Brand, props.Text{
				Style: fontstyle.BoldItalic, Size: 18, Color: colorAccent, Top: 3,
			}),
		),
		col.New(6).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorInfo, Top: 1,
			}),
			text.New(view.LabelDate+" : "+doc.InvoiceDate, props.Text{
				Size: 8, Align: align.Right, Top: 9,
			}),
			text.New(view.LabelDueDate+" : "+doc.DueDate, props.Text{
				Size: 8, Align: align.Right, Top: 14,
			}),
		),
	)
}

// partiesRow: emisor (izq) y cliente (der).
func partiesRow(doc *view.Document) core.Row {
	party := func(p view.Party, a align.Type) []core.Component {
		return []core.Component{
			text.New(p.Label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorInfo, Align: a, Top: 2}),
			text.New(p.Name, props.Text{Style: fontstyle.BoldItalic, Size: 10, Align: a, Top: 8}),
			text.New(p.Address, props.Text{Size: 8, Color: colorGray, Align: a, Top: 14}),
		}
	}
	return row.New(26).Add(
		col.New(6).Add(party(doc.Issuer, align.Left)...),
		col.New(6).Add(party(doc.Client, align.Right)...),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("", 1, align.Center),
		h(view.LabelColDesc, 5, align.Left),
		h(view.LabelColQty, 2, align.Center),
		h(view.LabelColPrice, 2, align.Right),
		h(view.LabelColTotal, 2, align.Right),
	)
}

// tableRows: una fila por línea, con fondo alterno.
func tableRows(rows []view.Row) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		rw := row.New(7).Add(
			cell(strconv.Itoa(r.Index), 1, align.Center),
			cell(r.Description, 5, align.Left),
			cell(r.Quantity, 2, align.Center),
			cell(r.UnitPrice, 2, align.Right),
			cell(r.Total, 2, align.Right),
		)
		if i%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, rw)
	}
	return result
}

// totalsRows: HT siempre, TVA solo si está activa, TTC siempre.
func totalsRows(t view.TotalsBlock) []core.Row {
	pair := func(label, value string, grand bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		var c *props.Color
		if grand {
			style, size, c = fontstyle.Bold, 10, colorAccent
		}
		return row.New(7).Add(
			col.New(6),
			col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Top: 1})),
			col.New(2).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Color: c, Right: 1, Top: 1})),
		)
	}

	rows := []core.Row{pair(view.LabelTotalHT, t.HT, false)}
	if t.VAT != nil {
		rows = append(rows, pair(t.VAT.Label, t.VAT.Amount, false))
	}
	return append(rows, pair(view.LabelTotalTTC, t.TTC, true))
}
