package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages plantillas HTML del listado y del documento.
type Pages struct {
	list     *template.Template
	document *template.Template
}

// ListPage datos de la página de listado.
type ListPage struct {
	Title   string
	Entries []SummaryEntry
}

// DocumentPage datos de la página de detalle.
type DocumentPage struct {
	Document    *Document
	ExportURL   string
	ExportLabel string
	Labels      map[string]string
}

// NewPages parsea las plantillas embebidas.
func NewPages() (*Pages, error) {
	list, err := template.ParseFS(templateFS, "templates/layout.html", "templates/list.html")
	if err != nil {
		return nil, fmt.Errorf("view: parsear listado: %w", err)
	}
	document, err := template.ParseFS(templateFS, "templates/layout.html", "templates/document.html")
	if err != nil {
		return nil, fmt.Errorf("view: parsear documento: %w", err)
	}
	return &Pages{list: list, document: document}, nil
}

// RenderList escribe la página de listado.
func (p *Pages) RenderList(w io.Writer, entries []SummaryEntry) error {
	return p.list.ExecuteTemplate(w, "layout", ListPage{Title: "Factures", Entries: entries})
}

// RenderDocument escribe la página del documento con el botón de exportación.
func (p *Pages) RenderDocument(w io.Writer, doc *Document, exportURL string) error {
	return p.document.ExecuteTemplate(w, "layout", DocumentPage{
		Document:    doc,
		ExportURL:   exportURL,
		ExportLabel: ExportBtnLabel,
		Labels: map[string]string{
			"Date":     LabelDate,
			"DueDate":  LabelDueDate,
			"Desc":     LabelColDesc,
			"Qty":      LabelColQty,
			"Price":    LabelColPrice,
			"Total":    LabelColTotal,
			"TotalHT":  LabelTotalHT,
			"TotalTTC": LabelTotalTTC,
		},
	})
}
