package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Abreviaturas de mes por idioma (estilo "día mes-abreviado año" del navegador).
var monthTables = [][12]string{
	{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
}

// El primer tag es el fallback del matcher.
var localeMatcher = language.NewMatcher([]language.Tag{
	language.French,
	language.English,
	language.Spanish,
})

// DefaultLocale y DefaultCurrency valores de presentación por defecto.
const (
	DefaultLocale   = "fr-FR"
	DefaultCurrency = "€"
)

// Formatter formatea montos y fechas para las vistas.
type Formatter struct {
	currency string
	months   [12]string
}

// NewFormatter construye un Formatter a partir de un tag BCP-47 y un símbolo de moneda.
// Un locale inválido o no soportado cae en francés.
func NewFormatter(locale, currency string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	_, idx, _ := localeMatcher.Match(tag)
	if currency == "" {
		currency = DefaultCurrency
	}
	return Formatter{currency: currency, months: monthTables[idx]}
}

// Money redondea a 2 decimales y agrega la moneda como sufijo: "25.00 €".
func (f Formatter) Money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + f.currency
}

// Date formatea "05 janv. 2024". Una fecha cero devuelve "".
func (f Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(t.Format("02"))
	b.WriteByte(' ')
	b.WriteString(f.months[t.Month()-1])
	b.WriteByte(' ')
	b.WriteString(t.Format("2006"))
	return b.String()
}

// Number representación sin redondeo (cantidades, tasas).
func (f Formatter) Number(d decimal.Decimal) string {
	return d.String()
}
