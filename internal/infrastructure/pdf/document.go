// Package pdf renders receipt layouts with fpdf.
package pdf

import (
	"io"
	"strings"

	"axiso-backend/internal/application/receipts"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Document is a single A4 portrait page backed by fpdf.
type Document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

var _ receipts.Document = (*Document)(nil)

// NewA4 starts a blank A4 page with no margins or automatic page breaks.
func NewA4() *Document {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetFont(fontFamily, "", 12)
	return &Document{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

// NewReceiptDocument adapts NewA4 for receipts.Service.
func NewReceiptDocument() receipts.Document {
	return NewA4()
}

func (d *Document) PageWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w
}

func (d *Document) SetFont(style string, size float64) {
	d.pdf.SetFont(fontFamily, style, size)
}

func (d *Document) SetTextColor(r, g, b int) { d.pdf.SetTextColor(r, g, b) }

func (d *Document) SetFillColor(r, g, b int) { d.pdf.SetFillColor(r, g, b) }

func (d *Document) SetLineWidth(w float64) { d.pdf.SetLineWidth(w) }

func (d *Document) Text(x, y float64, s string) {
	d.pdf.Text(x, y, d.tr(s))
}

func (d *Document) TextWidth(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// SplitText wraps s at spaces so no line is wider than w. Widths are taken
// from the translated text, lines are returned untranslated for Text.
func (d *Document) SplitText(s string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for _, part := range d.breakWord(word, w) {
				switch {
				case line == "":
					line = part
				case d.TextWidth(line+" "+part) > w:
					lines = append(lines, line)
					line = part
				default:
					line += " " + part
				}
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// breakWord splits a single word wider than w into pieces that fit.
func (d *Document) breakWord(word string, w float64) []string {
	if d.TextWidth(word) <= w {
		return []string{word}
	}
	var parts []string
	var cur []rune
	for _, r := range word {
		if len(cur) > 0 && d.TextWidth(string(append(cur, r))) > w {
			parts = append(parts, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	return append(parts, string(cur))
}

func (d *Document) FillRect(x, y, w, h float64) {
	d.pdf.Rect(x, y, w, h, "F")
}

func (d *Document) Line(x1, y1, x2, y2 float64) {
	d.pdf.Line(x1, y1, x2, y2)
}

// Image places a PNG or JPEG file. The type is taken from the extension.
func (d *Document) Image(path string, x, y, w, h float64) {
	d.pdf.ImageOptions(path, x, y, w, h, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
}

// Write outputs the PDF. Drawing errors recorded by fpdf surface here.
func (d *Document) Write(w io.Writer) error {
	return d.pdf.Output(w)
}
