package receipts

import "io"

// Canvas is the drawing surface a receipt is laid out on. Units are
// millimetres with the origin at the top-left of an A4 portrait page.
type Canvas interface {
	PageWidth() float64
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetLineWidth(w float64)
	Text(x, y float64, s string)
	TextWidth(s string) float64
	SplitText(s string, w float64) []string
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Image(path string, x, y, w, h float64)
}

// Document is a Canvas that can be serialized, one page per document.
type Document interface {
	Canvas
	Write(w io.Writer) error
}
