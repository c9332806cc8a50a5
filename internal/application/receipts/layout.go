package receipts

import "math"

// Assets are optional images. Empty paths are skipped.
type Assets struct {
	LogoPath      string
	SignaturePath string
}

const (
	margin       = 20.0
	tableY       = 100.0
	rowHeight    = 15.0
	labelWidth   = 70.0
	amountBoxW   = 45.0
	amountBoxH   = rowHeight * 2
	cellPadding  = 5.0
	minCellFont  = 9.0
	ruleY        = 70.0
	titleY       = 85.0
	companyY     = 25.0
	companyLineY = 32.0
	companyStep  = 7.0
)

type rgb struct{ r, g, b int }

var (
	black     = rgb{0, 0, 0}
	white     = rgb{255, 255, 255}
	brandGrn  = rgb{140, 198, 63}
	cellShade = blendWithWhite(rgb{151, 175, 194}, 0.29)
)

func blendWithWhite(c rgb, opacity float64) rgb {
	mix := func(v int) int {
		return int(math.Round(float64(v)*opacity + 255*(1-opacity)))
	}
	return rgb{mix(c.r), mix(c.g), mix(c.b)}
}

// Layout draws a single-page receipt onto c.
func Layout(c Canvas, r Receipt, a Assets) {
	pageW := c.PageWidth()
	dataX := margin + labelWidth
	dataW := pageW - 2*margin - labelWidth
	boxX := dataX + dataW - amountBoxW
	fullW := labelWidth + dataW

	// company block and logo
	setText(c, black)
	c.SetFont("B", 15)
	c.Text(margin, companyY, Company.Name)
	c.SetFont("", 12)
	for i, line := range Company.Lines {
		c.Text(margin, companyLineY+float64(i)*companyStep, line)
	}
	if a.LogoPath != "" {
		c.Image(a.LogoPath, pageW-margin-45, companyY, 45, 30)
	}

	c.SetLineWidth(0.5)
	c.Line(margin, ruleY, pageW-margin, ruleY)

	c.SetFont("B", 21)
	title := "PAYMENT RECEIPT"
	c.Text((pageW-c.TextWidth(title))/2, titleY, title)

	// label column
	c.SetFont("", 15)
	setText(c, black)
	labels := []string{"Payment Date", "Reference Number", "Payment Mode", "Place Of Supply", "Amount Received In", "Words"}
	for i, l := range labels {
		c.Text(margin, tableY+float64(i)*rowHeight+7, l)
	}

	// the first two rows share their width with the amount box
	narrowW := dataW - amountBoxW - 2
	cell(c, dataX, tableY, narrowW, rowHeight, r.DisplayDate(), 15)
	cell(c, dataX, tableY+rowHeight, narrowW, rowHeight, r.ReferenceNumber, 15)
	cell(c, dataX, tableY+rowHeight*2, dataW, rowHeight, r.PaymentMode, 15)
	cell(c, dataX, tableY+rowHeight*3, dataW, rowHeight, r.PlaceOfSupply+" ("+StateCode+")", 15)
	cell(c, dataX, tableY+rowHeight*4, dataW, rowHeight*2, r.AmountInWords, 15)

	fill(c, brandGrn)
	c.FillRect(boxX, tableY, amountBoxW, amountBoxH)
	setText(c, white)
	c.SetFont("", 12)
	c.Text(boxX+cellPadding, tableY+9, "Amount Received")
	c.SetFont("B", 16)
	c.Text(boxX+cellPadding, tableY+22, "Rs."+groupedAmount(r))

	// received from
	fromY := tableY + rowHeight*7
	setText(c, black)
	c.SetFont("", 15)
	c.Text(margin, fromY, "Received From")
	cell(c, margin, fromY+5, fullW, rowHeight, r.ReceivedFrom, 15)
	if r.CustomerAddress != "" {
		cell(c, margin, fromY+5+rowHeight, fullW, rowHeight, r.CustomerAddress, 11)
	}

	// signature
	sigY := fromY + 5 + rowHeight*2 + 12
	if a.SignaturePath != "" {
		c.Image(a.SignaturePath, boxX, sigY, amountBoxW, 20)
	}
	setText(c, black)
	c.SetFont("", 12)
	c.Text(boxX, sigY+27, "Authorized Signature")
}

// cell draws a shaded box with bold text, wrapped to fit and shrunk when it
// would overflow the box height.
func cell(c Canvas, x, y, w, h float64, text string, size float64) {
	fill(c, cellShade)
	c.FillRect(x, y, w, h)
	setText(c, black)

	var lines []string
	var lineH float64
	for {
		c.SetFont("B", size)
		lines = c.SplitText(text, w-2*cellPadding)
		lineH = size * 0.45
		if float64(len(lines))*lineH <= h-2 || size <= minCellFont {
			break
		}
		size--
	}
	top := y + (h-float64(len(lines))*lineH)/2 + lineH*0.8
	for i, l := range lines {
		c.Text(x+cellPadding, top+float64(i)*lineH, l)
	}
}

func setText(c Canvas, col rgb) { c.SetTextColor(col.r, col.g, col.b) }

func fill(c Canvas, col rgb) { c.SetFillColor(col.r, col.g, col.b) }
