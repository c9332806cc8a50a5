package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"axiso-backend/internal/application/receipts"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptRendersPDF(t *testing.T) {
	doc := NewA4()
	assert.InDelta(t, 210.0, doc.PageWidth(), 0.01)

	receipts.Layout(doc, receipts.Receipt{
		Date:            time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(30000),
		ReceivedFrom:    "Srinivas",
		PaymentMode:     "UPI",
		PlaceOfSupply:   receipts.PlaceOfSupply,
		CustomerAddress: "Plot 12, Kondapur, Hyderabad",
		ReferenceNumber: "9F3A01BC2",
		AmountInWords:   "Indian Rupee Thirty Thousand Only",
	}, receipts.Assets{})

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestMissingImageSurfacesOnWrite(t *testing.T) {
	doc := NewA4()
	doc.Image("/nonexistent/logo.png", 10, 10, 20, 20)
	var buf bytes.Buffer
	assert.Error(t, doc.Write(&buf))
}

func TestSplitText_WrapsWithTranslatedWidths(t *testing.T) {
	doc := NewA4()
	doc.SetFont("", 10)

	lines := doc.SplitText("Plot 12, Kondapur, Hyderabad, Telangana 500084", 30)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, doc.TextWidth(l), 30.0, l)
	}

	accented := doc.SplitText("Café Rue Hélène – Résidence Ünal", 25)
	require.NotEmpty(t, accented)
	assert.Equal(t, "Café", strings.Fields(accented[0])[0])
	for _, l := range accented {
		doc.Text(10, 10, l)
	}

	long := doc.SplitText("ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ", 20)
	assert.Greater(t, len(long), 1)
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ", strings.Join(long, ""))

	assert.Equal(t, []string{"one", "", "two"}, doc.SplitText("one\n\ntwo\n", 100))

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
}
