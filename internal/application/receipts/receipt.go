package receipts

import (
	"fmt"
	"strings"
	"time"

	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/amountwords"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOfSupply is the company's GST state.
const (
	PlaceOfSupply = "Telangana"
	StateCode     = "36"
)

// Company is printed in the receipt header.
var Company = struct {
	Name  string
	Lines []string
}{
	Name:  "Axiso Green Energies Private Limited",
	Lines: []string{"Telangana", "India", "GSTIN 36ABCA4478M1Z9", "admin@axisogreen.in", "www.axisogreen.in"},
}

// Receipt is everything printed on one payment receipt.
type Receipt struct {
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	ReceivedFrom    string          `json:"received_from"`
	PaymentMode     string          `json:"payment_mode"`
	PlaceOfSupply   string          `json:"place_of_supply"`
	CustomerAddress string          `json:"customer_address"`
	CustomerEmail   string          `json:"customer_email"`
	ReferenceNumber string          `json:"reference_number"`
	AmountInWords   string          `json:"amount_in_words"`
}

// FromPayment assembles the receipt for a recorded payment.
func FromPayment(p domain.Project, ph domain.PaymentHistory) Receipt {
	return Receipt{
		Date:            ph.PaymentDate,
		Amount:          ph.Amount,
		ReceivedFrom:    p.CustomerName,
		PaymentMode:     string(ph.PaymentMode),
		PlaceOfSupply:   PlaceOfSupply,
		CustomerAddress: p.Address,
		CustomerEmail:   p.Email,
		ReferenceNumber: reference("", ph.ID, 9),
		AmountInWords:   amountwords.Rupees(ph.Amount),
	}
}

// FromAdvance assembles the receipt for the advance taken at project creation.
func FromAdvance(p domain.Project) Receipt {
	entry := domain.AdvanceEntry(p)
	return Receipt{
		Date:            entry.PaymentDate,
		Amount:          entry.Amount,
		ReceivedFrom:    p.CustomerName,
		PaymentMode:     string(entry.PaymentMode),
		PlaceOfSupply:   PlaceOfSupply,
		CustomerAddress: p.Address,
		CustomerEmail:   p.Email,
		ReferenceNumber: reference("ADV", p.ID, 6),
		AmountInWords:   amountwords.Rupees(entry.Amount),
	}
}

// reference derives a short stable receipt number from a record id.
func reference(prefix string, id uuid.UUID, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return prefix + hex[:n]
}

// DisplayDate is the date as printed, DD-MM-YYYY.
func (r Receipt) DisplayDate() string {
	return r.Date.Format(domain.ReceiptDateLayout)
}

// Filename is "{customer}-receipt-{DD-MM-YYYY}.pdf".
func (r Receipt) Filename() string {
	name := strings.Map(func(c rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, c) || c < 0x20 {
			return '-'
		}
		return c
	}, strings.TrimSpace(r.ReceivedFrom))
	if name == "" {
		name = "customer"
	}
	return fmt.Sprintf("%s-receipt-%s.pdf", name, r.DisplayDate())
}

func groupedAmount(r Receipt) string {
	return amountwords.Grouped(r.Amount)
}
