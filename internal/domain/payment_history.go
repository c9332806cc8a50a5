package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMode is the instrument a recorded payment arrived by.
type PaymentMode string

const (
	PaymentCash    PaymentMode = "Cash"
	PaymentUPI     PaymentMode = "UPI"
	PaymentCheque  PaymentMode = "Cheque"
	PaymentSubsidy PaymentMode = "Subsidy"

	// AdvanceMode labels the synthesized advance entry; it is never stored.
	AdvanceMode PaymentMode = "Cash/UPI"
)

var PaymentModes = []PaymentMode{PaymentCash, PaymentUPI, PaymentCheque, PaymentSubsidy}

func (m PaymentMode) Valid() bool {
	for _, v := range PaymentModes {
		if v == m {
			return true
		}
	}
	return false
}

// PaymentHistory is one payment recorded after the advance.
type PaymentHistory struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentMode PaymentMode     `gorm:"column:payment_mode;not null" json:"payment_mode"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (PaymentHistory) TableName() string {
	return "payment_history"
}

func (p *PaymentHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PaymentEntry is a row of a project's payment listing. The advance payment
// appears as the first entry with IsAdvance set and no id.
type PaymentEntry struct {
	ID          *uuid.UUID      `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	PaymentMode PaymentMode     `json:"payment_mode"`
	IsAdvance   bool            `json:"is_advance"`
}

// AdvanceEntry synthesizes the advance payment entry, dated by the start
// date and falling back to the creation date.
func AdvanceEntry(p Project) PaymentEntry {
	date := p.StartDate
	if date.IsZero() {
		date = p.CreatedAt
	}
	return PaymentEntry{
		Amount:      p.AdvancePayment,
		PaymentDate: date,
		PaymentMode: AdvanceMode,
		IsAdvance:   true,
	}
}

// PaymentEntries lists the advance (when non-zero) followed by the recorded payments.
func PaymentEntries(p Project, history []PaymentHistory) []PaymentEntry {
	out := make([]PaymentEntry, 0, len(history)+1)
	if p.AdvancePayment.IsPositive() {
		out = append(out, AdvanceEntry(p))
	}
	for i := range history {
		id := history[i].ID
		out = append(out, PaymentEntry{
			ID:          &id,
			Amount:      history[i].Amount,
			PaymentDate: history[i].PaymentDate,
			PaymentMode: history[i].PaymentMode,
		})
	}
	return out
}
