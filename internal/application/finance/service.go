// Package finance summarises collections for the finance desk.
package finance

import (
	"context"
	"sort"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

type ModeTotal struct {
	Mode   domain.PaymentMode `json:"mode"`
	Count  int                `json:"count"`
	Amount decimal.Decimal    `json:"amount"`
}

type MonthTotal struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ProjectBalance is one row of the receivables list.
type ProjectBalance struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	Proposal     decimal.Decimal `json:"proposal_amount"`
	Received     decimal.Decimal `json:"received"`
	Loan         decimal.Decimal `json:"loan_amount"`
	Balance      decimal.Decimal `json:"balance"`
}

type Summary struct {
	Year        int              `json:"year"`
	Proposal    decimal.Decimal  `json:"proposal_total"`
	Advance     decimal.Decimal  `json:"advance_total"`
	Paid        decimal.Decimal  `json:"paid_total"`
	Received    decimal.Decimal  `json:"received_total"`
	Loans       decimal.Decimal  `json:"loan_total"`
	Outstanding decimal.Decimal  `json:"outstanding_total"`
	ByMode      []ModeTotal      `json:"by_mode"`
	ByMonth     []MonthTotal     `json:"by_month"`
	Receivables []ProjectBalance `json:"receivables"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summary totals contract values and collections across live projects.
// Advance payments count as collections dated by the project's start date.
// year 0 means the current year and only scopes ByMonth.
func (s *Service) Summary(ctx context.Context, sess access.Session, year int) (*Summary, error) {
	if err := sess.Require(constants.ViewFinance); err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1900 || year > 9999 {
		return nil, domain.Invalid("year out of range")
	}

	db := s.DB.WithContext(ctx)
	var projects []domain.Project
	if err := db.Scopes(domain.NotDeleted).Find(&projects).Error; err != nil {
		log.Error().Err(err).Msg("load projects for finance failed")
		return nil, domain.StoreFailure("load projects", err)
	}
	var history []domain.PaymentHistory
	err := db.Joins("JOIN projects ON projects.id = payment_history.project_id").
		Where("projects.status <> ?", domain.StatusDeleted).
		Find(&history).Error
	if err != nil {
		log.Error().Err(err).Msg("load payments for finance failed")
		return nil, domain.StoreFailure("load payments", err)
	}

	out := &Summary{
		Year:        year,
		Proposal:    decimal.Zero,
		Advance:     decimal.Zero,
		Paid:        decimal.Zero,
		Loans:       decimal.Zero,
		Outstanding: decimal.Zero,
	}
	modes := map[domain.PaymentMode]*ModeTotal{}
	modeOrder := append([]domain.PaymentMode{domain.AdvanceMode}, domain.PaymentModes...)
	for _, m := range modeOrder {
		modes[m] = &ModeTotal{Mode: m, Amount: decimal.Zero}
	}
	months := make([]MonthTotal, 12)
	for i := range months {
		months[i] = MonthTotal{Month: time.Month(i + 1).String(), Amount: decimal.Zero}
	}
	collect := func(mode domain.PaymentMode, amount decimal.Decimal, on time.Time) {
		if mt, ok := modes[mode]; ok {
			mt.Count++
			mt.Amount = mt.Amount.Add(amount)
		}
		if on.Year() == year {
			months[on.Month()-1].Amount = months[on.Month()-1].Amount.Add(amount)
		}
	}

	for _, p := range projects {
		out.Proposal = out.Proposal.Add(p.ProposalAmount)
		out.Advance = out.Advance.Add(p.AdvancePayment)
		out.Paid = out.Paid.Add(p.PaidAmount)
		out.Loans = out.Loans.Add(p.LoanAmount)
		bal := p.Balance()
		out.Outstanding = out.Outstanding.Add(bal)
		if p.AdvancePayment.IsPositive() {
			adv := domain.AdvanceEntry(p)
			collect(domain.AdvanceMode, adv.Amount, adv.PaymentDate)
		}
		out.Receivables = append(out.Receivables, ProjectBalance{
			ID:           p.ID,
			CustomerName: p.CustomerName,
			Proposal:     p.ProposalAmount,
			Received:     p.AdvancePayment.Add(p.PaidAmount),
			Loan:         p.LoanAmount,
			Balance:      bal,
		})
	}
	for _, ph := range history {
		collect(ph.PaymentMode, ph.Amount, ph.PaymentDate)
	}
	out.Received = out.Advance.Add(out.Paid)

	for _, m := range modeOrder {
		out.ByMode = append(out.ByMode, *modes[m])
	}
	out.ByMonth = months
	sort.SliceStable(out.Receivables, func(i, j int) bool {
		return out.Receivables[i].Balance.GreaterThan(out.Receivables[j].Balance)
	})
	return out, nil
}
