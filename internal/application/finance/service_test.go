package finance

import (
	"context"
	"testing"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var financeUser = access.Session{UserID: uuid.NewString(), Email: constants.FinanceEmail, Role: "finance"}

func setupFinanceTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &Service{DB: db, Now: func() time.Time { return fixed }}, db
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func project(t *testing.T, db *gorm.DB, name string, proposal, advance, loan, paid int64, start time.Time, status domain.ProjectStatus) domain.Project {
	p := domain.Project{
		CustomerName:   name,
		ProposalAmount: d(proposal),
		AdvancePayment: d(advance),
		LoanAmount:     d(loan),
		PaidAmount:     d(paid),
		ProjectType:    domain.ProjectTypeDCR,
		PaymentMode:    domain.FinancingLoan,
		StartDate:      start,
		CurrentStage:   domain.FirstStage(),
		Status:         status,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func payment(t *testing.T, db *gorm.DB, p domain.Project, amount int64, mode domain.PaymentMode, on time.Time) {
	require.NoError(t, db.Create(&domain.PaymentHistory{ProjectID: p.ID, Amount: d(amount), PaymentMode: mode, PaymentDate: on}).Error)
}

func TestSummary(t *testing.T) {
	svc, db := setupFinanceTest(t)
	a := project(t, db, "Ravi", 100000, 20000, 50000, 25000, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), domain.StatusActive)
	payment(t, db, a, 10000, domain.PaymentUPI, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	payment(t, db, a, 15000, domain.PaymentSubsidy, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	b := project(t, db, "Anita", 200000, 0, 0, 200000, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), domain.StatusCompleted)
	payment(t, db, b, 200000, domain.PaymentCheque, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	gone := project(t, db, "Gone", 500000, 100000, 0, 1000, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), domain.StatusDeleted)
	payment(t, db, gone, 1000, domain.PaymentCash, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	s, err := svc.Summary(context.Background(), financeUser, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, s.Year)
	assert.True(t, s.Proposal.Equal(d(300000)))
	assert.True(t, s.Advance.Equal(d(20000)))
	assert.True(t, s.Paid.Equal(d(225000)))
	assert.True(t, s.Received.Equal(d(245000)))
	assert.True(t, s.Loans.Equal(d(50000)))
	assert.True(t, s.Outstanding.Equal(d(5000)))

	byMode := map[domain.PaymentMode]ModeTotal{}
	for _, m := range s.ByMode {
		byMode[m.Mode] = m
	}
	assert.Equal(t, domain.AdvanceMode, s.ByMode[0].Mode)
	assert.True(t, byMode[domain.AdvanceMode].Amount.Equal(d(20000)))
	assert.Equal(t, 0, byMode[domain.PaymentCash].Count, "deleted project payments are excluded")
	assert.True(t, byMode[domain.PaymentCheque].Amount.Equal(d(200000)))

	require.Len(t, s.ByMonth, 12)
	assert.Equal(t, "January", s.ByMonth[0].Month)
	assert.True(t, s.ByMonth[0].Amount.Equal(d(20000)))
	assert.True(t, s.ByMonth[1].Amount.Equal(d(210000)))
	assert.True(t, s.ByMonth[11].Amount.IsZero())

	require.Len(t, s.Receivables, 2)
	assert.Equal(t, "Ravi", s.Receivables[0].CustomerName)
	assert.True(t, s.Receivables[0].Balance.Equal(d(5000)))
	assert.True(t, s.Receivables[0].Received.Equal(d(45000)))
}

func TestSummary_Year(t *testing.T) {
	svc, db := setupFinanceTest(t)
	a := project(t, db, "Ravi", 100000, 0, 0, 15000, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), domain.StatusActive)
	payment(t, db, a, 15000, domain.PaymentSubsidy, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	s, err := svc.Summary(context.Background(), financeUser, 2024)
	require.NoError(t, err)
	assert.True(t, s.ByMonth[11].Amount.Equal(d(15000)))

	_, err = svc.Summary(context.Background(), financeUser, 12)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummary_FinanceOnly(t *testing.T) {
	svc, _ := setupFinanceTest(t)
	for _, sess := range []access.Session{
		{UserID: "1", Email: constants.SuperAdminEmail, Role: "admin"},
		{UserID: "2", Email: "someone@axisogreen.in", Role: "finance"},
	} {
		_, err := svc.Summary(context.Background(), sess, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, sess.Email)
	}
}
