package tickets

import (
	"context"
	"testing"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var staff = access.Session{UserID: uuid.NewString(), Email: "field@axisogreen.in", Role: "user"}

func setupTicketsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return &Service{DB: db}, db
}

func TestCreate(t *testing.T) {
	svc, _ := setupTicketsTest(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, staff, CreateInput{CustomerName: "Ravi", Description: " Inverter shows fault E21 "})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, tk.Status)
	assert.Equal(t, "Inverter shows fault E21", tk.Description)
	assert.Nil(t, tk.CompletedAt)

	_, err = svc.Create(ctx, staff, CreateInput{CustomerName: "Ravi"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Create(ctx, staff, CreateInput{Description: "no name"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_NewestFirst(t *testing.T) {
	svc, db := setupTicketsTest(t)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&domain.ServiceTicket{CustomerName: "A", Description: "old", Status: domain.TicketOpen, CreatedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&domain.ServiceTicket{CustomerName: "B", Description: "new", Status: domain.TicketCompleted, CreatedAt: now}).Error)

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Description)

	list, err = svc.List(context.Background(), "open")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "old", list[0].Description)

	_, err = svc.List(context.Background(), "closed")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLifecycle(t *testing.T) {
	svc, _ := setupTicketsTest(t)
	ctx := context.Background()
	tk, err := svc.Create(ctx, staff, CreateInput{CustomerName: "Ravi", Description: "Panel cleaning"})
	require.NoError(t, err)

	tk, err = svc.Start(ctx, staff, tk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketInProgress, tk.Status)

	tk, err = svc.Complete(ctx, staff, tk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketCompleted, tk.Status)
	require.NotNil(t, tk.CompletedAt)

	// completing again is a no-op
	again, err := svc.Complete(ctx, staff, tk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, tk.CompletedAt.Unix(), again.CompletedAt.Unix())

	_, err = svc.Start(ctx, staff, tk.ID.String())
	assert.ErrorIs(t, err, domain.ErrStaleState)

	_, err = svc.Complete(ctx, staff, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestCustomers_ActiveProjectsOnly(t *testing.T) {
	svc, db := setupTicketsTest(t)
	for _, p := range []domain.Project{
		{CustomerName: "Zoya", Phone: "9000000001", Status: domain.StatusActive},
		{CustomerName: "Arjun", Email: "arjun@example.in", Status: domain.StatusActive},
		{CustomerName: "Done", Status: domain.StatusCompleted},
		{CustomerName: "Gone", Status: domain.StatusDeleted},
	} {
		p.ProposalAmount = decimal.NewFromInt(1)
		p.ProjectType = domain.ProjectTypeDCR
		p.PaymentMode = domain.FinancingCash
		p.CurrentStage = domain.FirstStage()
		require.NoError(t, db.Create(&p).Error)
	}

	out, err := svc.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Arjun", out[0].CustomerName)
	assert.Equal(t, "arjun@example.in", out[0].Email)
	assert.Equal(t, "9000000001", out[1].Phone)
}
