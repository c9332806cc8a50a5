package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectTypeDCR    ProjectType = "DCR"
	ProjectTypeNonDCR ProjectType = "Non DCR"
)

// FinancingMode is how the customer funds the installation.
type FinancingMode string

const (
	FinancingLoan FinancingMode = "Loan"
	FinancingCash FinancingMode = "Cash"
)

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusDeleted   ProjectStatus = "deleted"
)

func (t ProjectType) Valid() bool {
	return t == ProjectTypeDCR || t == ProjectTypeNonDCR
}

func (m FinancingMode) Valid() bool {
	return m == FinancingLoan || m == FinancingCash
}

// Project is one customer installation contract.
// Balance is never stored; see Balance.
type Project struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"column:name" json:"name"`
	CustomerName   string          `gorm:"column:customer_name;not null;index" json:"customer_name"`
	Email          string          `gorm:"column:email" json:"email"`
	Phone          string          `gorm:"column:phone" json:"phone"`
	Address        string          `gorm:"column:address" json:"address"`
	ProposalAmount decimal.Decimal `gorm:"column:proposal_amount;type:decimal(14,2);not null;default:0" json:"proposal_amount"`
	AdvancePayment decimal.Decimal `gorm:"column:advance_payment;type:decimal(14,2);not null;default:0" json:"advance_payment"`
	LoanAmount     decimal.Decimal `gorm:"column:loan_amount;type:decimal(14,2);not null;default:0" json:"loan_amount"`
	PaidAmount     decimal.Decimal `gorm:"column:paid_amount;type:decimal(14,2);not null;default:0" json:"paid_amount"`
	ProjectType    ProjectType     `gorm:"column:project_type;not null" json:"project_type"`
	PaymentMode    FinancingMode   `gorm:"column:payment_mode;not null" json:"payment_mode"`
	Kwh            float64         `gorm:"column:kwh;not null;default:0" json:"kwh"`
	StartDate      time.Time       `gorm:"column:start_date" json:"start_date"`
	CurrentStage   string          `gorm:"column:current_stage;not null" json:"current_stage"`
	Status         ProjectStatus   `gorm:"column:status;not null;default:active;index" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Payments []PaymentHistory `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"payment_history,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeCreate ensures id is set for DBs without default uuid.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Balance is the amount still owed on the contract.
func (p Project) Balance() decimal.Decimal {
	return OutstandingBalance(p)
}

// MarshalJSON adds the derived balance and stage position to the stored columns.
func (p Project) MarshalJSON() ([]byte, error) {
	type stored Project
	return json.Marshal(struct {
		stored
		Balance    decimal.Decimal `json:"balance"`
		StageIndex int             `json:"stage_index"`
		StageCount int             `json:"stage_count"`
	}{
		stored:     stored(p),
		Balance:    p.Balance(),
		StageIndex: StageIndex(p.CurrentStage),
		StageCount: len(Stages),
	})
}

// NotDeleted scopes a query to projects that have not been soft deleted.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("projects.status <> ?", StatusDeleted)
}
