package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketCompleted  TicketStatus = "completed"
)

func (s TicketStatus) Valid() bool {
	return s == TicketOpen || s == TicketInProgress || s == TicketCompleted
}

// ServiceTicket is a support request. It refers to the customer by name only.
type ServiceTicket struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerName string       `gorm:"column:customer_name;not null;index" json:"customer_name"`
	Email        string       `gorm:"column:email" json:"email"`
	Phone        string       `gorm:"column:phone" json:"phone"`
	Address      string       `gorm:"column:address" json:"address"`
	Description  string       `gorm:"column:description;not null" json:"description"`
	Status       TicketStatus `gorm:"column:status;not null;default:open" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CompletedAt  *time.Time   `gorm:"column:completed_at" json:"completed_at"`
}

func (ServiceTicket) TableName() string {
	return "service_tickets"
}

func (t *ServiceTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
