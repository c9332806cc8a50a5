package tickets

import (
	"context"
	"errors"
	"strings"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Description  string `json:"description"`
}

// Customer is a picker entry drawn from active projects.
type Customer struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// List returns tickets newest first, optionally narrowed to one status.
func (s *Service) List(ctx context.Context, status string) ([]domain.ServiceTicket, error) {
	q := s.DB.WithContext(ctx).Model(&domain.ServiceTicket{})
	if status != "" {
		if !domain.TicketStatus(status).Valid() {
			return nil, domain.Invalid("unknown ticket status " + status)
		}
		q = q.Where("status = ?", status)
	}
	var out []domain.ServiceTicket
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("list service tickets failed")
		return nil, domain.StoreFailure("list tickets", err)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, sess access.Session, in CreateInput) (*domain.ServiceTicket, error) {
	if validation.Blank(in.CustomerName) || validation.Blank(in.Description) {
		return nil, domain.Invalid("customer_name and description are required")
	}
	t := domain.ServiceTicket{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Description:  strings.TrimSpace(in.Description),
		Status:       domain.TicketOpen,
	}
	if err := s.DB.WithContext(ctx).Create(&t).Error; err != nil {
		log.Error().Err(err).Msg("create service ticket failed")
		return nil, domain.StoreFailure("create ticket", err)
	}
	log.Info().Str("ticket_id", t.ID.String()).Str("user_id", sess.UserID).Msg("service ticket opened")
	return &t, nil
}

// Start moves an open ticket to in_progress.
func (s *Service) Start(ctx context.Context, sess access.Session, id string) (*domain.ServiceTicket, error) {
	return s.transition(ctx, sess, id, domain.TicketInProgress, []domain.TicketStatus{domain.TicketOpen})
}

// Complete closes a ticket and stamps completed_at.
func (s *Service) Complete(ctx context.Context, sess access.Session, id string) (*domain.ServiceTicket, error) {
	return s.transition(ctx, sess, id, domain.TicketCompleted, []domain.TicketStatus{domain.TicketOpen, domain.TicketInProgress})
}

func (s *Service) transition(ctx context.Context, sess access.Session, id string, to domain.TicketStatus, from []domain.TicketStatus) (*domain.ServiceTicket, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}
	t, err := s.find(ctx, tid)
	if err != nil {
		return nil, err
	}
	if t.Status == to {
		return t, nil
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{"status": to, "updated_at": now}
	if to == domain.TicketCompleted {
		updates["completed_at"] = now
	}
	res := s.DB.WithContext(ctx).Model(&domain.ServiceTicket{}).
		Where("id = ? AND status IN ?", tid, from).
		Updates(updates)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("ticket_id", id).Msg("update service ticket failed")
		return nil, domain.StoreFailure("update ticket", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrStaleState
	}
	log.Info().Str("ticket_id", id).Str("status", string(to)).Str("user_id", sess.UserID).Msg("service ticket updated")
	return s.find(ctx, tid)
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*domain.ServiceTicket, error) {
	var t domain.ServiceTicket
	if err := s.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, domain.StoreFailure("load ticket", err)
	}
	return &t, nil
}

// Customers lists contact details of customers with active projects, for the
// ticket form's picker.
func (s *Service) Customers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Select("customer_name, email, phone, address").
		Where("status = ?", domain.StatusActive).
		Order("customer_name ASC").
		Scan(&out).Error
	if err != nil {
		log.Error().Err(err).Msg("list ticket customers failed")
		return nil, domain.StoreFailure("list customers", err)
	}
	return out, nil
}
