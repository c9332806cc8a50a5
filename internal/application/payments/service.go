package payments

import (
	"context"
	"errors"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/application/projects"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// RecordInput is the add-payment form. An empty PaymentDate means today.
type RecordInput struct {
	Amount      decimal.Decimal    `json:"amount"`
	PaymentDate string             `json:"payment_date"`
	PaymentMode domain.PaymentMode `json:"payment_mode"`
}

// Record inserts a payment and increments the project's paid amount as one
// transaction. The increment is guarded in SQL by the outstanding balance, so
// concurrent sessions cannot overdraw a project.
func (s *Service) Record(ctx context.Context, sess access.Session, projectID string, in RecordInput) (*domain.Project, *domain.PaymentHistory, error) {
	if err := sess.Require(constants.AddPayment); err != nil {
		return nil, nil, err
	}
	if !in.Amount.IsPositive() || !domain.ValidMoney(in.Amount) {
		return nil, nil, domain.ErrInvalidAmount
	}
	if !in.PaymentMode.Valid() {
		return nil, nil, domain.ErrInvalidPaymentMode
	}
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if in.PaymentDate != "" {
		t, err := domain.ParseDate(in.PaymentDate)
		if err != nil {
			return nil, nil, err
		}
		date = t
	}

	var payment domain.PaymentHistory
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := projects.Find(ctx, tx, projectID, false)
		if err != nil {
			return err
		}
		if err := domain.ValidatePayment(*p, in.Amount, in.PaymentMode); err != nil {
			return err
		}
		payment = domain.PaymentHistory{
			ProjectID:   p.ID,
			Amount:      in.Amount,
			PaymentDate: date,
			PaymentMode: in.PaymentMode,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return domain.StoreFailure("insert payment", err)
		}
		amount := in.Amount.String()
		res := tx.Exec(`UPDATE projects SET paid_amount = paid_amount + CAST(? AS NUMERIC), updated_at = ?
			WHERE id = ? AND status <> ?
			AND proposal_amount - (advance_payment + paid_amount + loan_amount) >= CAST(? AS NUMERIC)`,
			amount, time.Now().UTC(), p.ID, domain.StatusDeleted, amount)
		if res.Error != nil {
			return domain.StoreFailure("increment paid amount", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrExceedsBalance
		}
		return nil
	})
	if err != nil {
		logFailure(err, "record payment", projectID)
		return nil, nil, err
	}
	log.Info().Str("project_id", projectID).Str("payment_id", payment.ID.String()).
		Str("amount", in.Amount.String()).Str("user_id", sess.UserID).Msg("payment recorded")

	p, err := projects.Find(ctx, s.DB, projectID, true)
	if err != nil {
		return nil, nil, err
	}
	return p, &payment, nil
}

// Delete removes a payment and decrements the owning project's paid amount,
// floored at zero. Not reversible.
func (s *Service) Delete(ctx context.Context, sess access.Session, paymentID string) (*domain.Project, error) {
	if err := sess.Require(constants.DeletePayment); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}

	var projectID string
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ph domain.PaymentHistory
		if err := tx.First(&ph, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecordNotFound
			}
			return domain.StoreFailure("load payment", err)
		}
		projectID = ph.ProjectID.String()
		if _, err := projects.Find(ctx, tx, projectID, false); err != nil {
			return err
		}
		res := tx.Delete(&domain.PaymentHistory{}, "id = ?", id)
		if res.Error != nil {
			return domain.StoreFailure("delete payment", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecordNotFound
		}
		amount := ph.Amount.String()
		if err := tx.Exec(`UPDATE projects SET paid_amount = CASE
				WHEN paid_amount - CAST(? AS NUMERIC) < 0 THEN 0
				ELSE paid_amount - CAST(? AS NUMERIC) END,
			updated_at = ? WHERE id = ?`,
			amount, amount, time.Now().UTC(), ph.ProjectID).Error; err != nil {
			return domain.StoreFailure("decrement paid amount", err)
		}
		return nil
	})
	if err != nil {
		logFailure(err, "delete payment", paymentID)
		return nil, err
	}
	log.Info().Str("payment_id", paymentID).Str("project_id", projectID).Str("user_id", sess.UserID).Msg("payment deleted")
	return projects.Find(ctx, s.DB, projectID, true)
}

// List returns the project's payment listing with the advance entry first.
func (s *Service) List(ctx context.Context, projectID string) ([]domain.PaymentEntry, error) {
	p, err := projects.Find(ctx, s.DB, projectID, true)
	if err != nil {
		return nil, err
	}
	return domain.PaymentEntries(*p, p.Payments), nil
}

// Get loads a payment together with its (not deleted) project.
func (s *Service) Get(ctx context.Context, paymentID string) (*domain.PaymentHistory, *domain.Project, error) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, nil, domain.ErrRecordNotFound
	}
	var ph domain.PaymentHistory
	if err := s.DB.WithContext(ctx).First(&ph, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrRecordNotFound
		}
		return nil, nil, domain.StoreFailure("load payment", err)
	}
	p, err := projects.Find(ctx, s.DB, ph.ProjectID.String(), false)
	if err != nil {
		return nil, nil, err
	}
	return &ph, p, nil
}

func logFailure(err error, op, id string) {
	if errors.Is(err, domain.ErrStoreFailure) {
		log.Error().Err(err).Str("id", id).Msg(op + " failed")
		return
	}
	log.Info().Err(err).Str("id", id).Msg(op + " rejected")
}
