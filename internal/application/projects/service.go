package projects

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateInput is the project creation form.
type CreateInput struct {
	Name           string               `json:"name"`
	CustomerName   string               `json:"customer_name"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Address        string               `json:"address"`
	ProposalAmount decimal.Decimal      `json:"proposal_amount"`
	AdvancePayment decimal.Decimal      `json:"advance_payment"`
	LoanAmount     decimal.Decimal      `json:"loan_amount"`
	ProjectType    domain.ProjectType   `json:"project_type"`
	PaymentMode    domain.FinancingMode `json:"payment_mode"`
	Kwh            float64              `json:"kwh"`
	StartDate      string               `json:"start_date"`
}

// UpdateCustomerInput carries the editable customer details. Nil fields are left unchanged.
type UpdateCustomerInput struct {
	CustomerName *string          `json:"customer_name"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	Address      *string          `json:"address"`
	Kwh          *float64         `json:"kwh"`
	StartDate    *string          `json:"start_date"`
	LoanAmount   *decimal.Decimal `json:"loan_amount"`
}

// filterColumns are the fields a listing may be filtered on.
var filterColumns = map[string]string{
	"name":          "name",
	"customer_name": "customer_name",
	"email":         "email",
	"phone":         "phone",
	"address":       "address",
	"status":        "status",
	"project_type":  "project_type",
	"payment_mode":  "payment_mode",
	"current_stage": "current_stage",
}

func (s *Service) Create(ctx context.Context, sess access.Session, in CreateInput) (*domain.Project, error) {
	if err := sess.Require(constants.ManageProjects); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	start := time.Now().UTC()
	if in.StartDate != "" {
		t, err := domain.ParseDate(in.StartDate)
		if err != nil {
			return nil, err
		}
		start = t
	}
	p := domain.Project{
		Name:           strings.TrimSpace(in.Name),
		CustomerName:   strings.TrimSpace(in.CustomerName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		ProposalAmount: in.ProposalAmount,
		AdvancePayment: in.AdvancePayment,
		LoanAmount:     in.LoanAmount,
		PaidAmount:     decimal.Zero,
		ProjectType:    in.ProjectType,
		PaymentMode:    in.PaymentMode,
		Kwh:            in.Kwh,
		StartDate:      start,
		CurrentStage:   domain.FirstStage(),
		Status:         domain.StatusActive,
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		log.Error().Err(err).Str("customer_name", p.CustomerName).Msg("create project failed")
		return nil, domain.StoreFailure("create project", err)
	}
	log.Info().Str("project_id", p.ID.String()).Str("user_id", sess.UserID).Msg("project created")
	return Find(ctx, s.DB, p.ID.String(), true)
}

func (in CreateInput) validate() error {
	if validation.Blank(in.CustomerName) {
		return domain.Invalid("customer_name is required")
	}
	if !in.ProjectType.Valid() {
		return domain.Invalid("project_type must be DCR or Non DCR")
	}
	if !in.PaymentMode.Valid() {
		return domain.Invalid("payment_mode must be Loan or Cash")
	}
	if in.Email != "" && !validation.IsValidEmail(strings.TrimSpace(in.Email)) {
		return domain.Invalid("invalid email")
	}
	if in.Phone != "" && !validation.IsValidPhone(in.Phone) {
		return domain.Invalid("invalid phone")
	}
	if in.Kwh < 0 {
		return domain.Invalid("kwh cannot be negative")
	}
	if !in.ProposalAmount.IsPositive() {
		return domain.Invalid("proposal_amount must be greater than zero")
	}
	return domain.ValidateFigures(in.ProposalAmount, in.AdvancePayment, in.LoanAmount, decimal.Zero)
}

// List returns projects that are not deleted, newest first. Each filter is a
// case-insensitive substring match on one field.
func (s *Service) List(ctx context.Context, filters map[string]string) ([]domain.Project, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Project{}).Scopes(domain.NotDeleted)

	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		col, ok := filterColumns[f]
		if !ok {
			return nil, domain.Invalid("cannot filter by " + f)
		}
		v := strings.TrimSpace(filters[f])
		if v == "" {
			continue
		}
		q = q.Where("LOWER("+col+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(v))+"%")
	}

	var out []domain.Project
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		log.Error().Err(err).Msg("list projects failed")
		return nil, domain.StoreFailure("list projects", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// Get returns one project with its recorded payments.
func (s *Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	return Find(ctx, s.DB, id, true)
}

// Find loads a project that is not deleted. Unknown and malformed ids both
// report domain.ErrRecordNotFound.
func Find(ctx context.Context, db *gorm.DB, id string, withPayments bool) (*domain.Project, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}
	q := db.WithContext(ctx).Scopes(domain.NotDeleted)
	if withPayments {
		q = q.Preload("Payments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("payment_date ASC, created_at ASC")
		})
	}
	var p domain.Project
	if err := q.First(&p, "projects.id = ?", pid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		log.Error().Err(err).Str("project_id", id).Msg("load project failed")
		return nil, domain.StoreFailure("load project", err)
	}
	return &p, nil
}

// UpdateCustomer edits customer details. Changing the loan amount needs its own
// permission and must keep the balance non-negative.
func (s *Service) UpdateCustomer(ctx context.Context, sess access.Session, id string, in UpdateCustomerInput) (*domain.Project, error) {
	if err := sess.Require(constants.EditCustomer); err != nil {
		return nil, err
	}
	updates, err := in.columns()
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := Find(ctx, tx, id, false)
		if err != nil {
			return err
		}
		if in.LoanAmount != nil && !in.LoanAmount.Equal(p.LoanAmount) {
			if err := sess.Require(constants.EditLoanAmount); err != nil {
				return err
			}
			if in.LoanAmount.IsNegative() {
				return domain.Invalid("loan_amount cannot be negative")
			}
			if !domain.ValidMoney(*in.LoanAmount) {
				return domain.Invalid("loan_amount cannot have more than two decimal places")
			}
			res := tx.Exec(`UPDATE projects SET loan_amount = CAST(? AS NUMERIC), updated_at = ?
				WHERE id = ? AND status <> ? AND proposal_amount - (advance_payment + paid_amount) >= CAST(? AS NUMERIC)`,
				in.LoanAmount.String(), time.Now().UTC(), p.ID, domain.StatusDeleted, in.LoanAmount.String())
			if res.Error != nil {
				return domain.StoreFailure("update loan amount", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrExceedsBalance
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(p).Updates(updates).Error; err != nil {
			return domain.StoreFailure("update customer", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStoreFailure) {
			log.Error().Err(err).Str("project_id", id).Msg("update customer failed")
		}
		return nil, err
	}
	log.Info().Str("project_id", id).Str("user_id", sess.UserID).Msg("customer details updated")
	return Find(ctx, s.DB, id, true)
}

func (in UpdateCustomerInput) columns() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if in.CustomerName != nil {
		if validation.Blank(*in.CustomerName) {
			return nil, domain.Invalid("customer_name is required")
		}
		out["customer_name"] = strings.TrimSpace(*in.CustomerName)
	}
	if in.Email != nil {
		e := strings.TrimSpace(*in.Email)
		if e != "" && !validation.IsValidEmail(e) {
			return nil, domain.Invalid("invalid email")
		}
		out["email"] = e
	}
	if in.Phone != nil {
		if *in.Phone != "" && !validation.IsValidPhone(*in.Phone) {
			return nil, domain.Invalid("invalid phone")
		}
		out["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		out["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Kwh != nil {
		if *in.Kwh < 0 {
			return nil, domain.Invalid("kwh cannot be negative")
		}
		out["kwh"] = *in.Kwh
	}
	if in.StartDate != nil {
		t, err := domain.ParseDate(*in.StartDate)
		if err != nil {
			return nil, err
		}
		out["start_date"] = t
	}
	return out, nil
}

// Delete soft deletes a project. It disappears from every listing and report.
func (s *Service) Delete(ctx context.Context, sess access.Session, id string) error {
	if err := sess.Require(constants.ManageProjects); err != nil {
		return err
	}
	pid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrRecordNotFound
	}
	res := s.DB.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ? AND status <> ?", pid, domain.StatusDeleted).
		Update("status", domain.StatusDeleted)
	if res.Error != nil {
		log.Error().Err(res.Error).Str("project_id", id).Msg("delete project failed")
		return domain.StoreFailure("delete project", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	log.Info().Str("project_id", id).Str("user_id", sess.UserID).Msg("project deleted")
	return nil
}

func (s *Service) AdvanceStage(ctx context.Context, sess access.Session, id string) (*domain.Project, error) {
	return s.moveStage(ctx, sess, id, domain.AdvanceStage)
}

func (s *Service) RetreatStage(ctx context.Context, sess access.Session, id string) (*domain.Project, error) {
	return s.moveStage(ctx, sess, id, domain.RetreatStage)
}

// moveStage applies a one-step transition. The write only lands if the stage
// is still the one that was read; otherwise ErrStaleState.
func (s *Service) moveStage(ctx context.Context, sess access.Session, id string,
	move func(string, domain.ProjectStatus) (domain.StageMove, error)) (*domain.Project, error) {
	if err := sess.Require(constants.ManageProjects); err != nil {
		return nil, err
	}
	p, err := Find(ctx, s.DB, id, false)
	if err != nil {
		return nil, err
	}
	m, err := move(p.CurrentStage, p.Status)
	if err != nil {
		return nil, err
	}
	if m.Changed {
		res := s.DB.WithContext(ctx).Model(&domain.Project{}).
			Where("id = ? AND current_stage = ? AND status <> ?", p.ID, p.CurrentStage, domain.StatusDeleted).
			Updates(map[string]interface{}{"current_stage": m.To, "status": m.Status})
		if res.Error != nil {
			log.Error().Err(res.Error).Str("project_id", id).Msg("stage update failed")
			return nil, domain.StoreFailure("update stage", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrStaleState
		}
		log.Info().Str("project_id", id).Str("from", m.From).Str("to", m.To).Msg("project stage changed")
	}
	return Find(ctx, s.DB, id, true)
}
