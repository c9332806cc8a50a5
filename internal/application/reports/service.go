// Package reports aggregates project figures for the dashboard and the
// yearly report. Deleted projects never contribute.
package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const yearOptionCount = 5

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type Service struct {
	DB *gorm.DB
	// Now is replaceable in tests.
	Now func() time.Time
}

// Totals are the headline figures. Revenue is nil when the viewer may not see it.
type Totals struct {
	Customers int              `json:"customers"`
	Projects  int              `json:"projects"`
	Active    int              `json:"active"`
	Completed int              `json:"completed"`
	Kwh       float64          `json:"kwh"`
	Revenue   *decimal.Decimal `json:"revenue,omitempty"`
}

type Dashboard struct {
	Totals         Totals           `json:"totals"`
	SortBy         string           `json:"sort_by"`
	Order          string           `json:"order"`
	ActiveProjects []domain.Project `json:"active_projects"`
}

type MonthKwh struct {
	Month string  `json:"month"`
	Kwh   float64 `json:"kwh"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Group string `json:"group"`
	Count int    `json:"count"`
}

type GroupCount struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
	Count  int      `json:"count"`
}

type Report struct {
	Year        int          `json:"year"`
	YearOptions []int        `json:"year_options"`
	Totals      Totals       `json:"totals"`
	MonthlyKwh  []MonthKwh   `json:"monthly_kwh"`
	Stages      []StageCount `json:"stages"`
	Groups      []GroupCount `json:"groups"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) load(ctx context.Context) ([]domain.Project, error) {
	var list []domain.Project
	if err := s.DB.WithContext(ctx).Scopes(domain.NotDeleted).Order("created_at DESC").Find(&list).Error; err != nil {
		log.Error().Err(err).Msg("load projects for reports failed")
		return nil, domain.StoreFailure("load projects", err)
	}
	return list, nil
}

func totals(sess access.Session, list []domain.Project) Totals {
	var t Totals
	customers := make(map[string]struct{})
	revenue := decimal.Zero
	for _, p := range list {
		customers[p.CustomerName] = struct{}{}
		switch p.Status {
		case domain.StatusActive:
			t.Active++
		case domain.StatusCompleted:
			t.Completed++
		}
		t.Kwh += p.Kwh
		revenue = revenue.Add(p.ProposalAmount)
	}
	t.Customers = len(customers)
	t.Projects = len(list)
	if sess.Can(constants.ViewRevenue) {
		t.Revenue = &revenue
	}
	return t
}

// Dashboard returns headline totals and the active projects ordered by
// sortBy (date, amount or stage) in order (asc or desc). Empty values
// default to date desc.
func (s *Service) Dashboard(ctx context.Context, sess access.Session, sortBy, order string) (*Dashboard, error) {
	if sortBy == "" {
		sortBy = "date"
	}
	order = strings.ToLower(order)
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		return nil, domain.Invalid("order must be asc or desc")
	}
	less, ok := sorters[sortBy]
	if !ok {
		return nil, domain.Invalid("sort must be date, amount or stage")
	}

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Project, 0, len(list))
	for _, p := range list {
		if p.Status == domain.StatusActive {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if order == "asc" {
			return less(active[i], active[j])
		}
		return less(active[j], active[i])
	})
	return &Dashboard{Totals: totals(sess, list), SortBy: sortBy, Order: order, ActiveProjects: active}, nil
}

// startedOn falls back to created_at for rows without a start date.
func startedOn(p domain.Project) time.Time {
	if p.StartDate.IsZero() {
		return p.CreatedAt
	}
	return p.StartDate
}

var sorters = map[string]func(a, b domain.Project) bool{
	"date": func(a, b domain.Project) bool {
		return startedOn(a).Before(startedOn(b))
	},
	"amount": func(a, b domain.Project) bool {
		return a.ProposalAmount.LessThan(b.ProposalAmount)
	},
	"stage": func(a, b domain.Project) bool {
		return domain.StageIndex(a.CurrentStage) < domain.StageIndex(b.CurrentStage)
	},
}

// YearOptions is the current year and the four before it.
func (s *Service) YearOptions() []int {
	current := s.now().Year()
	out := make([]int, yearOptionCount)
	for i := range out {
		out[i] = current - i
	}
	return out
}

// Report builds the yearly report. year 0 means the current year.
func (s *Service) Report(ctx context.Context, sess access.Session, year int) (*Report, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1900 || year > 9999 {
		return nil, domain.Invalid("year out of range")
	}
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Year:        year,
		YearOptions: s.YearOptions(),
		Totals:      totals(sess, list),
		MonthlyKwh:  make([]MonthKwh, len(monthNames)),
		Stages:      make([]StageCount, len(domain.Stages)),
		Groups:      make([]GroupCount, len(domain.StageGroups)),
	}
	for i, m := range monthNames {
		r.MonthlyKwh[i].Month = m
	}
	for i, st := range domain.Stages {
		r.Stages[i] = StageCount{Stage: st, Group: domain.StageGroupOf(st)}
	}
	for i, g := range domain.StageGroups {
		r.Groups[i] = GroupCount{Name: g.Name, Stages: domain.Stages[g.From:g.To]}
	}

	for _, p := range list {
		if !p.StartDate.IsZero() && p.StartDate.Year() == year {
			r.MonthlyKwh[p.StartDate.Month()-1].Kwh += p.Kwh
		}
		idx := domain.StageIndex(p.CurrentStage)
		if idx < 0 {
			continue
		}
		r.Stages[idx].Count++
		for i, g := range domain.StageGroups {
			if idx >= g.From && idx < g.To {
				r.Groups[i].Count++
			}
		}
	}
	return r, nil
}
