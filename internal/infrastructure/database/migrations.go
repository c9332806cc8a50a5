package database

import (
	"axiso-backend/internal/domain"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrate applies every pending schema migration in order.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240110_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.User{}, &domain.Project{}, &domain.PaymentHistory{}, &domain.ServiceTicket{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("service_tickets", "payment_history", "projects", "users")
			},
		},
		{
			ID: "20240322_fix_subsidy_stage_spelling",
			Migrate: func(tx *gorm.DB) error {
				return tx.Model(&domain.Project{}).
					Where("current_stage = ?", "Subsisdy(in progress)").
					Update("current_stage", "Subsidy(in progress)").Error
			},
		},
		{
			ID: "20240405_index_payment_dates",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&domain.PaymentHistory{}, "idx_payment_history_payment_date") {
					return nil
				}
				return tx.Exec("CREATE INDEX idx_payment_history_payment_date ON payment_history (payment_date)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_payment_history_payment_date").Error
			},
		},
	})
	return m.Migrate()
}
