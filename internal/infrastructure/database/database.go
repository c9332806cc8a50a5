package database

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the project store from a Postgres DSN (Supabase pooler URL in
// production). PreferSimpleProtocol disables prepared statement caching to avoid
// 42P05 ("prepared statement already exists") behind PgBouncer.
func Open(dsn string, maxOpen int) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database url is not set")
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	log.Debug().Int("max_open", maxOpen).Msg("database pool configured")
	return db, nil
}
