// Command migrate applies the schema and optionally provisions a staff account.
//
//	go run ./cmd/migrate
//	go run ./cmd/migrate -create-user -email office@axisogreen.in -password ... -role admin
package main

import (
	"context"
	"flag"
	"os"

	"axiso-backend/internal/application/auth"
	"axiso-backend/internal/config"
	"axiso-backend/internal/infrastructure/database"
	"axiso-backend/internal/pkg/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	createUser := flag.Bool("create-user", false, "create a staff account after migrating")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password (defaults to $ACCOUNT_PASSWORD)")
	fullname := flag.String("name", "", "display name")
	role := flag.String("role", "", "admin, finance or user (default derived from email)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	db, err := database.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("migrations applied")

	if !*createUser {
		return
	}
	pw := *password
	if pw == "" {
		pw = os.Getenv("ACCOUNT_PASSWORD")
	}
	u, err := auth.CreateUser(context.Background(), db, auth.CreateUserInput{
		Email:    *email,
		Password: pw,
		Fullname: *fullname,
		Role:     *role,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("create user failed")
	}
	log.Info().Str("user_id", u.UserID.String()).Str("email", u.Email).Str("role", u.Role).Msg("user created")
}
