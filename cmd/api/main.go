package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"axiso-backend/internal/config"
	"axiso-backend/internal/infrastructure/cache"
	"axiso-backend/internal/interfaces/router"
	"axiso-backend/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	fiberApp   *fiber.App
	appCfg     *config.Config
	startupDB  *gorm.DB
	startupRdb *redis.Client
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	appCfg = cfg
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create failed")
	}
	fiberApp = app
	startupDB = db
	startupRdb = rdb
}

func Handler(w http.ResponseWriter, r *http.Request) {
	adaptor.FiberApp(fiberApp)(w, r)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	sqlDB, err := startupDB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	log.Info().Msg("postgres connected")
	if err := cache.Ping(ctx, startupRdb); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Msg("redis connected")
	cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info().Msg("shutting down")
		if err := fiberApp.ShutdownWithTimeout(appCfg.RequestTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", appCfg.Port).Msg("server running")
	if err := fiberApp.Listen(":" + appCfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}
	_ = startupRdb.Close()
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
