package router

import (
	"net/http"

	"axiso-backend/internal/application/auth"
	"axiso-backend/internal/application/emails"
	financesvc "axiso-backend/internal/application/finance"
	paymentsvc "axiso-backend/internal/application/payments"
	projectsvc "axiso-backend/internal/application/projects"
	receiptsvc "axiso-backend/internal/application/receipts"
	reportsvc "axiso-backend/internal/application/reports"
	ticketsvc "axiso-backend/internal/application/tickets"
	"axiso-backend/internal/config"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/infrastructure/cache"
	"axiso-backend/internal/infrastructure/database"
	"axiso-backend/internal/infrastructure/pdf"
	authhandler "axiso-backend/internal/interfaces/handlers/auth"
	financehandler "axiso-backend/internal/interfaces/handlers/finance"
	healthhandler "axiso-backend/internal/interfaces/handlers/health"
	payhandler "axiso-backend/internal/interfaces/handlers/payments"
	projecthandler "axiso-backend/internal/interfaces/handlers/projects"
	receipthandler "axiso-backend/internal/interfaces/handlers/receipts"
	reporthandler "axiso-backend/internal/interfaces/handlers/reports"
	tickethandler "axiso-backend/internal/interfaces/handlers/tickets"
	"axiso-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp connects to Postgres and Redis and mounts every route.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return New(cfg, db, rdb), db, rdb, nil
}

// New builds the app on already-open stores.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Timeout(cfg.RequestTimeout))
	app.Use(middleware.Session(rdb))

	hh := &healthhandler.Handlers{Rdb: rdb, HealthAdminKey: cfg.HealthAdminKey}
	if sqlDB, err := db.DB(); err == nil {
		hh.DB = sqlDB
	} else {
		log.Warn().Err(err).Msg("database handle unavailable for health checks")
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
		CookieDomain:      cfg.CookieDomain,
	}
	ah := &authhandler.Handlers{
		UserFinder: &auth.GormUserFinder{DB: db},
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMinute)
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", loginLimiter.Middleware(), ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Delete("/sessions", ah.LogoutAll)

	api := app.Group("/api/v1", middleware.RequireAuth())

	payments := &paymentsvc.Service{DB: db}
	reports := &reportsvc.Service{DB: db}

	// Dashboard and reports
	rh := &reporthandler.Handlers{Service: reports}
	api.Get("/dashboard", rh.Dashboard)
	api.Get("/reports", rh.Report)
	api.Get("/reports/export", rh.Export)

	// Projects
	ph := &projecthandler.Handlers{Service: &projectsvc.Service{DB: db}}
	api.Get("/projects", ph.List)
	api.Post("/projects", ph.Create)
	api.Get("/projects/:id", ph.Get)
	api.Patch("/projects/:id", ph.UpdateCustomer)
	api.Delete("/projects/:id", ph.Delete)
	api.Post("/projects/:id/stage/advance", ph.AdvanceStage)
	api.Post("/projects/:id/stage/retreat", ph.RetreatStage)

	// Payments
	payh := &payhandler.Handlers{Service: payments}
	api.Get("/projects/:id/payments", payh.List)
	api.Post("/projects/:id/payments", middleware.Dedupe(rdb, cfg.PaymentDedupeWindow), payh.Record)
	api.Delete("/payments/:id", payh.Delete)

	// Receipts
	receipts := &receiptsvc.Service{
		DB:       db,
		Payments: payments,
		Assets: receiptsvc.Assets{
			LogoPath:      cfg.ReceiptLogoPath,
			SignaturePath: cfg.ReceiptSignaturePath,
		},
		OutputDir:   cfg.ReceiptOutputDir,
		NewDocument: pdf.NewReceiptDocument,
	}
	if cfg.BrevoAPIKey != "" {
		receipts.Mailer = &emails.BrevoClient{APIKey: cfg.BrevoAPIKey, MailFrom: cfg.MailFrom}
	}
	rch := &receipthandler.Handlers{Service: receipts}
	canViewReceipts := middleware.AuthorizePermission(constants.ViewReceipts)
	api.Get("/payments/:id/receipt", canViewReceipts, rch.Payment)
	api.Get("/projects/:id/receipts/advance", canViewReceipts, rch.Advance)
	api.Post("/payments/:id/receipt/email", canViewReceipts, middleware.Dedupe(rdb, cfg.PaymentDedupeWindow), rch.EmailPayment)
	api.Post("/projects/:id/receipts/advance/email", canViewReceipts, middleware.Dedupe(rdb, cfg.PaymentDedupeWindow), rch.EmailAdvance)

	// Finance
	fh := &financehandler.Handlers{Service: &financesvc.Service{DB: db}}
	api.Get("/finance", middleware.AuthorizePermission(constants.ViewFinance), fh.Summary)

	// Service tickets
	th := &tickethandler.Handlers{Service: &ticketsvc.Service{DB: db}}
	tg := api.Group("/service-tickets")
	tg.Get("/", th.List)
	tg.Get("/customers", th.Customers)
	tg.Post("/", th.Create)
	tg.Post("/:id/start", th.Start)
	tg.Post("/:id/complete", th.Complete)

	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
