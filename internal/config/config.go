package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string
	DBMaxOpenConns      int
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	CookieDomain        string

	RequestTimeout      time.Duration
	PaymentDedupeWindow time.Duration
	LoginRatePerMinute  int

	ReceiptOutputDir     string
	ReceiptLogoPath      string
	ReceiptSignaturePath string

	BrevoAPIKey string
	MailFrom    string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("PAYMENT_DEDUPE_WINDOW", "5s")
	viper.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		switch env {
		case "production":
			dbURL = viper.GetString("DATABASE_URL_PROD")
		case "test":
			dbURL = viper.GetString("DATABASE_URL_TEST")
		default:
			dbURL = viper.GetString("DATABASE_URL_DEV")
		}
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	return &Config{
		Env:                  env,
		Port:                 viper.GetString("PORT"),
		LogLevel:             viper.GetString("LOG_LEVEL"),
		SessionSecret:        viper.GetString("SESSION_SECRET"),
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       viper.GetInt("DB_MAX_OPEN_CONNS"),
		RedisURL:             viper.GetString("REDIS_URL"),
		FrontendURLEndsWith:  viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:          viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:    strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:       viper.GetString("HEALTH_ADMIN_KEY"),
		CookieDomain:         viper.GetString("COOKIE_DOMAIN"),
		RequestTimeout:       positive(viper.GetDuration("REQUEST_TIMEOUT"), 10*time.Second),
		PaymentDedupeWindow:  positive(viper.GetDuration("PAYMENT_DEDUPE_WINDOW"), 5*time.Second),
		LoginRatePerMinute:   viper.GetInt("LOGIN_RATE_PER_MINUTE"),
		ReceiptOutputDir:     viper.GetString("RECEIPT_OUTPUT_DIR"),
		ReceiptLogoPath:      viper.GetString("RECEIPT_LOGO_PATH"),
		ReceiptSignaturePath: viper.GetString("RECEIPT_SIGNATURE_PATH"),
		BrevoAPIKey:          firstNonEmpty(viper.GetString("BREVO_API_KEY"), viper.GetString("SENDINBLUE_API_KEY")),
		MailFrom:             viper.GetString("MAIL_FROM"),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func positive(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
