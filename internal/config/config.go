package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/satmoko/studio-backend/internal/models"
)

// Config is resolved once at startup. Required fields fail loudly;
// there are no placeholder fallbacks for secrets.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	// Privileged identities that bypass credit metering.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	// Members are considered online while now - last_seen < window.
	PresenceWindow time.Duration `env:"PRESENCE_WINDOW" envDefault:"300s"`

	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`

	Midtrans MidtransConfig `envPrefix:"MIDTRANS_"`
	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`
	Email    EmailConfig    `envPrefix:"EMAIL_"`
	S3       S3Config       `envPrefix:"S3_"`
}

type MidtransConfig struct {
	ServerKey string `env:"SERVER_KEY,required"`
	ClientKey string `env:"CLIENT_KEY,required"`
}

type TelegramConfig struct {
	BotToken string `env:"BOT_TOKEN"`
	ChatID   string `env:"CHAT_ID"`
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromAddress  string `env:"FROM_ADDRESS" envDefault:"noreply@satmoko.studio"`
	FromName     string `env:"FROM_NAME" envDefault:"Satmoko Studio"`
}

type S3Config struct {
	Endpoint        string `env:"ENDPOINT"`
	Region          string `env:"REGION" envDefault:"auto"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Bucket          string `env:"BUCKET"`
	PublicURL       string `env:"PUBLIC_URL"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for i, e := range cfg.AdminEmails {
		cfg.AdminEmails[i] = models.NormalizeEmail(e)
	}
	return cfg, nil
}
