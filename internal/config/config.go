package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/mail-merge-service/internal/mailer"
)

const (
	TransportSMTP = "smtp"
	TransportLog  = "log"
)

type Config struct {
	Port        string
	DBURL       string
	RabbitMQURL string

	MailTransport  string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	SMTPSecurity   mailer.Security
	SMTPSkipVerify bool

	MaxUploadMB int64
	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment variables win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		DBURL:         os.Getenv("DB_URL"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		MailTransport: strings.ToLower(os.Getenv("MAIL_TRANSPORT")),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	port, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port

	security, ok := mailer.ParseSecurity(strings.ToLower(os.Getenv("SMTP_SECURITY")))
	if !ok {
		return nil, fmt.Errorf("SMTP_SECURITY must be one of starttls, tls, none")
	}
	cfg.SMTPSecurity = security

	if v := os.Getenv("SMTP_SKIP_VERIFY"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SMTP_SKIP_VERIFY: %w", err)
		}
		cfg.SMTPSkipVerify = skip
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	if cfg.MailTransport == "" {
		cfg.MailTransport = TransportSMTP
		if cfg.SMTPHost == "" {
			cfg.MailTransport = TransportLog
			log.Info().Msg("SMTP_HOST not set, emails will be logged instead of sent")
		}
	}

	switch cfg.MailTransport {
	case TransportSMTP:
		if cfg.SMTPHost == "" {
			log.Error().Msg("SMTP_HOST environment variable is not set")
			return nil, errors.New("SMTP_HOST is required for the smtp transport")
		}
	case TransportLog:
	default:
		return nil, fmt.Errorf("MAIL_TRANSPORT must be smtp or log, got %q", cfg.MailTransport)
	}

	maxUpload, err := intEnv("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)

	cfg.CORSOrigins = []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
		for i := range cfg.CORSOrigins {
			cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// RequireDB fails when no database is configured.
func (c *Config) RequireDB() error {
	if c.DBURL == "" {
		log.Error().Msg("DB_URL environment variable is not set")
		return errors.New("DB_URL is required")
	}
	return nil
}

// SMTPOptions returns the mailer options described by the configuration.
func (c *Config) SMTPOptions() []mailer.Option {
	return []mailer.Option{
		mailer.WithHost(c.SMTPHost),
		mailer.WithPort(c.SMTPPort),
		mailer.WithCredentials(c.SMTPUser, c.SMTPPass),
		mailer.WithFrom(c.SMTPFrom),
		mailer.WithSecurity(c.SMTPSecurity),
		mailer.WithSkipVerify(c.SMTPSkipVerify),
	}
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// Transport builds the mail transport selected by MAIL_TRANSPORT.
func (c *Config) Transport() (mailer.Transport, error) {
	if c.MailTransport == TransportLog {
		return mailer.NewLogTransport(0), nil
	}
	return mailer.NewSMTPTransport(c.SMTPOptions()...)
}
