package config

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // MAIL_TIMEZONE must resolve on minimal images

	"github.com/joho/godotenv"

	"ordermail/internal/adapters/email"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	AdminEmail      string
	MailProvider    string
	MailFromAddress string
	MailFromName    string
	MailSendTimeout time.Duration
	MailLocation    *time.Location
	TemplatesDir    string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPSecure bool

	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool

	ResendAPIKey string

	CORSAllowedOrigins []string
	SentryDSN          string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is provided by the platform.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getenv("PORT", "3001"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		MailProvider:       strings.ToLower(getenv("MAIL_PROVIDER", email.ProviderSMTP)),
		MailFromName:       getenv("MAIL_FROM_NAME", "Rummy Cookies"),
		TemplatesDir:       os.Getenv("TEMPLATES_DIR"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
	}
	cfg.MailFromAddress = getenv("MAIL_FROM_ADDRESS", cfg.SMTPUser)

	var err error
	if cfg.SMTPPort, err = getenvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SMTPSecure, err = getenvBool("SMTP_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.SESInsecureSkipVerify, err = getenvBool("SES_INSECURE_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.MailSendTimeout, err = getenvDuration("MAIL_SEND_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("config: PORT %q is not a number", cfg.Port)
	}

	tz := getenv("MAIL_TIMEZONE", "Europe/Istanbul")
	if cfg.MailLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("config: MAIL_TIMEZONE %q: %w", tz, err)
	}

	return cfg, nil
}

// MailerConfig returns the outbound relay settings for email.NewMailer.
func (c *Config) MailerConfig() email.MailerConfig {
	return email.MailerConfig{
		Provider: c.MailProvider,
		SMTP: email.SMTPConfig{
			Host:        c.SMTPHost,
			Port:        c.SMTPPort,
			Username:    c.SMTPUser,
			Password:    c.SMTPPass,
			ImplicitTLS: c.SMTPSecure,
			Timeout:     c.MailSendTimeout,
		},
		SES: email.SESConfig{
			Region:             c.AWSRegion,
			AccessKeyID:        c.AWSAccessKeyID,
			SecretAccessKey:    c.AWSSecretAccessKey,
			InsecureSkipVerify: c.SESInsecureSkipVerify,
		},
		Resend: email.ResendConfig{APIKey: c.ResendAPIKey},
	}
}

// From returns the sender identity as an RFC 5322 address, e.g. `"Rummy Cookies" <shop@example.com>`.
// The bare address is returned when either part is missing.
func (c *Config) From() string {
	if c.MailFromName == "" || c.MailFromAddress == "" {
		return c.MailFromAddress
	}
	return (&mail.Address{Name: c.MailFromName, Address: c.MailFromAddress}).String()
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s %q is not a number", key, v)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s %q is not a boolean", key, v)
	}
	return b, nil
}

// getenvDuration accepts Go durations ("30s") and plain millisecond counts ("20000").
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s %q is not a duration", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
