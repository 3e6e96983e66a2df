package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ordermail/internal/domain"
)

// Supported values for MailerConfig.Provider.
const (
	ProviderSMTP   = "smtp"
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderNoop   = "noop"
)

// SMTPConfig holds configuration for an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// ImplicitTLS dials TLS straight away (port 465 style) instead of STARTTLS.
	ImplicitTLS bool
	Timeout     time.Duration
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// ResendConfig holds configuration for the Resend API.
type ResendConfig struct {
	APIKey string
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider string
	SMTP     SMTPConfig
	SES      SESConfig
	Resend   ResendConfig
}

// NewMailer creates a mailer from config. Provider "smtp" submits through an SMTP relay,
// "ses" uses AWS SES, "resend" uses the Resend API; "noop" or unknown uses a no-op mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case ProviderSMTP, "":
		return newSMTPMailer(config.SMTP, logger)
	case ProviderSES:
		return newSESMailer(config.SES, logger), nil
	case ProviderResend:
		if config.Resend.APIKey == "" {
			return nil, fmt.Errorf("resend: api key is required")
		}
		return newResendMailer(config.Resend, logger), nil
	case ProviderNoop:
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(_ context.Context, env *domain.Envelope) (string, error) {
	id := "<" + uuid.NewString() + "@noop.invalid>"
	n.logger.Info("email would be sent (noop)", "to", env.To, "subject", env.Subject, "message_id", id)
	return id, nil
}

func (n *noopMailer) Verify(context.Context) error {
	return nil
}
