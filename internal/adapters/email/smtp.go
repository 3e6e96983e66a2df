package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"ordermail/internal/domain"
)

type smtpMailer struct {
	client *mail.Client
	logger *slog.Logger
}

func newSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*smtpMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.ImplicitTLS {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: create client: %w", err)
	}
	return &smtpMailer{client: client, logger: logger}, nil
}

func (s *smtpMailer) Send(ctx context.Context, env *domain.Envelope) (string, error) {
	msg, err := buildSMTPMessage(env)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}
	id := msg.GetMessageID()
	s.logger.Info("email sent via smtp", "to", env.To, "message_id", id)
	return id, nil
}

// Verify dials the relay, authenticates and hangs up.
func (s *smtpMailer) Verify(ctx context.Context) error {
	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp: verify: %w", err)
	}
	return s.client.Close()
}

func buildSMTPMessage(env *domain.Envelope) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(env.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(env.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(env.Subject)
	msg.SetMessageID()
	msg.SetDate()
	if env.Text != "" {
		msg.SetBodyString(mail.TypeTextPlain, env.Text)
		if env.HTML != "" {
			msg.AddAlternativeString(mail.TypeTextHTML, env.HTML)
		}
	} else {
		msg.SetBodyString(mail.TypeTextHTML, env.HTML)
	}
	return msg, nil
}
