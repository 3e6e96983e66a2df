package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v3"

	"ordermail/internal/domain"
)

type resendMailer struct {
	client *resend.Client
	logger *slog.Logger
}

func newResendMailer(cfg ResendConfig, logger *slog.Logger) *resendMailer {
	return &resendMailer{client: resend.NewClient(cfg.APIKey), logger: logger}
}

func (r *resendMailer) Send(ctx context.Context, env *domain.Envelope) (string, error) {
	req := &resend.SendEmailRequest{
		From:    env.From,
		To:      []string{env.To},
		Subject: env.Subject,
		Html:    env.HTML,
		Text:    env.Text,
	}
	sent, err := r.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: resend: %v", domain.ErrSendFailed, err)
	}
	r.logger.Info("email sent via resend", "to", env.To, "message_id", sent.Id)
	return sent.Id, nil
}

// Verify is a no-op: sending-only API keys cannot call any read endpoint.
func (r *resendMailer) Verify(context.Context) error {
	return nil
}
