package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"ordermail/internal/domain"
)

// sesAPI is the subset of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	GetSendQuota(ctx context.Context, params *ses.GetSendQuotaInput, optFns ...func(*ses.Options)) (*ses.GetSendQuotaOutput, error)
}

type sesMailer struct {
	client sesAPI
	logger *slog.Logger
}

func newSESMailer(cfg SESConfig, logger *slog.Logger) *sesMailer {
	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES; use only in development")
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		),
		HTTPClient: httpClient,
	}
	return &sesMailer{client: ses.NewFromConfig(awsCfg), logger: logger}
}

func (s *sesMailer) Send(ctx context.Context, env *domain.Envelope) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(env.From),
		Destination: &types.Destination{
			ToAddresses: []string{env.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(env.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if env.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(env.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if env.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(env.Text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: ses: %v", domain.ErrSendFailed, err)
	}
	id := aws.ToString(result.MessageId)
	s.logger.Info("email sent via ses", "to", env.To, "message_id", id)
	return id, nil
}

// Verify asks SES for the account send quota, which fails on bad credentials or region.
func (s *sesMailer) Verify(ctx context.Context) error {
	if _, err := s.client.GetSendQuota(ctx, &ses.GetSendQuotaInput{}); err != nil {
		return fmt.Errorf("ses: verify: %w", err)
	}
	return nil
}
