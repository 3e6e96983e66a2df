package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordermail/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEnvelope() *domain.Envelope {
	return &domain.Envelope{
		From:    "Rummy Cookies <shop@example.com>",
		To:      "admin@example.com",
		Subject: "Yeni Sipariş: RUM-1",
		HTML:    "<p>Merhaba</p>",
		Text:    "Merhaba",
	}
}

func TestNewMailer_Providers(t *testing.T) {
	logger := discardLogger()

	tests := []struct {
		name     string
		config   MailerConfig
		wantType any
		wantErr  bool
	}{
		{name: "noop", config: MailerConfig{Provider: ProviderNoop}, wantType: &noopMailer{}},
		{name: "unknown falls back to noop", config: MailerConfig{Provider: "carrier-pigeon"}, wantType: &noopMailer{}},
		{name: "ses", config: MailerConfig{Provider: ProviderSES, SES: SESConfig{Region: "eu-central-1"}}, wantType: &sesMailer{}},
		{name: "resend", config: MailerConfig{Provider: ProviderResend, Resend: ResendConfig{APIKey: "re_test"}}, wantType: &resendMailer{}},
		{name: "resend without key", config: MailerConfig{Provider: ProviderResend}, wantErr: true},
		{name: "smtp", config: MailerConfig{Provider: ProviderSMTP, SMTP: SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"}}, wantType: &smtpMailer{}},
		{name: "empty provider means smtp", config: MailerConfig{SMTP: SMTPConfig{Host: "smtp.example.com", Port: 465, ImplicitTLS: true}}, wantType: &smtpMailer{}},
		{name: "smtp without host", config: MailerConfig{Provider: ProviderSMTP}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, logger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, m)
		})
	}
}

func TestNoopMailer_DistinctMessageIDs(t *testing.T) {
	m := &noopMailer{logger: discardLogger()}

	first, err := m.Send(context.Background(), testEnvelope())
	require.NoError(t, err)
	second, err := m.Send(context.Background(), testEnvelope())
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "@noop.invalid>"))
	assert.NoError(t, m.Verify(context.Background()))
}

func TestBuildSMTPMessage(t *testing.T) {
	msg, err := buildSMTPMessage(testEnvelope())
	require.NoError(t, err)
	assert.NotEmpty(t, msg.GetMessageID())

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "admin@example.com")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "text/plain")
}

func TestBuildSMTPMessage_HTMLOnly(t *testing.T) {
	env := testEnvelope()
	env.Text = ""
	msg, err := buildSMTPMessage(env)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.NotContains(t, buf.String(), "multipart/alternative")
}

func TestBuildSMTPMessage_InvalidRecipient(t *testing.T) {
	env := testEnvelope()
	env.To = "not an address"
	_, err := buildSMTPMessage(env)
	require.Error(t, err)
}

func TestSMTPMailer_SendWrapsInvalidEnvelope(t *testing.T) {
	m, err := newSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587}, discardLogger())
	require.NoError(t, err)
	env := testEnvelope()
	env.From = "broken"

	_, err = m.Send(context.Background(), env)
	require.ErrorIs(t, err, domain.ErrSendFailed)
}

// fakeSES implements sesAPI for tests.
type fakeSES struct {
	lastInput *ses.SendEmailInput
	messageID string
	sendErr   error
	quotaErr  error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.lastInput = in
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &ses.SendEmailOutput{MessageId: aws.String(f.messageID)}, nil
}

func (f *fakeSES) GetSendQuota(_ context.Context, _ *ses.GetSendQuotaInput, _ ...func(*ses.Options)) (*ses.GetSendQuotaOutput, error) {
	if f.quotaErr != nil {
		return nil, f.quotaErr
	}
	return &ses.GetSendQuotaOutput{}, nil
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{messageID: "0100-abc"}
	m := &sesMailer{client: fake, logger: discardLogger()}

	id, err := m.Send(context.Background(), testEnvelope())
	require.NoError(t, err)
	assert.Equal(t, "0100-abc", id)

	require.NotNil(t, fake.lastInput)
	assert.Equal(t, "Rummy Cookies <shop@example.com>", aws.ToString(fake.lastInput.Source))
	assert.Equal(t, []string{"admin@example.com"}, fake.lastInput.Destination.ToAddresses)
	assert.Equal(t, "Yeni Sipariş: RUM-1", aws.ToString(fake.lastInput.Message.Subject.Data))
	assert.Equal(t, "<p>Merhaba</p>", aws.ToString(fake.lastInput.Message.Body.Html.Data))
	assert.Equal(t, "Merhaba", aws.ToString(fake.lastInput.Message.Body.Text.Data))
}

func TestSESMailer_SendFailure(t *testing.T) {
	fake := &fakeSES{sendErr: errors.New("MessageRejected: Email address is not verified")}
	m := &sesMailer{client: fake, logger: discardLogger()}

	_, err := m.Send(context.Background(), testEnvelope())
	require.ErrorIs(t, err, domain.ErrSendFailed)
	assert.Contains(t, err.Error(), "Email address is not verified")
}

func TestSESMailer_Verify(t *testing.T) {
	ok := &sesMailer{client: &fakeSES{}, logger: discardLogger()}
	assert.NoError(t, ok.Verify(context.Background()))

	bad := &sesMailer{client: &fakeSES{quotaErr: errors.New("InvalidClientTokenId")}, logger: discardLogger()}
	assert.ErrorContains(t, bad.Verify(context.Background()), "InvalidClientTokenId")
}
