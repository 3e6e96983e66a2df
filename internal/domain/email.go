package domain

import "context"

// TemplateContext is the flat set of display values a mail template is executed against.
// It is built fresh for every request and not modified after rendering starts.
type TemplateContext map[string]any

// Envelope is a fully assembled outbound message.
type Envelope struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for delivering envelopes through the relay (infrastructure port).
// Send returns the provider-assigned message identifier. Calling Send twice
// with the same envelope delivers two messages.
type Mailer interface {
	Send(ctx context.Context, env *Envelope) (messageID string, err error)
	// Verify checks that the relay is reachable and accepts our credentials.
	Verify(ctx context.Context) error
}

// EmailTemplateRenderer renders a named HTML template with the given context.
type EmailTemplateRenderer interface {
	Render(templateName string, data TemplateContext) (string, error)
}

// TestEmailRequest holds the optional fields of a relay test message.
type TestEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// OrderEmailService defines the order notification use cases.
// Each method returns the message id of the delivered mail.
type OrderEmailService interface {
	SendOrderCreated(ctx context.Context, order *OrderPayload) (string, error)
	SendOrderShipped(ctx context.Context, order *OrderPayload, info *ShippingInfo) (string, error)
	SendTestEmail(ctx context.Context, req TestEmailRequest) (string, error)
}
