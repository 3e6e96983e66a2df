package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"ordermail/internal/domain"
	"ordermail/internal/format"
)

const (
	orderCreatedTemplate = "orderCreated"
	orderShippedTemplate = "orderShipped"

	defaultTestSubject = "Test Email - Rummy Cookies Mail Server"
	defaultTestMessage = "Mail server başarıyla çalışıyor!"

	defaultSendTimeout = 20 * time.Second
)

var testEmailTemplate = template.Must(template.New("testEmail").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #b5755c;">🍪 Rummy Cookies Mail Server Test</h2>
  <p>Bu bir test e-postasıdır.</p>
  <p><strong>Mesaj:</strong> {{.Message}}</p>
  <p><strong>Tarih:</strong> {{.SentAt}}</p>
  <hr style="border: 1px solid #eee; margin: 20px 0;">
</div>
`))

// EmailServiceConfig holds the fixed envelope settings of the order mail service.
type EmailServiceConfig struct {
	// From is the sender identity, e.g. "Rummy Cookies <shop@example.com>".
	From       string
	AdminEmail string
	// SendTimeout bounds each relay submission; zero means 20s.
	SendTimeout time.Duration
}

type emailService struct {
	mailer    domain.Mailer
	renderer  domain.EmailTemplateRenderer
	formatter *format.Formatter
	config    EmailServiceConfig
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewEmailService returns an OrderEmailService that renders with renderer and delivers with mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, formatter *format.Formatter, config EmailServiceConfig, logger *slog.Logger) domain.OrderEmailService {
	if config.SendTimeout <= 0 {
		config.SendTimeout = defaultSendTimeout
	}
	return &emailService{
		mailer:    mailer,
		renderer:  renderer,
		formatter: formatter,
		config:    config,
		logger:    logger,
		sanitizer: bluemonday.UGCPolicy(),
		now:       time.Now,
	}
}

// SendOrderCreated notifies the admin address about a new order using the "orderCreated" template.
func (s *emailService) SendOrderCreated(ctx context.Context, order *domain.OrderPayload) (string, error) {
	if order == nil {
		return "", domain.NewValidationError([]string{"orderNumber", "customerEmail"})
	}
	if verr := domain.NewValidationError(order.MissingForCreated()); verr != nil {
		return "", verr
	}
	data, err := s.orderContext(order)
	if err != nil {
		return "", err
	}
	data["status"] = format.StatusText(order.Status)
	data["customerEmail"] = order.ResolveCustomerEmail()
	data["paymentMethod"] = format.PaymentMethodText(order.PaymentMethod())
	data["notes"] = order.ShippingDetailsOrEmpty().Notes

	htmlBody, err := s.renderer.Render(orderCreatedTemplate, data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", orderCreatedTemplate, err)
	}
	env := &domain.Envelope{
		From:    s.config.From,
		To:      s.config.AdminEmail,
		Subject: fmt.Sprintf("🍪 Yeni Sipariş: %s - Rummy Cookies", order.OrderNumber),
		HTML:    htmlBody,
		Text: fmt.Sprintf("Yeni sipariş alındı!\n\nSipariş No: %s\nMüşteri: %s\nE-posta: %s\nToplam: %s%s",
			order.OrderNumber, data["customerName"], data["customerEmail"], data["total"], data["currency"]),
	}
	id, err := s.send(ctx, env)
	if err != nil {
		return "", err
	}
	s.logger.Info("order created email sent to admin", "order_number", order.OrderNumber, "message_id", id)
	return id, nil
}

// SendOrderShipped notifies the customer that the order left with a carrier, using the "orderShipped" template.
func (s *emailService) SendOrderShipped(ctx context.Context, order *domain.OrderPayload, info *domain.ShippingInfo) (string, error) {
	if verr := domain.NewValidationError(domain.MissingForShipped(order, info)); verr != nil {
		return "", verr
	}
	data, err := s.orderContext(order)
	if err != nil {
		return "", err
	}
	data["shippingDate"] = s.formatter.LongDateTime(s.now())
	data["trackingNumber"] = info.TrackingNumber
	data["shippingCompany"] = info.ShippingCompany
	data["trackingUrl"] = info.TrackingURL

	htmlBody, err := s.renderer.Render(orderShippedTemplate, data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", orderShippedTemplate, err)
	}
	customerEmail := order.ResolveCustomerEmail()
	env := &domain.Envelope{
		From:    s.config.From,
		To:      customerEmail,
		Subject: fmt.Sprintf("🚚 Siparişiniz Kargoya Verildi: %s - Rummy Cookies", order.OrderNumber),
		HTML:    htmlBody,
		Text: fmt.Sprintf("Siparişiniz kargoya verildi!\n\nSipariş No: %s\nKargo Firması: %s\nTakip No: %s",
			order.OrderNumber, info.ShippingCompany, info.TrackingNumber),
	}
	id, err := s.send(ctx, env)
	if err != nil {
		return "", err
	}
	s.logger.Info("order shipped email sent to customer", "order_number", order.OrderNumber, "message_id", id)
	return id, nil
}

// SendTestEmail sends a small inline message. Every field is optional: the
// recipient defaults to the admin address and subject and message to fixed texts.
func (s *emailService) SendTestEmail(ctx context.Context, req domain.TestEmailRequest) (string, error) {
	to := domain.FirstNonEmpty(req.To, s.config.AdminEmail)
	subject := domain.FirstNonEmpty(req.Subject, defaultTestSubject)
	message := domain.FirstNonEmpty(req.Message, defaultTestMessage)
	sentAt := s.formatter.DateTime(s.now())

	var buf bytes.Buffer
	err := testEmailTemplate.Execute(&buf, struct {
		Message template.HTML
		SentAt  string
	}{
		Message: template.HTML(s.sanitizer.Sanitize(message)),
		SentAt:  sentAt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: testEmail: %v", domain.ErrRenderFailed, err)
	}
	env := &domain.Envelope{
		From:    s.config.From,
		To:      to,
		Subject: subject,
		HTML:    buf.String(),
		Text:    fmt.Sprintf("Rummy Cookies Mail Server Test\n\nMesaj: %s\nTarih: %s", message, sentAt),
	}
	id, err := s.send(ctx, env)
	if err != nil {
		return "", err
	}
	s.logger.Info("test email sent", "to", to, "message_id", id)
	return id, nil
}

// orderContext builds the display fields shared by both order templates.
func (s *emailService) orderContext(order *domain.OrderPayload) (domain.TemplateContext, error) {
	shipping := order.ShippingDetailsOrEmpty()
	currency := order.CurrencyOrDefault()

	orderDate := domain.UnknownPlaceholder
	if order.CreatedAt != "" {
		created, err := format.ParseTimestamp(order.CreatedAt, s.formatter.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: createdAt: %v", domain.ErrInvalidInput, err)
		}
		orderDate = s.formatter.LongDateTime(created)
	}
	deliveryDate := ""
	if shipping.DeliveryDate != "" {
		d, err := format.ParseTimestamp(shipping.DeliveryDate, s.formatter.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: shipping.deliveryDate: %v", domain.ErrInvalidInput, err)
		}
		deliveryDate = s.formatter.ShortDate(d)
	}

	items := make([]domain.TemplateContext, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, domain.TemplateContext{
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    format.Amount(it.Price),
			"currency": domain.FirstNonEmpty(it.Currency, currency),
			"subtotal": format.Amount(it.Subtotal),
		})
	}

	return domain.TemplateContext{
		"orderNumber":     order.OrderNumber,
		"orderDate":       orderDate,
		"customerName":    order.ResolveCustomerName(),
		"customerPhone":   order.ResolveCustomerPhone(),
		"customerAddress": order.ResolveCustomerAddress(),
		"customText":      shipping.CustomText,
		"deliveryDate":    deliveryDate,
		"items":           items,
		"subtotal":        format.Amount(order.Subtotal),
		"shippingCost":    format.Amount(order.ShippingCost),
		"total":           format.Amount(order.Total),
		"currency":        currency,
		"shippingText":    format.ShippingCostText(order.ShippingCost, currency),
	}, nil
}

// send submits env with a bounded deadline. The deadline is detached from the
// caller's cancellation: an accepted request runs to completion or failure.
func (s *emailService) send(ctx context.Context, env *domain.Envelope) (string, error) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.SendTimeout)
	defer cancel()

	id, err := s.mailer.Send(sendCtx, env)
	if err != nil {
		if !errors.Is(err, domain.ErrSendFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
		}
		return "", err
	}
	return id, nil
}
