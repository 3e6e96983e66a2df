package domain

// DefaultCurrency is used when an order payload carries no currency.
const DefaultCurrency = "₺"

// UnknownPlaceholder is shown for customer identity fields that no source provides.
const UnknownPlaceholder = "Bilinmiyor"

// OrderItem is a single line of an order as sent by the shop backend.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Subtotal float64 `json:"subtotal"`
}

// ShippingDetails is the delivery block filled in by the customer at checkout.
type ShippingDetails struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CustomText   string `json:"customText"`
	DeliveryDate string `json:"deliveryDate"`
	Notes        string `json:"notes"`
}

// Payment describes how the order was paid.
type Payment struct {
	Method string `json:"method"`
}

// OrderPayload is the order state posted by the shop backend.
// Shipping and Payment are optional; the top-level identity fields are
// older fallbacks some callers still send instead of the shipping block.
type OrderPayload struct {
	OrderNumber  string           `json:"orderNumber"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"createdAt"`
	Shipping     *ShippingDetails `json:"shipping"`
	Items        []OrderItem      `json:"items"`
	Subtotal     float64          `json:"subtotal"`
	ShippingCost float64          `json:"shippingCost"`
	Total        float64          `json:"total"`
	Currency     string           `json:"currency"`
	Payment      *Payment         `json:"payment"`

	Customer      string `json:"customer"`
	CustomerEmail string `json:"customerEmail"`
	UserEmail     string `json:"userEmail"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// ShippingInfo carries the carrier data for a shipped order.
type ShippingInfo struct {
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCompany string `json:"shippingCompany"`
	TrackingURL     string `json:"trackingUrl"`
}

// ShippingDetailsOrEmpty returns the shipping block, or a zero value when none was sent.
func (o *OrderPayload) ShippingDetailsOrEmpty() ShippingDetails {
	if o.Shipping == nil {
		return ShippingDetails{}
	}
	return *o.Shipping
}

// ResolveCustomerEmail resolves the customer address: shipping.email, then
// customerEmail, then userEmail. Empty when none is set.
func (o *OrderPayload) ResolveCustomerEmail() string {
	return FirstNonEmpty(o.ShippingDetailsOrEmpty().Email, o.CustomerEmail, o.UserEmail)
}

// ResolveCustomerName resolves the display name with the unknown placeholder as last resort.
func (o *OrderPayload) ResolveCustomerName() string {
	return FirstNonEmpty(o.ShippingDetailsOrEmpty().FullName, o.Customer, UnknownPlaceholder)
}

// ResolveCustomerPhone resolves the display phone with the unknown placeholder as last resort.
func (o *OrderPayload) ResolveCustomerPhone() string {
	return FirstNonEmpty(o.ShippingDetailsOrEmpty().Phone, o.Phone, UnknownPlaceholder)
}

// ResolveCustomerAddress resolves the display address with the unknown placeholder as last resort.
func (o *OrderPayload) ResolveCustomerAddress() string {
	return FirstNonEmpty(o.ShippingDetailsOrEmpty().Address, o.Address, UnknownPlaceholder)
}

// CurrencyOrDefault returns the order currency, or DefaultCurrency when unset.
func (o *OrderPayload) CurrencyOrDefault() string {
	return FirstNonEmpty(o.Currency, DefaultCurrency)
}

// PaymentMethod returns the raw payment method code, empty when no payment block was sent.
func (o *OrderPayload) PaymentMethod() string {
	if o.Payment == nil {
		return ""
	}
	return o.Payment.Method
}

// MissingForCreated lists the required fields absent for an order-created notification.
func (o *OrderPayload) MissingForCreated() []string {
	var missing []string
	if isBlank(o.OrderNumber) {
		missing = append(missing, "orderNumber")
	}
	if isBlank(o.ResolveCustomerEmail()) {
		missing = append(missing, "customerEmail")
	}
	return missing
}

// MissingForShipped lists the required fields absent for an order-shipped notification.
// A nil order or shipping info counts as every one of its fields missing.
func MissingForShipped(order *OrderPayload, info *ShippingInfo) []string {
	if order == nil {
		order = &OrderPayload{}
	}
	if info == nil {
		info = &ShippingInfo{}
	}
	missing := order.MissingForCreated()
	if isBlank(info.TrackingNumber) {
		missing = append(missing, "trackingNumber")
	}
	if isBlank(info.ShippingCompany) {
		missing = append(missing, "shippingCompany")
	}
	return missing
}
