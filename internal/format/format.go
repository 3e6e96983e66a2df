// Package format turns raw order fields into Turkish display strings.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FreeShippingLabel is shown instead of a zero shipping cost.
const FreeShippingLabel = "Ücretsiz Kargo"

// ErrInvalidTimestamp is returned by ParseTimestamp for values it cannot read.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

var statusLabels = map[string]string{
	"pending":   "Beklemede",
	"confirmed": "Onaylandı",
	"preparing": "Hazırlanıyor",
	"shipped":   "Kargoya Verildi",
	"delivered": "Teslim Edildi",
	"cancelled": "İptal Edildi",
}

var paymentMethodLabels = map[string]string{
	"iban":  "IBAN/Havale",
	"paytr": "Kredi Kartı (PayTR)",
}

var monthNames = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// accepted in order; the first that parses wins
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// StatusText returns the label for an order status code, or the code itself if unknown.
func StatusText(code string) string {
	return lookup(statusLabels, code)
}

// PaymentMethodText returns the label for a payment method code, or the code itself if unknown.
func PaymentMethodText(code string) string {
	return lookup(paymentMethodLabels, code)
}

func lookup(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return code
}

// Amount prints an amount the way the shop backend does: shortest form, no trailing zeros.
func Amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShippingCostText returns FreeShippingLabel for a zero cost, otherwise cost followed by currency.
func ShippingCostText(cost float64, currency string) string {
	if cost == 0 {
		return FreeShippingLabel
	}
	return Amount(cost) + currency
}

// ParseTimestamp reads an ISO-8601 timestamp or plain date.
// Values without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Formatter renders dates in the fixed Turkish locale for one time zone.
// It is immutable and safe for concurrent use.
type Formatter struct {
	loc *time.Location
}

// New returns a Formatter for loc; a nil loc means UTC.
func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// Location returns the zone the formatter renders in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// LongDateTime renders t as "25 Aralık 2024 14:30".
func (f *Formatter) LongDateTime(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%d %s %d %02d:%02d", t.Day(), monthNames[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// ShortDate renders t as "25.12.2024".
func (f *Formatter) ShortDate(t time.Time) string {
	return t.In(f.loc).Format("02.01.2006")
}

// DateTime renders t as "25.12.2024 14:30:05".
func (f *Formatter) DateTime(t time.Time) string {
	return t.In(f.loc).Format("02.01.2006 15:04:05")
}
