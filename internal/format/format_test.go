package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"pending", "Beklemede"},
		{"confirmed", "Onaylandı"},
		{"preparing", "Hazırlanıyor"},
		{"shipped", "Kargoya Verildi"},
		{"delivered", "Teslim Edildi"},
		{"cancelled", "İptal Edildi"},
		{"refunded", "refunded"},
		{"PENDING", "PENDING"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusText(tt.code))
		})
	}
}

func TestPaymentMethodText(t *testing.T) {
	assert.Equal(t, "IBAN/Havale", PaymentMethodText("iban"))
	assert.Equal(t, "Kredi Kartı (PayTR)", PaymentMethodText("paytr"))
	assert.Equal(t, "cash", PaymentMethodText("cash"))
	assert.Equal(t, "", PaymentMethodText(""))
}

func TestShippingCostText(t *testing.T) {
	assert.Equal(t, FreeShippingLabel, ShippingCostText(0, "₺"))
	assert.Equal(t, "25₺", ShippingCostText(25, "₺"))
	assert.Equal(t, "25.5₺", ShippingCostText(25.5, "₺"))
	assert.Equal(t, "12$", ShippingCostText(12, "$"))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "0", Amount(0))
	assert.Equal(t, "505", Amount(505))
	assert.Equal(t, "19.99", Amount(19.99))
	assert.Equal(t, "-3", Amount(-3))
}

func TestParseTimestamp(t *testing.T) {
	ist := time.FixedZone("TRT", 3*60*60)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339 utc", in: "2024-12-25T11:30:00Z", want: time.Date(2024, 12, 25, 11, 30, 0, 0, time.UTC)},
		{name: "rfc3339 millis", in: "2024-12-25T11:30:00.123Z", want: time.Date(2024, 12, 25, 11, 30, 0, 123000000, time.UTC)},
		{name: "rfc3339 offset", in: "2024-12-25T14:30:00+03:00", want: time.Date(2024, 12, 25, 11, 30, 0, 0, time.UTC)},
		{name: "local datetime", in: "2024-12-25T14:30:00", want: time.Date(2024, 12, 25, 14, 30, 0, 0, ist)},
		{name: "date only", in: "2024-12-25", want: time.Date(2024, 12, 25, 0, 0, 0, 0, ist)},
		{name: "padded", in: " 2024-12-25 ", want: time.Date(2024, 12, 25, 0, 0, 0, 0, ist)},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "yesterday", wantErr: true},
		{name: "bad month", in: "2024-13-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in, ist)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestFormatter(t *testing.T) {
	f := New(time.FixedZone("TRT", 3*60*60))
	ts := time.Date(2024, 12, 25, 11, 5, 9, 0, time.UTC)

	assert.Equal(t, "25 Aralık 2024 14:05", f.LongDateTime(ts))
	assert.Equal(t, "25.12.2024", f.ShortDate(ts))
	assert.Equal(t, "25.12.2024 14:05:09", f.DateTime(ts))
	assert.Equal(t, "1 Ocak 2025 02:59", f.LongDateTime(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestNewNilLocationIsUTC(t *testing.T) {
	f := New(nil)
	assert.Equal(t, time.UTC, f.Location())
	assert.Equal(t, "7 Mayıs 2025 09:00", f.LongDateTime(time.Date(2025, 5, 7, 9, 0, 0, 0, time.UTC)))
}
