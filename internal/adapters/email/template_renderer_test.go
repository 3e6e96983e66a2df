package email

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordermail/internal/domain"
)

func orderCreatedContext() domain.TemplateContext {
	return domain.TemplateContext{
		"orderNumber":     "RUM-1",
		"status":          "Beklemede",
		"orderDate":       "25 Aralık 2024 14:30",
		"customerName":    "Ayşe <b>Yılmaz</b>",
		"customerEmail":   "ayse@example.com",
		"customerPhone":   "+90 555 000 00 00",
		"customerAddress": "Kadıköy, İstanbul",
		"customText":      "İyi ki doğdun!",
		"deliveryDate":    "",
		"items": []domain.TemplateContext{
			{"name": "Özel Kurabiye", "quantity": 12, "price": "25", "currency": "₺", "subtotal": "300"},
		},
		"subtotal":      "300",
		"shippingCost":  "0",
		"total":         "300",
		"currency":      "₺",
		"shippingText":  "Ücretsiz Kargo",
		"paymentMethod": "IBAN/Havale",
		"notes":         "",
	}
}

func TestTemplateRenderer_EmbeddedOrderCreated(t *testing.T) {
	r := NewTemplateRenderer()

	html, err := r.Render("orderCreated", orderCreatedContext())
	require.NoError(t, err)
	assert.Contains(t, html, "RUM-1")
	assert.Contains(t, html, "Özel Kurabiye")
	assert.Contains(t, html, "Ücretsiz Kargo")
	assert.Contains(t, html, "İyi ki doğdun!")
	assert.Contains(t, html, "Ayşe &lt;b&gt;Yılmaz&lt;/b&gt;", "context values are escaped")
	assert.NotContains(t, html, "Teslimat Tarihi", "empty delivery date is omitted")
}

func TestTemplateRenderer_EmbeddedOrderShipped(t *testing.T) {
	r := NewTemplateRenderer()
	ctx := orderCreatedContext()
	ctx["shippingDate"] = "26 Aralık 2024 09:00"
	ctx["trackingNumber"] = "TRK123"
	ctx["shippingCompany"] = "Test Kargo"
	ctx["trackingUrl"] = "https://kargo.example.com/TRK123"

	html, err := r.Render("orderShipped", ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "TRK123")
	assert.Contains(t, html, "Test Kargo")
	assert.Contains(t, html, `href="https://kargo.example.com/TRK123"`)
}

func TestTemplateRenderer_NotFound(t *testing.T) {
	r := NewTemplateRenderer()

	for _, name := range []string{"missing", "../orderCreated", ""} {
		_, err := r.Render(name, domain.TemplateContext{})
		require.ErrorIs(t, err, domain.ErrTemplateNotFound, "name %q", name)
	}
}

func TestTemplateRenderer_MissingFieldFails(t *testing.T) {
	store := fstest.MapFS{
		"greet.html": {Data: []byte(`<p>Hello {{.name}}</p>`)},
	}
	r := NewTemplateRendererFS(store)

	_, err := r.Render("greet", domain.TemplateContext{})
	require.ErrorIs(t, err, domain.ErrRenderFailed)

	html, err := r.Render("greet", domain.TemplateContext{"name": "Ali"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello Ali</p>", html)
}

func TestTemplateRenderer_ParseError(t *testing.T) {
	store := fstest.MapFS{
		"broken.html": {Data: []byte(`<p>{{.name</p>`)},
	}
	r := NewTemplateRendererFS(store)

	_, err := r.Render("broken", domain.TemplateContext{"name": "x"})
	require.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestTemplateRenderer_CachesParsedTemplate(t *testing.T) {
	store := fstest.MapFS{
		"greet.html": {Data: []byte(`v1 {{.name}}`)},
	}
	r := NewTemplateRendererFS(store)

	first, err := r.Render("greet", domain.TemplateContext{"name": "a"})
	require.NoError(t, err)
	store["greet.html"] = &fstest.MapFile{Data: []byte(`v2 {{.name}}`)}

	second, err := r.Render("greet", domain.TemplateContext{"name": "a"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "v1 a", second)
}

func TestTemplateRenderer_ConcurrentRender(t *testing.T) {
	r := NewTemplateRenderer()
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Render("orderCreated", orderCreatedContext())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
