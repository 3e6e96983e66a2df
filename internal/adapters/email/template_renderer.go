package email

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"sync"

	"ordermail/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer over a read-only template store.
// Parsed templates are cached; the store is assumed not to change while the process runs.
type templateRenderer struct {
	store fs.FS

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer that loads templates from the embedded templates folder.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	store, _ := fs.Sub(templateFS, "templates")
	return NewTemplateRendererFS(store)
}

// NewTemplateRendererFS returns an EmailTemplateRenderer reading "<name>.html" files from store.
func NewTemplateRendererFS(store fs.FS) domain.EmailTemplateRenderer {
	return &templateRenderer{
		store: store,
		cache: make(map[string]*template.Template),
	}
}

// Render executes the named template (e.g. "orderCreated") with data and returns the HTML.
// Every field the template references must be present in data.
func (r *templateRenderer) Render(templateName string, data domain.TemplateContext) (string, error) {
	t, err := r.lookup(templateName)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrRenderFailed, templateName, err)
	}
	return buf.String(), nil
}

func (r *templateRenderer) lookup(name string) (*template.Template, error) {
	r.mu.RLock()
	t, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[name]; ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.store, name+".html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	t, err = template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRenderFailed, name, err)
	}
	r.cache[name] = t
	return t, nil
}
