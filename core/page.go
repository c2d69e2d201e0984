package core

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/placeholder.html
var templateFS embed.FS

var placeholderTemplate = template.Must(
	template.New("placeholder.html").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/placeholder.html"),
)

const ContentTypeHTML = "text/html; charset=utf-8"

type RenderOptions struct {
	// ReloadScript appends the live reload client tag. Dev only.
	ReloadScript bool
}

// Page is the placeholder entry point. The body is rendered once and every
// request receives the same bytes, whatever its method, path or headers.
type Page struct {
	opts RenderOptions
	body atomic.Pointer[[]byte]
}

func NewPage(cfg PageConfig, opts RenderOptions) (*Page, error) {
	p := &Page{opts: opts}
	if err := p.Reload(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-renders the body from cfg and swaps it in. On error the
// previous body keeps being served.
func (p *Page) Reload(cfg PageConfig) error {
	body, err := RenderPage(cfg, p.opts)
	if err != nil {
		return err
	}
	p.body.Store(&body)
	return nil
}

func (p *Page) Bytes() []byte {
	return bytes.Clone(*p.body.Load())
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := *p.body.Load()

	w.Header().Set("Content-Type", ContentTypeHTML)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func RenderPage(cfg PageConfig, opts RenderOptions) ([]byte, error) {
	if err := ValidatePage(cfg); err != nil {
		return nil, err
	}

	data := struct {
		PageConfig
		ReloadScript     bool
		ReloadScriptPath string
	}{
		PageConfig:       cfg,
		ReloadScript:     opts.ReloadScript,
		ReloadScriptPath: ReloadScriptPath,
	}

	var buf bytes.Buffer
	if err := placeholderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

func ValidatePage(cfg PageConfig) error {
	if strings.TrimSpace(cfg.Heading) == "" {
		return fmt.Errorf("page.heading is empty: %w", ErrInvalidPage)
	}
	if strings.TrimSpace(cfg.Command) == "" {
		return fmt.Errorf("page.command is empty: %w", ErrInvalidPage)
	}
	if strings.TrimSpace(cfg.Framework) == "" {
		return fmt.Errorf("page.framework is empty: %w", ErrInvalidPage)
	}

	u, err := url.Parse(strings.TrimSpace(cfg.DocsURL))
	if err != nil {
		return fmt.Errorf("page.docsURL: %v: %w", err, ErrInvalidPage)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("page.docsURL %q is not an absolute http(s) URL: %w", cfg.DocsURL, ErrInvalidPage)
	}
	return nil
}
