package core

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const expectedPlaceholder = `<h1>Boilerplate Ready</h1>
<p>Run <code>./integrate-flightphp-skeleton.sh</code> to install FlightPHP.</p>
<p>See <a href="https://docs.flightphp.com/en/v3/">FlightPHP Documentation</a>.</p>
`

func newDefaultPage(t *testing.T) *Page {
	t.Helper()
	p, err := NewPage(DefaultConfig().Page, RenderOptions{})
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	return p
}

func TestPage_RendersDefaultBody(t *testing.T) {
	p := newDefaultPage(t)

	if got := string(p.Bytes()); got != expectedPlaceholder {
		t.Errorf("unexpected body:\n%s\nwant:\n%s", got, expectedPlaceholder)
	}
}

func TestPage_AnyMethodAnyPath(t *testing.T) {
	p := newDefaultPage(t)

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	paths := []string{"/", "/index.php", "/deeply/nested/path", "/?q=1", "/static/app.css"}

	for _, method := range methods {
		for _, path := range paths {
			t.Run(method+" "+path, func(t *testing.T) {
				req := httptest.NewRequest(method, path, strings.NewReader("ignored"))
				req.Header.Set("Accept", "application/json")
				rec := httptest.NewRecorder()

				p.ServeHTTP(rec, req)

				resp := rec.Result()
				if resp.StatusCode != http.StatusOK {
					t.Fatalf("expected 200, got %d", resp.StatusCode)
				}
				if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
					t.Errorf("unexpected content-type: %s", ct)
				}
				body, _ := io.ReadAll(resp.Body)
				if string(body) != expectedPlaceholder {
					t.Errorf("unexpected body: %s", body)
				}
			})
		}
	}
}

func TestPage_HeadHasNoBody(t *testing.T) {
	p := newDefaultPage(t)

	server := httptest.NewServer(p)
	defer server.Close()

	resp, err := http.Head(server.URL + "/anything")
	if err != nil {
		t.Fatalf("HEAD failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("expected empty HEAD body, got %q", body)
	}
}

func TestPage_ContainsRequiredSubstrings(t *testing.T) {
	body := string(newDefaultPage(t).Bytes())

	for _, want := range []string{
		"Boilerplate Ready",
		"<code>./integrate-flightphp-skeleton.sh</code>",
		`href="https://docs.flightphp.com/en/v3/"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestPage_IdempotentAcrossConcurrentRequests(t *testing.T) {
	p := newDefaultPage(t)

	var wg sync.WaitGroup
	bodies := make([][]byte, 32)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			bodies[i] = rec.Body.Bytes()
		}(i)
	}
	wg.Wait()

	for i, b := range bodies {
		if !bytes.Equal(b, bodies[0]) {
			t.Fatalf("response %d differs from response 0", i)
		}
	}
}

func TestPage_CustomFrameworkAndDerivedDocsTitle(t *testing.T) {
	cfg := PageConfig{
		Heading:   "Boilerplate Ready",
		Command:   "./integrate-slim-skeleton.sh",
		Framework: " Slim ",
		DocsURL:   "https://www.slimframework.com/docs/v4/",
	}
	p, err := NewPage(cfg, RenderOptions{})
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	body := string(p.Bytes())
	if !strings.Contains(body, "to install Slim.</p>") {
		t.Errorf("expected trimmed framework name, got %s", body)
	}
	if !strings.Contains(body, ">Slim Documentation</a>") {
		t.Errorf("expected derived docs title, got %s", body)
	}
}

func TestPage_EscapesConfiguredText(t *testing.T) {
	cfg := DefaultConfig().Page
	cfg.Heading = "<script>alert(1)</script>"

	p, err := NewPage(cfg, RenderOptions{})
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	if strings.Contains(string(p.Bytes()), "<script>") {
		t.Errorf("expected heading to be escaped, got %s", p.Bytes())
	}
}

func TestPage_ReloadScriptTag(t *testing.T) {
	p, err := NewPage(DefaultConfig().Page, RenderOptions{ReloadScript: true})
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}

	want := expectedPlaceholder + `<script src="` + ReloadScriptPath + `"></script>` + "\n"
	if got := string(p.Bytes()); got != want {
		t.Errorf("unexpected body:\n%s\nwant:\n%s", got, want)
	}
}

func TestPage_ReloadSwapsBodyAndKeepsOldOnError(t *testing.T) {
	p := newDefaultPage(t)

	cfg := DefaultConfig().Page
	cfg.Framework = "Laravel"
	if err := p.Reload(cfg); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !strings.Contains(string(p.Bytes()), "to install Laravel.") {
		t.Errorf("expected reloaded body, got %s", p.Bytes())
	}

	cfg.Command = ""
	if err := p.Reload(cfg); !IsInvalidPageError(err) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if !strings.Contains(string(p.Bytes()), "to install Laravel.") {
		t.Errorf("expected previous body to be kept, got %s", p.Bytes())
	}
}

func TestPage_ConcurrentReloadNeverMixesBodies(t *testing.T) {
	p := newDefaultPage(t)

	slim := DefaultConfig().Page
	slim.Framework = "Slim"
	slim.Command = "./integrate-slim-skeleton.sh"
	slim.DocsURL = "https://www.slimframework.com/docs/v4/"

	slimBody, err := RenderPage(slim, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	valid := map[string]bool{expectedPlaceholder: true, string(slimBody): true}

	stop := make(chan struct{})
	var reloads sync.WaitGroup
	reloads.Add(1)
	go func() {
		defer reloads.Done()
		configs := []PageConfig{slim, DefaultConfig().Page}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if err := p.Reload(configs[i%2]); err != nil {
				t.Errorf("Reload failed: %v", err)
				return
			}
		}
	}()

	var readers sync.WaitGroup
	for i := 0; i < 8; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for j := 0; j < 200; j++ {
				rec := httptest.NewRecorder()
				p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				if body := rec.Body.String(); !valid[body] {
					t.Errorf("served a body matching neither render:\n%s", body)
					return
				}
				if rec.Header().Get("Content-Length") != fmt.Sprint(rec.Body.Len()) {
					t.Errorf("content-length %s does not match body length %d", rec.Header().Get("Content-Length"), rec.Body.Len())
					return
				}
			}
		}()
	}

	readers.Wait()
	close(stop)
	reloads.Wait()
}

func TestPage_BytesReturnsCopy(t *testing.T) {
	p := newDefaultPage(t)

	b := p.Bytes()
	b[0] = 'X'

	if string(p.Bytes()) != expectedPlaceholder {
		t.Error("mutating Bytes() result changed the served body")
	}
}

func TestValidatePage(t *testing.T) {
	base := DefaultConfig().Page

	tests := map[string]func(c *PageConfig){
		"empty heading":   func(c *PageConfig) { c.Heading = "  " },
		"empty command":   func(c *PageConfig) { c.Command = "" },
		"empty framework": func(c *PageConfig) { c.Framework = "" },
		"relative docs":   func(c *PageConfig) { c.DocsURL = "/docs" },
		"ftp docs":        func(c *PageConfig) { c.DocsURL = "ftp://docs.example.com/" },
		"broken docs":     func(c *PageConfig) { c.DocsURL = "http://[::1" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			if err := ValidatePage(cfg); !IsInvalidPageError(err) {
				t.Errorf("expected ErrInvalidPage, got %v", err)
			}
		})
	}

	if err := ValidatePage(base); err != nil {
		t.Errorf("expected default page to validate, got %v", err)
	}
}
