package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReloadScript_IsMinifiedAndPointsAtSocket(t *testing.T) {
	script := string(ReloadScript())

	if !strings.Contains(script, ReloadSocketPath) {
		t.Errorf("expected script to reference %s, got %s", ReloadSocketPath, script)
	}
	if strings.Contains(script, "\n\t") {
		t.Errorf("expected minified script, got %q", script)
	}
	if len(script) >= len(reloadClientSource) {
		t.Errorf("expected minified script to be shorter than source")
	}
}

func TestReloadScript_Stable(t *testing.T) {
	if string(ReloadScript()) != string(ReloadScript()) {
		t.Error("expected identical script across calls")
	}
}

func TestReloadScriptHandler_ServesScript(t *testing.T) {
	rec := httptest.NewRecorder()
	ReloadScriptHandler(rec, httptest.NewRequest(http.MethodGet, ReloadScriptPath, nil))

	resp := rec.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("unexpected content-type: %s", ct)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Errorf("unexpected cache-control: %s", cc)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("expected ETag header")
	}
	if rec.Body.String() != string(ReloadScript()) {
		t.Error("unexpected script body")
	}
}

func TestReloadScriptHandler_NotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	ReloadScriptHandler(rec, httptest.NewRequest(http.MethodGet, ReloadScriptPath, nil))
	etag := rec.Result().Header.Get("ETag")

	req := httptest.NewRequest(http.MethodGet, ReloadScriptPath, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	ReloadScriptHandler(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("expected 304, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}
