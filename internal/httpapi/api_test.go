package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-landing/internal/gateway"
	"github.com/goliatone/go-landing/internal/schema"
	"github.com/goliatone/go-landing/internal/seeding"
)

func newTestAPI(t *testing.T, opts ...Option) (*API, gateway.Gateway) {
	t.Helper()

	gw := gateway.NewMemory()
	api := New(gw, seeding.New(gw, nil), opts...)
	return api, gw
}

func TestGetSeedsOnFirstRead(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Fatalf("Cache-Control = %q, want no-store", cc)
	}
	if p := rec.Header().Get("Pragma"); p != "no-cache" {
		t.Fatalf("Pragma = %q, want no-cache", p)
	}

	if _, err := schema.Validate(rec.Body.Bytes()); err != nil {
		t.Fatalf("seeded response failed validation: %v", err)
	}
}

func TestGetReturnsStoredDocument(t *testing.T) {
	api, gw := newTestAPI(t)

	doc := json.RawMessage(`{"meta":{"title":"Stored"}}`)
	if err := gw.Set(context.Background(), "config:example.com", doc); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	req.Host = "example.com:8080"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != string(doc) {
		t.Fatalf("body = %s, want %s", got, doc)
	}
}

func TestGetKeysByHost(t *testing.T) {
	api, gw := newTestAPI(t)

	first := json.RawMessage(`{"meta":{"title":"First"}}`)
	second := json.RawMessage(`{"meta":{"title":"Second"}}`)
	ctx := context.Background()
	if err := gw.Set(ctx, "config:one.example.com", first); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := gw.Set(ctx, "config:two.example.com", second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	for host, want := range map[string]json.RawMessage{
		"one.example.com": first,
		"TWO.example.com": second,
	} {
		req := httptest.NewRequest(http.MethodGet, "/config", nil)
		req.Host = host
		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, req)

		if got := strings.TrimSpace(rec.Body.String()); got != string(want) {
			t.Fatalf("host %q body = %s, want %s", host, got, want)
		}
	}
}

func TestPostAcceptsWrappedDocument(t *testing.T) {
	api, gw := newTestAPI(t)

	body := `{"config":{"meta":{"title":"Wrapped"}}}`
	req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(body))
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var resp successResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("response success = false, want true")
	}

	stored, err := gw.Get(context.Background(), "config:example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(stored) != `{"meta":{"title":"Wrapped"}}` {
		t.Fatalf("stored = %s", stored)
	}
}

func TestPostAcceptsBareDocument(t *testing.T) {
	api, gw := newTestAPI(t)

	body := `{"meta":{"title":"Bare"}}`
	req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(body))
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	stored, err := gw.Get(context.Background(), "config:example.com")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(stored) != body {
		t.Fatalf("stored = %s, want %s", stored, body)
	}
}

func TestPostRejectsEmptyBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"empty object", `{}`},
		{"empty wrapped object", `{"config":{}}`},
		{"non-object document", `[1,2,3]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api, gw := newTestAPI(t)

			req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(tc.body))
			req.Host = "example.com"
			rec := httptest.NewRecorder()
			api.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error == "" {
				t.Fatal("error field empty in rejection response")
			}

			if _, err := gw.Get(context.Background(), "config:example.com"); !errors.Is(err, gateway.ErrNotFound) {
				t.Fatalf("rejected publish reached the gateway: err = %v", err)
			}
		})
	}
}

func TestPostAliasesBehaveIdentically(t *testing.T) {
	for _, path := range []string{"/config", "/publish", "/storage"} {
		api, gw := newTestAPI(t)

		body := `{"meta":{"title":"Alias"}}`
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Host = "example.com"
		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		if _, err := gw.Get(context.Background(), "config:example.com"); err != nil {
			t.Fatalf("POST %s did not persist: %v", path, err)
		}
	}
}

func TestPostFailedWriteReports500(t *testing.T) {
	gw := &failingGateway{}
	api := New(gw, seeding.New(gw, nil))

	req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"meta":{}}`))
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatal("failed write reported success")
	}
}

func TestPostMirrorsForLocalhost(t *testing.T) {
	dir := t.TempDir()
	api, _ := newTestAPI(t, WithMirrorDir(dir))

	body := `{"meta":{"title":"Local"}}`
	req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(body))
	req.Host = "localhost:3000"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	mirrored, err := os.ReadFile(filepath.Join(dir, "localhost.json"))
	if err != nil {
		t.Fatalf("read mirror: %v", err)
	}
	if string(mirrored) != body {
		t.Fatalf("mirror = %s, want %s", mirrored, body)
	}
}

func TestPostSkipsMirrorForRemoteHost(t *testing.T) {
	dir := t.TempDir()
	api, _ := newTestAPI(t, WithMirrorDir(dir))

	req := httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"meta":{}}`))
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if _, err := os.Stat(filepath.Join(dir, "example.com.json")); !os.IsNotExist(err) {
		t.Fatalf("mirror written for remote host: %v", err)
	}
}

func TestHealth(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" || resp["backend"] != gateway.BackendMemory {
		t.Fatalf("health = %v", resp)
	}
}

type failingGateway struct{}

func (f *failingGateway) Get(context.Context, string) (json.RawMessage, error) {
	return nil, gateway.ErrNotFound
}

func (f *failingGateway) Set(context.Context, string, json.RawMessage) error {
	return context.DeadlineExceeded
}

func (f *failingGateway) EnsureSchema(context.Context) error { return nil }

func (f *failingGateway) Name() string { return "failing" }
