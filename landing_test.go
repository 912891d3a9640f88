package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestModuleServesConfigLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	module, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	server := httptest.NewServer(module.Handler())
	t.Cleanup(server.Close)

	client := server.Client()

	// First read seeds the default document for the site.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/config", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Host = "example.com"
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /config error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /config status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Publish replaces it.
	body := `{"config":{"meta":{"title":"Published"}}}`
	post, err := http.NewRequest(http.MethodPost, server.URL+"/publish", strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	post.Host = "example.com"
	resp, err = client.Do(post)
	if err != nil {
		t.Fatalf("POST /publish error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /publish status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	stored, err := module.Gateway().Get(context.Background(), "config:example.com")
	if err != nil {
		t.Fatalf("Gateway().Get() error = %v", err)
	}
	if !strings.Contains(string(stored), "Published") {
		t.Fatalf("stored document = %s, want published payload", stored)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "postgres"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("New() accepted unknown storage driver")
	}
}

func TestValidateFacade(t *testing.T) {
	if _, err := Validate([]byte(`{`)); err == nil {
		t.Fatal("Validate() accepted malformed JSON")
	}
	if _, err := ValidateSection([]byte(`{"id":"x","type":"nope","content":{},"settings":{}}`)); err == nil {
		t.Fatal("ValidateSection() accepted unknown type")
	}
}
