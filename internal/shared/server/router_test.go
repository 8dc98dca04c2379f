package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devboard-backend/internal/shared/config"
)

func TestRouterHealthIsPublic(t *testing.T) {
	r := NewRouter(Deps{Config: config.Config{Env: "dev"}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok":true`) {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestRouterMetricsIsPublic(t *testing.T) {
	r := NewRouter(Deps{Config: config.Config{Env: "dev"}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "analyze_requests_total") {
		t.Errorf("metrics body missing counters: %s", resp.Body)
	}
}

func TestRouterRequiresIdentityElsewhere(t *testing.T) {
	r := NewRouter(Deps{Config: config.Config{Env: "dev"}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without identity", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":9000": ":9000",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Errorf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
