package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/infrastructure/api"
)

func newTestClient(t *testing.T, opts ...chickenrescue.Option) *chickenrescue.Client {
	t.Helper()
	client, err := chickenrescue.New(opts...)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestAPIServer_HealthAndMetrics(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t), api.WithVersion("1.2.3")).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d", w.Code)
	}
	var health map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" || health["version"] != "1.2.3" {
		t.Errorf("health = %v", health)
	}

	// Solve once so the solver histograms have samples.
	solve := httptest.NewRequest(http.MethodPost, "/api/v1/rescue", strings.NewReader(`{"roof_length": 5, "positions": [2,5,10,12,15]}`))
	handler.ServeHTTP(httptest.NewRecorder(), solve)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", w.Code)
	}
	for _, metric := range []string{"chickenrescue_solve_duration_seconds", "chickenrescue_http_requests_total"} {
		if !strings.Contains(w.Body.String(), metric) {
			t.Errorf("metrics missing %s", metric)
		}
	}
}

func TestAPIServer_WriteEndpointsProtected(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t), api.WithAPIKeys([]string{"test-secret-key"})).Handler()
	body := `{"roof_length": 5, "positions": [2,5,10,12,15]}`

	t.Run("GET /healthz without key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("POST /api/v1/rescue without key returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rescue", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusUnauthorized, w.Body.String())
		}
	})

	t.Run("POST /api/v1/rescue with valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rescue", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-KEY", "test-secret-key")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"max_protected":2`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}

func TestAPIServer_BossEndpoint(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t)).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/boss", strings.NewReader(`{"actions": "SSRR"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"verdict":"Good boy"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
