package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://betfinder.example.com"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.Header.Set("Origin", "https://betfinder.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://betfinder.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_OptionsPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/assistant/query", nil)
	req.Header.Set("Origin", "https://betfinder.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	handler := CORS([]string{" https://allowed.example.com ", ""}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
