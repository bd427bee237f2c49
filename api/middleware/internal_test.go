package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
)

func internalHandler(cfg config.InternalConfig) http.Handler {
	return InternalAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestInternalAuthAcceptsSecret(t *testing.T) {
	handler := internalHandler(config.InternalConfig{ServiceSecret: "svc-secret"})

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", nil)
	req.Header.Set("Authorization", "Bearer svc-secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
}

func TestInternalAuthRejectsWrongSecret(t *testing.T) {
	handler := internalHandler(config.InternalConfig{ServiceSecret: "svc-secret"})

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", nil)
	req.Header.Set("Authorization", "Bearer svc-secre")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestInternalAuthRejectsMissingHeader(t *testing.T) {
	handler := internalHandler(config.InternalConfig{ServiceSecret: "svc-secret"})

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestInternalAuthFailsClosedWithoutSecret(t *testing.T) {
	handler := internalHandler(config.InternalConfig{})

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
