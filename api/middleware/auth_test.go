package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/jeanmnorhen/precoreal-backend/pkg/auth"
	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-signing-secret",
	Issuer:            "precoreal-test",
	ExpirationMinutes: 60,
}

func authHandler(t *testing.T, cfg config.JWTConfig) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, &seenUserID
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(testJWTConfig, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Email:  "ana@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler, seen := authHandler(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", rec.Code, rec.Body.String())
	}
	if *seen != userID.String() {
		t.Fatalf("expected user %s in context got %q", userID, *seen)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := authHandler(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	otherConfig := testJWTConfig
	otherConfig.Secret = "a-different-secret"
	token, err := pkgAuth.MintAccessToken(otherConfig, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler, _ := authHandler(t, testJWTConfig)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
