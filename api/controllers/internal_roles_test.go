package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jeanmnorhen/precoreal-backend/internal/roles"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
)

type stubRoleWriter struct {
	assignInput *roles.AssignRoleInput
	assignErr   error

	revokedUser  uuid.UUID
	revokedStore uuid.UUID
	revokeErr    error
}

func (s *stubRoleWriter) AssignRole(_ context.Context, input roles.AssignRoleInput) (*models.UserStoreRole, error) {
	s.assignInput = &input
	if s.assignErr != nil {
		return nil, s.assignErr
	}
	return &models.UserStoreRole{
		UserID:    input.UserID,
		StoreID:   input.StoreID,
		Role:      input.Role,
		Shifts:    pq.StringArray(input.Shifts),
		UpdatedAt: time.Now(),
	}, nil
}

func (s *stubRoleWriter) RevokeRole(_ context.Context, userID, storeID uuid.UUID) error {
	s.revokedUser = userID
	s.revokedStore = storeID
	return s.revokeErr
}

func TestInternalAssignRoleCreates(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()
	body, _ := json.Marshal(map[string]any{
		"userId":  userID,
		"storeId": storeID,
		"role":    "employee",
		"shifts":  []string{"manha", "tarde"},
	})
	svc := &stubRoleWriter{}
	handler := InternalAssignRole(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.assignInput == nil {
		t.Fatal("expected assign call")
	}
	if svc.assignInput.Role != "employee" {
		t.Fatalf("expected employee role got %q", svc.assignInput.Role)
	}
	var envelope struct {
		Data roleResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, envelope.Data.UserID)
	}
	if len(envelope.Data.Shifts) != 2 {
		t.Fatalf("expected 2 shifts got %v", envelope.Data.Shifts)
	}
}

func TestInternalAssignRoleRejectsUnknownRole(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"userId":  uuid.New(),
		"storeId": uuid.New(),
		"role":    "gerente",
	})
	svc := &stubRoleWriter{}
	handler := InternalAssignRole(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.assignInput != nil {
		t.Fatal("expected no assign call for invalid role")
	}
}

func TestInternalAssignRoleRejectsUnknownShift(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"userId":  uuid.New(),
		"storeId": uuid.New(),
		"role":    "employee",
		"shifts":  []string{"midnight"},
	})
	handler := InternalAssignRole(&stubRoleWriter{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/internal/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInternalRevokeRole(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()
	body, _ := json.Marshal(map[string]any{"userId": userID, "storeId": storeID})
	svc := &stubRoleWriter{}
	handler := InternalRevokeRole(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/internal/v1/roles", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if svc.revokedUser != userID || svc.revokedStore != storeID {
		t.Fatal("expected revoke forwarded with ids")
	}
}
