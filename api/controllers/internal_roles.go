package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/api/responses"
	"github.com/jeanmnorhen/precoreal-backend/api/validators"
	"github.com/jeanmnorhen/precoreal-backend/internal/roles"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	pkgerrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
)

// RoleWriter is the slice of the roles service the internal channel uses.
type RoleWriter interface {
	AssignRole(ctx context.Context, input roles.AssignRoleInput) (*models.UserStoreRole, error)
	RevokeRole(ctx context.Context, userID, storeID uuid.UUID) error
}

type assignRoleRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	StoreID uuid.UUID `json:"storeId" validate:"required"`
	Role    string    `json:"role" validate:"required,oneof=owner employee"`
	Shifts  []string  `json:"shifts" validate:"omitempty,dive,oneof=madrugada manha tarde noite"`
}

type revokeRoleRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	StoreID uuid.UUID `json:"storeId" validate:"required"`
}

type roleResponse struct {
	UserID    uuid.UUID `json:"userId"`
	StoreID   uuid.UUID `json:"storeId"`
	Role      string    `json:"role"`
	Shifts    []string  `json:"shifts"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InternalAssignRole upserts a user/store association on behalf of a trusted
// service. Re-sending the same grant replaces the shift set wholesale.
func InternalAssignRole(svc RoleWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "role service unavailable"))
			return
		}

		var payload assignRoleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseMemberRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		row, err := svc.AssignRole(r.Context(), roles.AssignRoleInput{
			UserID:  payload.UserID,
			StoreID: payload.StoreID,
			Role:    role,
			Shifts:  payload.Shifts,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, roleResponse{
			UserID:    row.UserID,
			StoreID:   row.StoreID,
			Role:      string(row.Role),
			Shifts:    row.Shifts,
			UpdatedAt: row.UpdatedAt,
		})
	}
}

// InternalRevokeRole removes an association. Revoking a missing association
// still returns 204 so trusted callers can retry blindly.
func InternalRevokeRole(svc RoleWriter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "role service unavailable"))
			return
		}

		var payload revokeRoleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RevokeRole(r.Context(), payload.UserID, payload.StoreID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
