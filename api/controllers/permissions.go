package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jeanmnorhen/precoreal-backend/api/responses"
	"github.com/jeanmnorhen/precoreal-backend/internal/permissions"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	pkgerrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
)

// PermissionChecker is the evaluator surface the controller depends on.
type PermissionChecker interface {
	Check(ctx context.Context, userID, storeID string, now time.Time) (permissions.Decision, error)
}

type decisionResponse struct {
	Allow  bool   `json:"allow"`
	Role   string `json:"role,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// PermissionsCheck answers whether user_id may operate on store_id right now.
// The verdict is a payload, not an error: denials come back 403 with a reason,
// malformed input 400, and storage trouble 503 so callers fail closed.
func PermissionsCheck(svc PermissionChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "permission evaluator unavailable"))
			return
		}

		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		storeID := strings.TrimSpace(r.URL.Query().Get("store_id"))

		decision, err := svc.Check(r.Context(), userID, storeID, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "permission check unavailable"))
			return
		}

		payload := decisionResponse{
			Allow:  decision.Allow,
			Role:   string(decision.Role),
			Reason: string(decision.Reason),
		}

		responses.WriteSuccessStatus(w, statusForDecision(decision), payload)
	}
}

func statusForDecision(decision permissions.Decision) int {
	if decision.Allow {
		return http.StatusOK
	}
	switch decision.Reason {
	case enums.ReasonInvalidRequest:
		return http.StatusBadRequest
	case enums.ReasonInternalError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusForbidden
	}
}
