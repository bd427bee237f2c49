package permissions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
	"github.com/jeanmnorhen/precoreal-backend/pkg/metrics"
)

// RoleStore resolves the role a user holds at a store.
type RoleStore interface {
	GetRole(ctx context.Context, userID, storeID uuid.UUID) (*models.UserStoreRole, bool, error)
}

// LocationIndex answers proximity queries between a user and a store.
type LocationIndex interface {
	WithinDistance(ctx context.Context, userID, storeID uuid.UUID, radiusMeters float64) (within bool, known bool, err error)
}

// Decision is the verdict of a permission check. Role is set only when an
// association was found.
type Decision struct {
	Allow  bool
	Role   enums.MemberRole
	Reason enums.DecisionReason
}

// Service evaluates whether a user may operate on a store right now.
type Service struct {
	roles     RoleStore
	locations LocationIndex
	cfg       config.PermissionsConfig
	logg      *logger.Logger
	metrics   *metrics.DecisionMetrics
}

// NewService wires the evaluator with its stores and policy config.
func NewService(roles RoleStore, locations LocationIndex, cfg config.PermissionsConfig, logg *logger.Logger, decisionMetrics *metrics.DecisionMetrics) *Service {
	if cfg.GeofenceRadiusMeters <= 0 {
		cfg.GeofenceRadiusMeters = 150
	}
	return &Service{
		roles:     roles,
		locations: locations,
		cfg:       cfg,
		logg:      logg,
		metrics:   decisionMetrics,
	}
}

// Check evaluates access for the user at the store at the provided instant.
// Owners pass unconditionally; employees must be inside one of their shift
// windows (UTC) and within the geofence. Every deny carries a reason, and
// storage failures deny with INTERNAL_ERROR alongside the error itself.
func (s *Service) Check(ctx context.Context, rawUserID, rawStoreID string, now time.Time) (Decision, error) {
	started := time.Now()
	decision, err := s.check(ctx, rawUserID, rawStoreID, now)
	s.record(decision, time.Since(started))
	return decision, err
}

func (s *Service) check(ctx context.Context, rawUserID, rawStoreID string, now time.Time) (Decision, error) {
	userID, storeID, ok := parseIDs(rawUserID, rawStoreID)
	if !ok {
		return Decision{Reason: enums.ReasonInvalidRequest}, nil
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	row, found, err := s.roles.GetRole(ctx, userID, storeID)
	if err != nil {
		s.logError(ctx, userID, storeID, "role lookup failed", err)
		return Decision{Reason: enums.ReasonInternalError}, err
	}
	if !found {
		return Decision{Reason: enums.ReasonNotAssociated}, nil
	}

	switch row.Role {
	case enums.MemberRoleOwner:
		// owners bypass shift and geofence checks entirely
		return Decision{Allow: true, Role: enums.MemberRoleOwner}, nil

	case enums.MemberRoleEmployee:
		if !withinShift(row.Shifts, now.UTC().Hour()) {
			return Decision{Role: row.Role, Reason: enums.ReasonOutsideShift}, nil
		}

		within, known, err := s.locations.WithinDistance(ctx, userID, storeID, s.cfg.GeofenceRadiusMeters)
		if err != nil {
			s.logError(ctx, userID, storeID, "proximity lookup failed", err)
			return Decision{Role: row.Role, Reason: enums.ReasonInternalError}, err
		}
		if !known {
			// fail closed when either position is unknown; the log keeps the
			// cause distinguishable from a real out-of-range deny
			s.logDeny(ctx, userID, storeID, "position unknown, denying outside geofence")
			return Decision{Role: row.Role, Reason: enums.ReasonOutsideGeofence}, nil
		}
		if !within {
			return Decision{Role: row.Role, Reason: enums.ReasonOutsideGeofence}, nil
		}
		return Decision{Allow: true, Role: enums.MemberRoleEmployee}, nil

	default:
		s.logDeny(ctx, userID, storeID, "unrecognized role in store")
		return Decision{Role: row.Role, Reason: enums.ReasonUnknownRole}, nil
	}
}

func (s *Service) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StorageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StorageTimeout)
}

func (s *Service) record(decision Decision, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDuration(string(decision.Role), elapsed)
	if decision.Allow {
		s.metrics.IncAllowed(string(decision.Role))
		return
	}
	s.metrics.IncDenied(string(decision.Reason))
}

func (s *Service) logError(ctx context.Context, userID, storeID uuid.UUID, msg string, err error) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithUserID(ctx, userID.String())
	logCtx = s.logg.WithStoreID(logCtx, storeID.String())
	s.logg.Error(logCtx, msg, err)
}

func (s *Service) logDeny(ctx context.Context, userID, storeID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithUserID(ctx, userID.String())
	logCtx = s.logg.WithStoreID(logCtx, storeID.String())
	s.logg.Warn(logCtx, msg)
}

func parseIDs(rawUserID, rawStoreID string) (uuid.UUID, uuid.UUID, bool) {
	rawUserID = strings.TrimSpace(rawUserID)
	rawStoreID = strings.TrimSpace(rawStoreID)
	if rawUserID == "" || rawStoreID == "" {
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	storeID, err := uuid.Parse(rawStoreID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, storeID, true
}

// withinShift reports whether the UTC hour falls inside any of the named
// windows. Unknown shift names are skipped rather than denying outright.
func withinShift(shifts []string, hour int) bool {
	for _, raw := range shifts {
		shift, err := enums.ParseShift(raw)
		if err != nil {
			continue
		}
		if window, ok := enums.ShiftWindows[shift]; ok && window.Contains(hour) {
			return true
		}
	}
	return false
}
