package roles

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	apperrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service coordinates role grants and revocations with outbox emission.
type Service struct {
	client txRunner
	repo   *Repository
	events *outbox.Service
	logg   *logger.Logger
}

// NewService wires the role service dependencies.
func NewService(client *db.Client, repo *Repository, events *outbox.Service, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, events: events, logg: logg}
}

// GetRole resolves the role a user holds at a store.
func (s *Service) GetRole(ctx context.Context, userID, storeID uuid.UUID) (*models.UserStoreRole, bool, error) {
	return s.repo.GetRole(ctx, userID, storeID)
}

// ListStoreEmployees returns the employee roster for a store.
func (s *Service) ListStoreEmployees(ctx context.Context, storeID uuid.UUID) ([]StoreEmployee, error) {
	return s.repo.ListStoreEmployees(ctx, storeID)
}

// AssignRole upserts the role row and records a role_assigned event in the
// same transaction. Repeating the call with the same input is a no-op apart
// from the updated shifts.
func (s *Service) AssignRole(ctx context.Context, input AssignRoleInput) (*models.UserStoreRole, error) {
	if !input.Role.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid role %q", input.Role))
	}
	for _, shift := range input.Shifts {
		if _, err := enums.ParseShift(shift); err != nil {
			return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid shift %q", shift))
		}
	}

	var row *models.UserStoreRole
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		upserted, err := s.repo.UpsertTx(tx, input)
		if err != nil {
			return err
		}
		row = upserted

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventRoleAssigned,
			AggregateType: enums.AggregateRole,
			AggregateID:   input.UserID,
			Version:       1,
			Data: payloads.RoleChangedEvent{
				UserID:  input.UserID,
				StoreID: input.StoreID,
				Role:    input.Role,
				Shifts:  input.Shifts,
			},
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "assigning role")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":  input.UserID.String(),
			"store_id": input.StoreID.String(),
			"role":     input.Role,
		})
		s.logg.Info(logCtx, "role assigned")
	}
	return row, nil
}

// RevokeRole removes the role row if present and records a role_revoked event.
// Revoking a missing role succeeds without emitting anything.
func (s *Service) RevokeRole(ctx context.Context, userID, storeID uuid.UUID) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		_, found, err := s.repo.GetRoleTx(tx, userID, storeID)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if err := s.repo.DeleteTx(tx, userID, storeID); err != nil {
			return err
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventRoleRevoked,
			AggregateType: enums.AggregateRole,
			AggregateID:   userID,
			Version:       1,
			Data: payloads.RoleChangedEvent{
				UserID:  userID,
				StoreID: storeID,
			},
		})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "revoking role")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":  userID.String(),
			"store_id": storeID.String(),
		})
		s.logg.Info(logCtx, "role revoked")
	}
	return nil
}
