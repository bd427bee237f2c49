package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/internal/locations"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	apperrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox/payloads"
	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service coordinates user profile changes with location sync and outbox
// emission.
type Service struct {
	client    txRunner
	repo      *Repository
	locations *locations.Repository
	events    *outbox.Service
	logg      *logger.Logger
}

// NewService wires the user service dependencies.
func NewService(client *db.Client, repo *Repository, locs *locations.Repository, events *outbox.Service, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, locations: locs, events: events, logg: logg}
}

// Get returns the user profile with its last known position.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading user")
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}

	lat, lng := s.lookupPosition(ctx, id)
	resp := toResponse(user, lat, lng)
	return &resp, nil
}

// Create registers a user, records the reported position when present, and
// emits user_created, all in one transaction.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*UserResponse, error) {
	if _, exists, err := s.repo.GetByEmail(ctx, input.Email); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "checking email")
	} else if exists {
		return nil, apperrors.New(apperrors.CodeConflict, "email already registered")
	}

	user := &models.User{
		ID:    uuid.New(),
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, user); err != nil {
			return err
		}
		if input.Latitude != nil && input.Longitude != nil {
			point := types.GeographyPoint{Lat: *input.Latitude, Lng: *input.Longitude}
			if err := s.locations.UpsertUserLocationTx(tx, user.ID, point); err != nil {
				return err
			}
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventUserCreated,
			AggregateType: enums.AggregateUser,
			AggregateID:   user.ID,
			Version:       1,
			Data: payloads.UserUpsertedEvent{
				UserID:    user.ID,
				Email:     user.Email,
				Name:      user.Name,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			},
		})
	})
	if err != nil {
		if db.IsUniqueViolation(err, "ux_users_email") {
			return nil, apperrors.New(apperrors.CodeConflict, "email already registered")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating user")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user created")
	}
	resp := toResponse(user, input.Latitude, input.Longitude)
	return &resp, nil
}

// Update applies profile changes, syncs the position when coordinates are
// present, and emits user_updated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserResponse, error) {
	user, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading user")
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
		user.Name = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
		user.Phone = input.Phone
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, id, updates); err != nil {
			return err
		}
		if input.Latitude != nil && input.Longitude != nil {
			point := types.GeographyPoint{Lat: *input.Latitude, Lng: *input.Longitude}
			if err := s.locations.UpsertUserLocationTx(tx, id, point); err != nil {
				return err
			}
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventUserUpdated,
			AggregateType: enums.AggregateUser,
			AggregateID:   id,
			Version:       1,
			Data: payloads.UserUpsertedEvent{
				UserID:    id,
				Email:     user.Email,
				Name:      user.Name,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			},
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating user")
	}

	lat, lng := s.lookupPosition(ctx, id)
	resp := toResponse(user, lat, lng)
	return &resp, nil
}

// Delete removes the user, its position record, and emits user_deleted.
// Deleting a missing user reports not found.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	_, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "loading user")
	}
	if !found {
		return apperrors.New(apperrors.CodeNotFound, "user not found")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.locations.DeleteUserLocationTx(tx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventUserDeleted,
			AggregateType: enums.AggregateUser,
			AggregateID:   id,
			Version:       1,
			Data: payloads.UserDeletedEvent{
				UserID:    id,
				DeletedAt: time.Now().UTC(),
			},
		})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting user")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, id.String()), "user deleted")
	}
	return nil
}

func (s *Service) lookupPosition(ctx context.Context, id uuid.UUID) (*float64, *float64) {
	point, found, err := s.locations.GetUserPoint(ctx, id)
	if err != nil || !found {
		return nil, nil
	}
	return &point.Lat, &point.Lng
}
