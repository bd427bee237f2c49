package stores

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/internal/locations"
	"github.com/jeanmnorhen/precoreal-backend/internal/roles"
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

// Service coordinates store lifecycle and the employee roster. Creating a
// store grants the creator the owner role in the same transaction.
type Service struct {
	client    txRunner
	repo      *Repository
	roles     *roles.Repository
	locations *locations.Repository
	events    *outbox.Service
	logg      *logger.Logger
}

// NewService wires the store service dependencies.
func NewService(client *db.Client, repo *Repository, roleRepo *roles.Repository, locs *locations.Repository, events *outbox.Service, logg *logger.Logger) *Service {
	return &Service{client: client, repo: repo, roles: roleRepo, locations: locs, events: events, logg: logg}
}

// Get returns the store with its registered position.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading store")
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "store not found")
	}

	lat, lng := s.lookupPosition(ctx, id)
	resp := toResponse(store, lat, lng)
	return &resp, nil
}

// ListByOwner returns the stores owned by the user.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreResponse, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing stores")
	}
	out := make([]StoreResponse, 0, len(rows))
	for i := range rows {
		lat, lng := s.lookupPosition(ctx, rows[i].ID)
		out = append(out, toResponse(&rows[i], lat, lng))
	}
	return out, nil
}

// Create registers the store, records its position, grants the creator the
// owner role, and emits store_created, all in one transaction.
func (s *Service) Create(ctx context.Context, input CreateStoreInput) (*StoreResponse, error) {
	store := &models.Store{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Category:    input.Category,
		OwnerID:     input.OwnerID,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, store); err != nil {
			return err
		}
		if input.Latitude != nil && input.Longitude != nil {
			point := types.GeographyPoint{Lat: *input.Latitude, Lng: *input.Longitude}
			if err := s.locations.UpsertStoreLocationTx(tx, store.ID, point); err != nil {
				return err
			}
		}
		if _, err := s.roles.UpsertTx(tx, roles.AssignRoleInput{
			UserID:  input.OwnerID,
			StoreID: store.ID,
			Role:    enums.MemberRoleOwner,
		}); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventStoreCreated,
			AggregateType: enums.AggregateStore,
			AggregateID:   store.ID,
			Version:       1,
			Data: payloads.StoreUpsertedEvent{
				StoreID:   store.ID,
				OwnerID:   store.OwnerID,
				Name:      store.Name,
				Category:  derefOrEmpty(store.Category),
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			},
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating store")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithStoreID(ctx, store.ID.String()), "store created")
	}
	resp := toResponse(store, input.Latitude, input.Longitude)
	return &resp, nil
}

// Update applies store changes on behalf of the owner and emits store_updated.
func (s *Service) Update(ctx context.Context, actorID, storeID uuid.UUID, input UpdateStoreInput) (*StoreResponse, error) {
	store, err := s.requireOwner(ctx, actorID, storeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
		store.Name = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		store.Description = input.Description
	}
	if input.Address != nil {
		updates["address"] = *input.Address
		store.Address = input.Address
	}
	if input.Category != nil {
		updates["category"] = *input.Category
		store.Category = input.Category
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, storeID, updates); err != nil {
			return err
		}
		if input.Latitude != nil && input.Longitude != nil {
			point := types.GeographyPoint{Lat: *input.Latitude, Lng: *input.Longitude}
			if err := s.locations.UpsertStoreLocationTx(tx, storeID, point); err != nil {
				return err
			}
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventStoreUpdated,
			AggregateType: enums.AggregateStore,
			AggregateID:   storeID,
			Version:       1,
			Data: payloads.StoreUpsertedEvent{
				StoreID:   storeID,
				OwnerID:   store.OwnerID,
				Name:      store.Name,
				Category:  derefOrEmpty(store.Category),
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			},
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating store")
	}

	lat, lng := s.lookupPosition(ctx, storeID)
	resp := toResponse(store, lat, lng)
	return &resp, nil
}

// Delete removes the store on behalf of the owner and emits store_deleted.
// Role rows and the position record go with it.
func (s *Service) Delete(ctx context.Context, actorID, storeID uuid.UUID) error {
	if _, err := s.requireOwner(ctx, actorID, storeID); err != nil {
		return err
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.locations.DeleteStoreLocationTx(tx, storeID); err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", storeID).Delete(&models.UserStoreRole{}).Error; err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, storeID); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventStoreDeleted,
			AggregateType: enums.AggregateStore,
			AggregateID:   storeID,
			Version:       1,
			Data: payloads.StoreDeletedEvent{
				StoreID:   storeID,
				DeletedAt: time.Now().UTC(),
			},
		})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "deleting store")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithStoreID(ctx, storeID.String()), "store deleted")
	}
	return nil
}

// AddEmployee grants the employee role at the store. Only the owner may manage
// the roster; re-adding an existing employee replaces the shifts.
func (s *Service) AddEmployee(ctx context.Context, actorID, storeID uuid.UUID, input AddEmployeeInput) error {
	if _, err := s.requireOwner(ctx, actorID, storeID); err != nil {
		return err
	}
	for _, shift := range input.Shifts {
		if _, err := enums.ParseShift(shift); err != nil {
			return apperrors.New(apperrors.CodeValidation, "invalid shift "+shift)
		}
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.roles.UpsertTx(tx, roles.AssignRoleInput{
			UserID:  input.UserID,
			StoreID: storeID,
			Role:    enums.MemberRoleEmployee,
			Shifts:  input.Shifts,
		}); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventEmployeeAdded,
			AggregateType: enums.AggregateRole,
			AggregateID:   input.UserID,
			Version:       1,
			Data: payloads.EmployeeChangedEvent{
				UserID:  input.UserID,
				StoreID: storeID,
				OwnerID: actorID,
				Shifts:  input.Shifts,
			},
		})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "adding employee")
	}
	return nil
}

// ListEmployees returns the roster. Only the owner may read it.
func (s *Service) ListEmployees(ctx context.Context, actorID, storeID uuid.UUID) ([]roles.StoreEmployee, error) {
	if _, err := s.requireOwner(ctx, actorID, storeID); err != nil {
		return nil, err
	}
	employees, err := s.roles.ListStoreEmployees(ctx, storeID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing employees")
	}
	return employees, nil
}

// RemoveEmployee revokes the employee role. Removing someone who is not on
// the roster reports not found.
func (s *Service) RemoveEmployee(ctx context.Context, actorID, storeID, userID uuid.UUID) error {
	if _, err := s.requireOwner(ctx, actorID, storeID); err != nil {
		return err
	}

	row, found, err := s.roles.GetRole(ctx, userID, storeID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "loading role")
	}
	if !found || row.Role != enums.MemberRoleEmployee {
		return apperrors.New(apperrors.CodeNotFound, "employee not found")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.roles.DeleteTx(tx, userID, storeID); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventEmployeeRemoved,
			AggregateType: enums.AggregateRole,
			AggregateID:   userID,
			Version:       1,
			Data: payloads.EmployeeChangedEvent{
				UserID:  userID,
				StoreID: storeID,
				OwnerID: actorID,
			},
		})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "removing employee")
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, actorID, storeID uuid.UUID) (*models.Store, error) {
	store, found, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading store")
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "store not found")
	}
	if store.OwnerID != actorID {
		return nil, apperrors.New(apperrors.CodeForbidden, "only the store owner may do this")
	}
	return store, nil
}

func (s *Service) lookupPosition(ctx context.Context, storeID uuid.UUID) (*float64, *float64) {
	point, found, err := s.locations.GetStorePoint(ctx, storeID)
	if err != nil || !found {
		return nil, nil
	}
	return &point.Lat, &point.Lng
}

func derefOrEmpty(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
