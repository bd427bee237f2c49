package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
)

// CreateStoreInput carries the fields accepted when registering a store.
type CreateStoreInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=160"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=80"`
	OwnerID     uuid.UUID `json:"ownerId" validate:"required"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// UpdateStoreInput carries the mutable store fields. Nil means unchanged.
type UpdateStoreInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=160"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=80"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// AddEmployeeInput carries the roster addition fields.
type AddEmployeeInput struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Shifts []string  `json:"shifts" validate:"required,min=1,dive,oneof=madrugada manha tarde noite"`
}

// StoreResponse is the public projection of a store.
type StoreResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Category    *string   `json:"category,omitempty"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(store *models.Store, lat, lng *float64) StoreResponse {
	return StoreResponse{
		ID:          store.ID,
		Name:        store.Name,
		Description: store.Description,
		Address:     store.Address,
		Category:    store.Category,
		OwnerID:     store.OwnerID,
		Latitude:    lat,
		Longitude:   lng,
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}
