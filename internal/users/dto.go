package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
)

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Email     string   `json:"email" validate:"required,email"`
	Name      string   `json:"name" validate:"required,min=1,max=120"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// UpdateUserInput carries the mutable profile fields. Nil means unchanged.
type UpdateUserInput struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// UserResponse is the public projection of a user profile.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(user *models.User, lat, lng *float64) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
