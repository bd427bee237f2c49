package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
)

// UserUpsertedEvent is emitted when a user profile is created or updated.
type UserUpsertedEvent struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// UserDeletedEvent is emitted when a user profile is removed.
type UserDeletedEvent struct {
	UserID    uuid.UUID `json:"userId"`
	DeletedAt time.Time `json:"deletedAt"`
}

// StoreUpsertedEvent is emitted when a store is created or updated.
type StoreUpsertedEvent struct {
	StoreID   uuid.UUID `json:"storeId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// StoreDeletedEvent is emitted when a store is removed.
type StoreDeletedEvent struct {
	StoreID   uuid.UUID `json:"storeId"`
	DeletedAt time.Time `json:"deletedAt"`
}

// RoleChangedEvent reports a role grant or revocation for a user at a store.
type RoleChangedEvent struct {
	UserID  uuid.UUID        `json:"userId"`
	StoreID uuid.UUID        `json:"storeId"`
	Role    enums.MemberRole `json:"role,omitempty"`
	Shifts  []string         `json:"shifts,omitempty"`
}

// EmployeeChangedEvent reports an employee roster change initiated by an owner.
type EmployeeChangedEvent struct {
	UserID  uuid.UUID `json:"userId"`
	StoreID uuid.UUID `json:"storeId"`
	OwnerID uuid.UUID `json:"ownerId"`
	Shifts  []string  `json:"shifts,omitempty"`
}
