package roles

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
)

// AssignRoleInput carries the fields accepted when granting a role.
type AssignRoleInput struct {
	UserID  uuid.UUID
	StoreID uuid.UUID
	Role    enums.MemberRole
	Shifts  []string
}

// StoreEmployee joins a role row with the user profile it belongs to.
type StoreEmployee struct {
	UserID  uuid.UUID `json:"userId"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Shifts  []string  `json:"shifts"`
	AddedAt time.Time `json:"addedAt"`
}
