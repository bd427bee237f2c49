package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is the profile record for a registered store. The fixed geographic
// point lives in store_locations, keyed by the store id.
type Store struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Address     *string   `gorm:"column:address"`
	Category    *string   `gorm:"column:category"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
