package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

// StoreLocation is the fixed point assigned when the store is created. It only
// changes when the store explicitly edits its address or coordinates.
type StoreLocation struct {
	StoreID   uuid.UUID            `gorm:"column:store_id;type:uuid;primaryKey"`
	Location  types.GeographyPoint `gorm:"column:location;type:geography(Point,4326);not null"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name shared with the other services.
func (StoreLocation) TableName() string {
	return "store_locations"
}
