package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

// UserLocation stores the last position a user reported. The record is
// overwritten on every update; absence means the location is unknown.
type UserLocation struct {
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;primaryKey"`
	Location  types.GeographyPoint `gorm:"column:location;type:geography(Point,4326);not null"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name shared with the other services.
func (UserLocation) TableName() string {
	return "user_locations"
}
