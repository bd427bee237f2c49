package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
)

// UserStoreRole links a user with a store and captures their role plus the
// shift set that gates employee access. At most one record exists per
// (user_id, store_id) pair; writes are last-write-wins upserts.
type UserStoreRole struct {
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;primaryKey"`
	StoreID   uuid.UUID        `gorm:"column:store_id;type:uuid;primaryKey"`
	Role      enums.MemberRole `gorm:"column:role;type:text;not null"`
	Shifts    pq.StringArray   `gorm:"column:shifts;type:text[]"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name shared with the other services.
func (UserStoreRole) TableName() string {
	return "user_store_roles"
}
