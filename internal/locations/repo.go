package locations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/geo"
	"github.com/jeanmnorhen/precoreal-backend/pkg/types"
)

// Repository exposes the location lookups backing proximity checks.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserPoint returns the last reported position for a user. The boolean
// reports whether a position is known.
func (r *Repository) GetUserPoint(ctx context.Context, userID uuid.UUID) (types.GeographyPoint, bool, error) {
	var row models.UserLocation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.GeographyPoint{}, false, nil
		}
		return types.GeographyPoint{}, false, err
	}
	return row.Location, true, nil
}

// GetStorePoint returns the registered position for a store.
func (r *Repository) GetStorePoint(ctx context.Context, storeID uuid.UUID) (types.GeographyPoint, bool, error) {
	var row models.StoreLocation
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.GeographyPoint{}, false, nil
		}
		return types.GeographyPoint{}, false, err
	}
	return row.Location, true, nil
}

// WithinDistance reports whether the user's last position lies within
// radiusMeters of the store. The second boolean is false when either side has
// no known position; the distance check is inclusive at the boundary.
func (r *Repository) WithinDistance(ctx context.Context, userID, storeID uuid.UUID, radiusMeters float64) (bool, bool, error) {
	userPoint, found, err := r.GetUserPoint(ctx, userID)
	if err != nil {
		return false, false, err
	}
	if !found {
		return false, false, nil
	}

	storePoint, found, err := r.GetStorePoint(ctx, storeID)
	if err != nil {
		return false, false, err
	}
	if !found {
		return false, false, nil
	}

	return geo.Within(userPoint, storePoint, radiusMeters), true, nil
}

// UpsertUserLocationTx records or replaces a user's position.
func (r *Repository) UpsertUserLocationTx(tx *gorm.DB, userID uuid.UUID, point types.GeographyPoint) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	row := models.UserLocation{UserID: userID, Location: point}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// UpsertStoreLocationTx records or replaces a store's position.
func (r *Repository) UpsertStoreLocationTx(tx *gorm.DB, storeID uuid.UUID, point types.GeographyPoint) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	row := models.StoreLocation{StoreID: storeID, Location: point}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// DeleteUserLocationTx removes a user's position record.
func (r *Repository) DeleteUserLocationTx(tx *gorm.DB, userID uuid.UUID) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Where("user_id = ?", userID).Delete(&models.UserLocation{}).Error
}

// DeleteStoreLocationTx removes a store's position record.
func (r *Repository) DeleteStoreLocationTx(tx *gorm.DB, storeID uuid.UUID) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Where("store_id = ?", storeID).Delete(&models.StoreLocation{}).Error
}
