package stores

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
)

// Repository exposes store persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts the store inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(store).Error
}

// GetByID fetches a store by primary key.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, bool, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &store, true, nil
}

// ListByOwner returns every store owned by the user.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var rows []models.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateTx applies the provided column updates inside the caller's transaction.
func (r *Repository) UpdateTx(tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Store{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteTx removes the store row inside the caller's transaction.
func (r *Repository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Where("id = ?", id).Delete(&models.Store{}).Error
}
