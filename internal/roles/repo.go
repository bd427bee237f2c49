package roles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
)

// Repository exposes role persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetRole retrieves the role a user holds at a store. The boolean reports
// whether an association exists.
func (r *Repository) GetRole(ctx context.Context, userID, storeID uuid.UUID) (*models.UserStoreRole, bool, error) {
	return getRole(r.db.WithContext(ctx), userID, storeID)
}

// GetRoleTx is the transactional variant of GetRole.
func (r *Repository) GetRoleTx(tx *gorm.DB, userID, storeID uuid.UUID) (*models.UserStoreRole, bool, error) {
	if tx == nil {
		return nil, false, errors.New("transaction required")
	}
	return getRole(tx, userID, storeID)
}

func getRole(db *gorm.DB, userID, storeID uuid.UUID) (*models.UserStoreRole, bool, error) {
	var row models.UserStoreRole
	err := db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &row, true, nil
}

// UpsertTx creates or replaces the role row for (user, store). Shifts are
// replaced wholesale, not merged.
func (r *Repository) UpsertTx(tx *gorm.DB, input AssignRoleInput) (*models.UserStoreRole, error) {
	if tx == nil {
		return nil, errors.New("transaction required")
	}
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", input.Role)
	}

	row := models.UserStoreRole{
		UserID:  input.UserID,
		StoreID: input.StoreID,
		Role:    input.Role,
		Shifts:  pq.StringArray(input.Shifts),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteTx removes the role row for (user, store). Deleting a missing row is
// not an error.
func (r *Repository) DeleteTx(tx *gorm.DB, userID, storeID uuid.UUID) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&models.UserStoreRole{}).Error
}

// ListStoreRoles returns every role row for the store.
func (r *Repository) ListStoreRoles(ctx context.Context, storeID uuid.UUID) ([]models.UserStoreRole, error) {
	var rows []models.UserStoreRole
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

type storeEmployeeJoin struct {
	UserID    uuid.UUID      `gorm:"column:user_id"`
	Name      string         `gorm:"column:name"`
	Email     string         `gorm:"column:email"`
	Shifts    pq.StringArray `gorm:"column:shifts;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at"`
}

// ListStoreEmployees returns the employee roster joined with user profiles.
func (r *Repository) ListStoreEmployees(ctx context.Context, storeID uuid.UUID) ([]StoreEmployee, error) {
	var raw []storeEmployeeJoin
	err := r.db.WithContext(ctx).
		Model(&models.UserStoreRole{}).
		Select("user_store_roles.user_id, users.name, users.email, user_store_roles.shifts, user_store_roles.created_at").
		Joins("JOIN users ON users.id = user_store_roles.user_id").
		Where("user_store_roles.store_id = ? AND user_store_roles.role = ?", storeID, enums.MemberRoleEmployee).
		Order("user_store_roles.created_at ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	employees := make([]StoreEmployee, 0, len(raw))
	for _, row := range raw {
		employees = append(employees, StoreEmployee{
			UserID:  row.UserID,
			Name:    row.Name,
			Email:   row.Email,
			Shifts:  []string(row.Shifts),
			AddedAt: row.CreatedAt,
		})
	}
	return employees, nil
}
