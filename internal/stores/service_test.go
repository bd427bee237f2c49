package stores

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/internal/locations"
	"github.com/jeanmnorhen/precoreal-backend/internal/roles"
	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	apperrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupStoresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  address TEXT,
  category TEXT,
  owner_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS user_store_roles (
  user_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  role TEXT NOT NULL,
  shifts TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME,
  PRIMARY KEY (user_id, store_id)
);`,
		`CREATE TABLE IF NOT EXISTS store_locations (
  store_id TEXT PRIMARY KEY,
  location TEXT NOT NULL,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
		db.Exec("DELETE FROM stores")
		db.Exec("DELETE FROM user_store_roles")
		db.Exec("DELETE FROM store_locations")
		db.Exec("DELETE FROM outbox_events")
	})

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupStoresTestDB(t)
	svc := &Service{
		client:    &testTxRunner{db: db},
		repo:      NewRepository(db),
		roles:     roles.NewRepository(db),
		locations: locations.NewRepository(db),
		events:    outbox.NewService(outbox.NewRepository(db), nil),
	}
	return svc, db
}

func floatPtr(v float64) *float64 { return &v }

func seedOwner(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{ID: uuid.New(), Name: "Dona Ana", Email: "ana@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createStore(t *testing.T, svc *Service, ownerID uuid.UUID) *StoreResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), CreateStoreInput{
		Name:      "Mercearia Central",
		OwnerID:   ownerID,
		Latitude:  floatPtr(-23.5505),
		Longitude: floatPtr(-46.6333),
	})
	require.NoError(t, err)
	return resp
}

func TestServiceCreateGrantsOwnerRole(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)

	resp := createStore(t, svc, ownerID)

	row, found, err := roles.NewRepository(db).GetRole(context.Background(), ownerID, resp.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, enums.MemberRoleOwner, row.Role)

	point, found, err := locations.NewRepository(db).GetStorePoint(context.Background(), resp.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, -23.5505, point.Lat, 1e-9)

	var events []models.OutboxEvent
	require.NoError(t, db.Where("event_type = ?", enums.EventStoreCreated).Find(&events).Error)
	require.Len(t, events, 1)
}

func TestServiceUpdateRequiresOwner(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	name := "Outro Nome"
	_, err := svc.Update(context.Background(), uuid.New(), resp.ID, UpdateStoreInput{Name: &name})
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code())
}

func TestServiceUpdateMovesStore(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	name := "Mercearia Nova"
	updated, err := svc.Update(context.Background(), ownerID, resp.ID, UpdateStoreInput{
		Name:      &name,
		Latitude:  floatPtr(-22.9068),
		Longitude: floatPtr(-43.1729),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mercearia Nova", updated.Name)
	require.NotNil(t, updated.Latitude)
	assert.InDelta(t, -22.9068, *updated.Latitude, 1e-9)

	var events []models.OutboxEvent
	require.NoError(t, db.Where("event_type = ?", enums.EventStoreUpdated).Find(&events).Error)
	require.Len(t, events, 1)
}

func TestServiceDeleteCleansUpRolesAndLocation(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	require.NoError(t, svc.Delete(context.Background(), ownerID, resp.ID))

	_, found, err := NewRepository(db).GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = roles.NewRepository(db).GetRole(context.Background(), ownerID, resp.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = locations.NewRepository(db).GetStorePoint(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestServiceAddEmployeeOwnerOnly(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	err := svc.AddEmployee(context.Background(), uuid.New(), resp.ID, AddEmployeeInput{
		UserID: uuid.New(),
		Shifts: []string{"manha"},
	})
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code())
}

func TestServiceEmployeeRosterLifecycle(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	employee := models.User{ID: uuid.New(), Name: "Joao", Email: "joao@example.com"}
	require.NoError(t, db.Create(&employee).Error)

	require.NoError(t, svc.AddEmployee(context.Background(), ownerID, resp.ID, AddEmployeeInput{
		UserID: employee.ID,
		Shifts: []string{"manha", "tarde"},
	}))

	roster, err := svc.ListEmployees(context.Background(), ownerID, resp.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, employee.ID, roster[0].UserID)
	assert.Equal(t, []string{"manha", "tarde"}, roster[0].Shifts)

	require.NoError(t, svc.RemoveEmployee(context.Background(), ownerID, resp.ID, employee.ID))

	roster, err = svc.ListEmployees(context.Background(), ownerID, resp.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)

	var added, removed int64
	require.NoError(t, db.Model(&models.OutboxEvent{}).Where("event_type = ?", enums.EventEmployeeAdded).Count(&added).Error)
	require.NoError(t, db.Model(&models.OutboxEvent{}).Where("event_type = ?", enums.EventEmployeeRemoved).Count(&removed).Error)
	assert.EqualValues(t, 1, added)
	assert.EqualValues(t, 1, removed)
}

func TestServiceRemoveEmployeeMissing(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	err := svc.RemoveEmployee(context.Background(), ownerID, resp.ID, uuid.New())
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code())
}

func TestServiceAddEmployeeInvalidShift(t *testing.T) {
	svc, db := newTestService(t)
	ownerID := seedOwner(t, db)
	resp := createStore(t, svc, ownerID)

	err := svc.AddEmployee(context.Background(), ownerID, resp.ID, AddEmployeeInput{
		UserID: uuid.New(),
		Shifts: []string{"graveyard"},
	})
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code())
}
