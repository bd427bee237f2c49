package roles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
	"github.com/jeanmnorhen/precoreal-backend/pkg/outbox"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupRolesTestDB(t)
	repo := NewRepository(db)
	events := outbox.NewService(outbox.NewRepository(db), nil)
	svc := &Service{client: &testTxRunner{db: db}, repo: repo, events: events}
	return svc, db
}

func TestServiceAssignRoleEmitsEvent(t *testing.T) {
	svc, db := newTestService(t)

	ownerID := seedUser(t, db, "Dona Ana", "ana@example.com")
	storeID := seedStore(t, db, ownerID)
	employeeID := seedUser(t, db, "Joao", "joao@example.com")

	row, err := svc.AssignRole(context.Background(), AssignRoleInput{
		UserID:  employeeID,
		StoreID: storeID,
		Role:    enums.MemberRoleEmployee,
		Shifts:  []string{"manha"},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.MemberRoleEmployee, row.Role)

	var events []models.OutboxEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, enums.EventRoleAssigned, events[0].EventType)
	assert.Equal(t, employeeID, events[0].AggregateID)
}

func TestServiceAssignRoleRejectsInvalidShift(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AssignRole(context.Background(), AssignRoleInput{
		UserID:  uuid.New(),
		StoreID: uuid.New(),
		Role:    enums.MemberRoleEmployee,
		Shifts:  []string{"midnight"},
	})
	require.Error(t, err)
}

func TestServiceRevokeRoleMissingIsSilent(t *testing.T) {
	svc, db := newTestService(t)

	require.NoError(t, svc.RevokeRole(context.Background(), uuid.New(), uuid.New()))

	var count int64
	require.NoError(t, db.Model(&models.OutboxEvent{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "no event for a revoke that removed nothing")
}

func TestServiceRevokeRoleEmitsEvent(t *testing.T) {
	svc, db := newTestService(t)

	ownerID := seedUser(t, db, "Dona Ana", "ana@example.com")
	storeID := seedStore(t, db, ownerID)
	employeeID := seedUser(t, db, "Joao", "joao@example.com")

	_, err := svc.AssignRole(context.Background(), AssignRoleInput{
		UserID:  employeeID,
		StoreID: storeID,
		Role:    enums.MemberRoleEmployee,
		Shifts:  []string{"manha"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRole(context.Background(), employeeID, storeID))

	_, found, err := NewRepository(db).GetRole(context.Background(), employeeID, storeID)
	require.NoError(t, err)
	assert.False(t, found)

	var events []models.OutboxEvent
	require.NoError(t, db.Where("event_type = ?", enums.EventRoleRevoked).Find(&events).Error)
	require.Len(t, events, 1)
}
