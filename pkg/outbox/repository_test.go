package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jeanmnorhen/precoreal-backend/pkg/db/models"
	"github.com/jeanmnorhen/precoreal-backend/pkg/enums"
)

func setupOutboxTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	events := `
CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`
	dlq := `
CREATE TABLE IF NOT EXISTS outbox_dlq (
  id TEXT PRIMARY KEY,
  event_id TEXT NOT NULL,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload_json TEXT NOT NULL,
  error_reason TEXT NOT NULL,
  error_message TEXT,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  failed_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(events).Error)
	require.NoError(t, db.Exec(dlq).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM outbox_events")
		db.Exec("DELETE FROM outbox_dlq")
	})

	return db
}

func newOutboxEvent(eventType enums.OutboxEventType, aggregateType enums.OutboxAggregateType) models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{"version":1,"data":{}}`),
	}
}

func TestRepositoryInsertAndFetch(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	event := newOutboxEvent(enums.EventUserCreated, enums.AggregateUser)
	require.NoError(t, repo.Insert(db, event))

	rows, err := repo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, event.ID, rows[0].ID)
	assert.Equal(t, enums.EventUserCreated, rows[0].EventType)
	assert.Nil(t, rows[0].PublishedAt)
}

func TestRepositoryInsertRequiresTx(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	err := repo.Insert(nil, newOutboxEvent(enums.EventUserCreated, enums.AggregateUser))
	require.Error(t, err)
}

func TestRepositoryMarkPublishedExcludesRow(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	event := newOutboxEvent(enums.EventStoreCreated, enums.AggregateStore)
	require.NoError(t, repo.Insert(db, event))
	require.NoError(t, repo.MarkPublishedTx(db, event.ID))

	rows, err := repo.FetchUnpublished(10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryMarkFailedIncrementsAttempts(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	event := newOutboxEvent(enums.EventRoleAssigned, enums.AggregateRole)
	require.NoError(t, repo.Insert(db, event))

	require.NoError(t, repo.MarkFailedTx(db, event.ID, errors.New("publish timeout")))
	require.NoError(t, repo.MarkFailedTx(db, event.ID, errors.New("publish timeout")))

	var row models.OutboxEvent
	require.NoError(t, db.First(&row, "id = ?", event.ID).Error)
	assert.Equal(t, 2, row.AttemptCount)
	require.NotNil(t, row.LastError)
	assert.Equal(t, "publish timeout", *row.LastError)
}

func TestRepositoryMarkTerminalPinsAttempts(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	event := newOutboxEvent(enums.EventRoleRevoked, enums.AggregateRole)
	require.NoError(t, repo.Insert(db, event))
	require.NoError(t, repo.MarkTerminalTx(db, event.ID, errors.New("unresolvable"), 10))

	var row models.OutboxEvent
	require.NoError(t, db.First(&row, "id = ?", event.ID).Error)
	assert.Equal(t, 10, row.AttemptCount)
}

func TestRepositoryExistsTx(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewRepository(db)

	event := newOutboxEvent(enums.EventEmployeeAdded, enums.AggregateRole)
	require.NoError(t, repo.Insert(db, event))

	exists, err := repo.ExistsTx(db, event.EventType, event.AggregateType, event.AggregateID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsTx(db, event.EventType, event.AggregateType, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDLQRepositoryInsertTruncatesError(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewDLQRepository(db)

	long := strings.Repeat("x", maxDLQErrorLen+100)
	eventID := uuid.New()
	entry := models.OutboxDLQ{
		ID:            uuid.New(),
		EventID:       eventID,
		EventType:     enums.EventUserDeleted,
		AggregateType: enums.AggregateUser,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{}`),
		ErrorReason:   enums.DLQReasonUnresolvable,
		ErrorMessage:  &long,
	}
	require.NoError(t, repo.InsertTx(db, entry))

	stored, err := repo.FindByEventID(context.Background(), eventID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ErrorMessage)
	assert.Len(t, *stored.ErrorMessage, maxDLQErrorLen)
}

func TestDLQRepositoryFindMissingReturnsNil(t *testing.T) {
	db := setupOutboxTestDB(t)
	repo := NewDLQRepository(db)

	stored, err := repo.FindByEventID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, stored)
}
