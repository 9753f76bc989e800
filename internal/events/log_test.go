package events

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/netlee/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db))
	return db
}

// testEvent is a concrete event type for testing
type testEvent struct {
	BaseEvent
	Message string `json:"message"`
}

func appendAll(t *testing.T, log *EventLog, events ...Event) {
	t.Helper()
	for _, e := range events {
		_, err := log.Append(e)
		require.NoError(t, err)
	}
}

func TestEventLog_Append(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	id, err := log.Append(&testEvent{
		BaseEvent: NewBaseEvent("test.created", "test", "local/1"),
		Message:   "hello",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	events, err := log.ForEntity("test", "local/1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Contains(t, events[0].Payload, `"message":"hello"`)
	assert.Equal(t, "test.created", events[0].EventType)
	assert.Equal(t, "local/1", events[0].EntityID)
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestEventLog_ForEntity(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	appendAll(t, log,
		&testEvent{BaseEvent: NewBaseEvent("test.one", EntityMovie, "catalog/550")},
		&testEvent{BaseEvent: NewBaseEvent("test.two", EntityMovie, "local/550")},
		&testEvent{BaseEvent: NewBaseEvent("test.three", EntityMovie, "catalog/550")},
	)

	events, err := log.ForEntity(EntityMovie, "catalog/550")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "test.one", events[0].EventType, "oldest first")
	assert.Equal(t, "test.three", events[1].EventType)

	// Same id, different origin: a distinct entity.
	events, err = log.ForEntity(EntityMovie, "local/550")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "test.two", events[0].EventType)
}

func TestEventLog_Recent(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	for i := range 5 {
		appendAll(t, log, &ResolveCompleted{
			BaseEvent: NewBaseEvent(EventResolveCompleted, EntityMovie, fmt.Sprintf("local/%d", i+1)),
			Origin:    "local",
			Title:     fmt.Sprintf("Movie %d", i+1),
		})
	}

	events, err := log.Recent(3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "local/5", events[0].EntityID)
	assert.Equal(t, "local/4", events[1].EntityID)
	assert.Equal(t, "local/3", events[2].EntityID)
}

func TestEventLog_Find(t *testing.T) {
	log := NewEventLog(setupTestDB(t))
	appendAll(t, log,
		&ResolveCompleted{BaseEvent: NewBaseEvent(EventResolveCompleted, EntityMovie, "local/1")},
		&ResolveFailed{BaseEvent: NewBaseEvent(EventResolveFailed, EntityMovie, "local/2")},
		&ResolveCompleted{BaseEvent: NewBaseEvent(EventResolveCompleted, EntityMovie, "catalog/3")},
		&ResolveCompleted{BaseEvent: NewBaseEvent(EventResolveCompleted, EntityMovie, "local/4")},
	)

	tests := []struct {
		name      string
		query     Query
		wantIDs   []string
		wantTotal int
	}{
		{"all", Query{}, []string{"local/1", "local/2", "catalog/3", "local/4"}, 4},
		{"by type", Query{EventType: EventResolveCompleted}, []string{"local/1", "catalog/3", "local/4"}, 3},
		{"limit keeps total", Query{EventType: EventResolveCompleted, Limit: 1}, []string{"local/1"}, 3},
		{"newest first", Query{Limit: 2, NewestFirst: true}, []string{"local/4", "catalog/3"}, 4},
		{"future since", Query{Since: time.Now().Add(time.Hour)}, nil, 0},
		{"no match", Query{EntityID: "local/99"}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, total, err := log.Find(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			var ids []string
			for _, e := range events {
				ids = append(ids, e.EntityID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	_, err := db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		"test.old", "test", "local/1", `{"message":"old"}`, time.Now().Add(-100*24*time.Hour),
	)
	require.NoError(t, err)
	appendAll(t, log, &testEvent{BaseEvent: NewBaseEvent("test.new", "test", "local/2")})

	count, err := log.Prune(90 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events, total, err := log.Find(Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "test.new", events[0].EventType)
}
