package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/services/sqlite_service"
	"github.com/racquetek/booking-api/functions/gateway/transport"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// newTestStore returns a fresh sqlite-backed store in a temp dir.
func newTestStore(t *testing.T) *sqlite_service.SqliteService {
	t.Helper()
	db, err := transport.OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	store := sqlite_service.NewSqliteService(db)
	if err := store.InitSchema(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUsers(t *testing.T, store types.UserStore, n int, level string) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		user, err := store.UpsertUser(context.Background(), types.UserInsert{
			LastName:              fmt.Sprintf("Member%d", i),
			FullName:              fmt.Sprintf("Test Member%d", i),
			MembershipNumber:      fmt.Sprintf("M-%04d", i),
			TennisCompetencyLevel: level,
			Status:                "Active",
		})
		if err != nil {
			t.Fatalf("failed to create user %d: %v", i, err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func createTestEvent(t *testing.T, store types.EventStore, title, level string, capacity int) int64 {
	t.Helper()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event, err := store.InsertEvent(context.Background(), types.EventInsert{
		Title:         title,
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		LevelRequired: level,
		Capacity:      capacity,
	})
	if err != nil {
		t.Fatalf("failed to create event %q: %v", title, err)
	}
	return event.ID
}

// stepClock hands out strictly increasing times.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}
