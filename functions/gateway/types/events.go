package types

import (
	"context"
	"time"
)

// Competency levels. AllLevels is only valid on events.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	AllLevels         = "All Levels"
)

// Event is a scheduled session. Capacity is fixed at creation time.
type Event struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	LevelRequired string    `json:"level_required"`
	Capacity      int       `json:"capacity"`
}

// EventInsert is the body of POST /api/admin/events.
type EventInsert struct {
	Title         string    `json:"title" validate:"required"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
	LevelRequired string    `json:"level_required" validate:"required,event_level"`
	Capacity      int       `json:"capacity" validate:"required,gt=0"`
}

// EventView is an event as seen by one member: the derived confirmed count,
// that member's current registration status and whether they may act on it.
type EventView struct {
	Event
	SpotsFilled int    `json:"spots_filled"`
	UserStatus  string `json:"user_status,omitempty"`
	Eligible    bool   `json:"eligible"`
}

// EventStore defines event reads and writes outside the ledger's atomic scope.
type EventStore interface {
	InsertEvent(ctx context.Context, event EventInsert) (*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEventViews(ctx context.Context, userID int64) ([]EventView, error)
	ListRegistrationsByEventID(ctx context.Context, eventID int64) ([]Registration, error)
}
