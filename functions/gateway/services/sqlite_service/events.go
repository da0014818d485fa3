package sqlite_service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type eventRow struct {
	ID            int64  `db:"id"`
	Title         string `db:"title"`
	StartTime     int64  `db:"start_time"`
	EndTime       int64  `db:"end_time"`
	LevelRequired string `db:"level_required"`
	Capacity      int    `db:"capacity"`
}

func (r eventRow) toEvent() types.Event {
	return types.Event{
		ID:            r.ID,
		Title:         r.Title,
		StartTime:     fromNanos(r.StartTime),
		EndTime:       fromNanos(r.EndTime),
		LevelRequired: r.LevelRequired,
		Capacity:      r.Capacity,
	}
}

type eventViewRow struct {
	eventRow
	SpotsFilled int    `db:"spots_filled"`
	UserStatus  string `db:"user_status"`
}

type registrationRow struct {
	UserID       int64         `db:"user_id"`
	EventID      int64         `db:"event_id"`
	Status       string        `db:"status"`
	WaitlistedAt sql.NullInt64 `db:"waitlisted_at"`
	CreatedAt    int64         `db:"created_at"`
	UpdatedAt    int64         `db:"updated_at"`
}

func (r registrationRow) toRegistration() types.Registration {
	reg := types.Registration{
		UserID:    r.UserID,
		EventID:   r.EventID,
		Status:    types.RegistrationStatus(r.Status),
		CreatedAt: fromNanos(r.CreatedAt),
		UpdatedAt: fromNanos(r.UpdatedAt),
	}
	if r.WaitlistedAt.Valid {
		t := fromNanos(r.WaitlistedAt.Int64)
		reg.WaitlistedAt = &t
	}
	return reg
}

const registrationColumns = `user_id, event_id, status, waitlisted_at, created_at, updated_at`

func (s *SqliteService) InsertEvent(ctx context.Context, event types.EventInsert) (*types.Event, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO events (title, start_time, end_time, level_required, capacity)
		VALUES (?, ?, ?, ?, ?)`,
		event.Title, toNanos(event.StartTime), toNanos(event.EndTime), event.LevelRequired, event.Capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event %q: %w", event.Title, mapError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &types.Event{
		ID:            id,
		Title:         event.Title,
		StartTime:     event.StartTime.UTC(),
		EndTime:       event.EndTime.UTC(),
		LevelRequired: event.LevelRequired,
		Capacity:      event.Capacity,
	}, nil
}

func (s *SqliteService) GetEventByID(ctx context.Context, id int64) (*types.Event, error) {
	var row eventRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT id, title, start_time, end_time, level_required, capacity FROM events WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	event := row.toEvent()
	return &event, nil
}

// ListEventViews returns every event in start order with the confirmed count
// and userID's status. Eligibility is left to the caller.
func (s *SqliteService) ListEventViews(ctx context.Context, userID int64) ([]types.EventView, error) {
	var rows []eventViewRow
	err := s.DB.SelectContext(ctx, &rows, `
		SELECT e.id, e.title, e.start_time, e.end_time, e.level_required, e.capacity,
			(SELECT COUNT(*) FROM registrations r
				WHERE r.event_id = e.id AND r.status = 'confirmed') AS spots_filled,
			COALESCE((SELECT r.status FROM registrations r
				WHERE r.event_id = e.id AND r.user_id = ?), '') AS user_status
		FROM events e
		ORDER BY e.start_time, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", mapError(err))
	}

	views := make([]types.EventView, 0, len(rows))
	for _, row := range rows {
		views = append(views, types.EventView{
			Event:       row.toEvent(),
			SpotsFilled: row.SpotsFilled,
			UserStatus:  row.UserStatus,
		})
	}
	return views, nil
}

// ListRegistrationsByEventID returns the roster: confirmed, then the waitlist
// in promotion order, then withdrawn.
func (s *SqliteService) ListRegistrationsByEventID(ctx context.Context, eventID int64) ([]types.Registration, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %d: %w", eventID, err)
	}
	var rows []registrationRow
	err := s.DB.SelectContext(ctx, &rows, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = ?
		ORDER BY CASE status
				WHEN '`+string(types.StatusConfirmed)+`' THEN 0
				WHEN '`+string(types.StatusWaitlist)+`' THEN 1
				ELSE 2
			END,
			waitlisted_at, created_at, user_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", mapError(err))
	}
	regs := make([]types.Registration, 0, len(rows))
	for _, row := range rows {
		regs = append(regs, row.toRegistration())
	}
	return regs, nil
}
