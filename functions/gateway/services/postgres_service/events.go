package postgres_service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type eventViewRow struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	LevelRequired string    `db:"level_required"`
	Capacity      int       `db:"capacity"`
	SpotsFilled   int       `db:"spots_filled"`
	UserStatus    string    `db:"user_status"`
}

const registrationColumns = `user_id, event_id, status, waitlisted_at, created_at, updated_at`

func scanRegistration(row pgx.CollectableRow) (types.Registration, error) {
	var (
		reg    types.Registration
		status string
	)
	err := row.Scan(&reg.UserID, &reg.EventID, &status, &reg.WaitlistedAt, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return reg, err
	}
	reg.Status = types.RegistrationStatus(status)
	reg.CreatedAt = reg.CreatedAt.UTC()
	reg.UpdatedAt = reg.UpdatedAt.UTC()
	if reg.WaitlistedAt != nil {
		t := reg.WaitlistedAt.UTC()
		reg.WaitlistedAt = &t
	}
	return reg, nil
}

func (s *PostgresService) InsertEvent(ctx context.Context, event types.EventInsert) (*types.Event, error) {
	e := types.Event{
		Title:         event.Title,
		LevelRequired: event.LevelRequired,
		Capacity:      event.Capacity,
	}
	err := s.DB.QueryRow(ctx, `
		INSERT INTO events (title, start_time, end_time, level_required, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, start_time, end_time`,
		event.Title, event.StartTime, event.EndTime, event.LevelRequired, event.Capacity,
	).Scan(&e.ID, &e.StartTime, &e.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event %q: %w", event.Title, mapError(err))
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	return &e, nil
}

func (s *PostgresService) GetEventByID(ctx context.Context, id int64) (*types.Event, error) {
	var e types.Event
	err := s.DB.QueryRow(ctx,
		`SELECT id, title, start_time, end_time, level_required, capacity FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.LevelRequired, &e.Capacity)
	if err != nil {
		return nil, mapError(err)
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	return &e, nil
}

// ListEventViews returns every event in start order with the confirmed count
// and userID's status. Eligibility is left to the caller.
func (s *PostgresService) ListEventViews(ctx context.Context, userID int64) ([]types.EventView, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT e.id, e.title, e.start_time, e.end_time, e.level_required, e.capacity,
			(COUNT(r.user_id) FILTER (WHERE r.status = 'confirmed'))::int AS spots_filled,
			COALESCE(MAX(r.status) FILTER (WHERE r.user_id = $1), '') AS user_status
		FROM events e
		LEFT JOIN registrations r ON r.event_id = e.id
		GROUP BY e.id
		ORDER BY e.start_time, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", mapError(err))
	}
	viewRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventViewRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", mapError(err))
	}

	views := make([]types.EventView, 0, len(viewRows))
	for _, row := range viewRows {
		views = append(views, types.EventView{
			Event: types.Event{
				ID:            row.ID,
				Title:         row.Title,
				StartTime:     row.StartTime.UTC(),
				EndTime:       row.EndTime.UTC(),
				LevelRequired: row.LevelRequired,
				Capacity:      row.Capacity,
			},
			SpotsFilled: row.SpotsFilled,
			UserStatus:  row.UserStatus,
		})
	}
	return views, nil
}

func (s *PostgresService) ListRegistrationsByEventID(ctx context.Context, eventID int64) ([]types.Registration, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %d: %w", eventID, err)
	}
	rows, err := s.DB.Query(ctx, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = $1
		ORDER BY CASE status
				WHEN 'confirmed' THEN 0
				WHEN 'waitlist' THEN 1
				ELSE 2
			END,
			waitlisted_at NULLS FIRST, created_at, user_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", mapError(err))
	}
	regs, err := pgx.CollectRows(rows, scanRegistration)
	if err != nil {
		return nil, fmt.Errorf("failed to scan registrations: %w", mapError(err))
	}
	return regs, nil
}
