package postgres_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// lockTimeoutSetting converts the time left on ctx into a lock_timeout value
// so the server gives up on the row lock no later than the caller would.
func lockTimeoutSetting(ctx context.Context, now time.Time) (string, bool) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return "", false
	}
	ms := deadline.Sub(now).Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return fmt.Sprintf("%dms", ms), true
}

// WithEventLock runs fn inside a transaction holding FOR UPDATE on the event
// row, which serializes every ledger writer for that event.
func (s *PostgresService) WithEventLock(ctx context.Context, eventID int64, fn func(tx types.LedgerTx, capacity int) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin ledger transaction: %w", mapError(err))
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	if setting, ok := lockTimeoutSetting(ctx, time.Now()); ok {
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, setting); err != nil {
			return mapError(err)
		}
	}

	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("event %d: %w", eventID, types.ErrNotFound)
	}
	if err != nil {
		return mapError(err)
	}

	if err := fn(&ledgerTx{tx: tx}, capacity); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", mapError(err))
	}
	return nil
}

type ledgerTx struct {
	tx pgx.Tx
}

func (l *ledgerTx) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := l.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (l *ledgerTx) GetRegistration(ctx context.Context, userID, eventID int64) (*types.Registration, error) {
	rows, err := l.tx.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	if err != nil {
		return nil, mapError(err)
	}
	reg, err := pgx.CollectExactlyOneRow(rows, scanRegistration)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &reg, nil
}

func (l *ledgerTx) CountConfirmed(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := l.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'confirmed'`, eventID,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (l *ledgerTx) ListWaitlisted(ctx context.Context, eventID int64, limit int) ([]types.Registration, error) {
	rows, err := l.tx.Query(ctx, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = $1 AND status = 'waitlist'
		ORDER BY waitlisted_at, created_at, user_id
		LIMIT $2`, eventID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	regs, err := pgx.CollectRows(rows, scanRegistration)
	if err != nil {
		return nil, mapError(err)
	}
	return regs, nil
}

func (l *ledgerTx) UpsertRegistration(ctx context.Context, reg types.Registration) error {
	_, err := l.tx.Exec(ctx, `
		INSERT INTO registrations (user_id, event_id, status, waitlisted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, event_id) DO UPDATE SET
			status = EXCLUDED.status,
			waitlisted_at = EXCLUDED.waitlisted_at,
			updated_at = EXCLUDED.updated_at`,
		reg.UserID, reg.EventID, string(reg.Status), reg.WaitlistedAt, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert registration: %w", mapError(err))
	}
	return nil
}
