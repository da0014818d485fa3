package sqlite_service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// WithEventLock runs fn in a transaction. The pool holds a single connection,
// so at most one ledger transaction runs at a time and callers queue on the
// connection until ctx expires.
func (s *SqliteService) WithEventLock(ctx context.Context, eventID int64, fn func(tx types.LedgerTx, capacity int) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("failed to begin ledger transaction: %w", mapError(err))
	}
	defer tx.Rollback()

	var capacity int
	err = tx.GetContext(ctx, &capacity, `SELECT capacity FROM events WHERE id = ?`, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("event %d: %w", eventID, types.ErrNotFound)
	}
	if err != nil {
		return mapError(err)
	}

	if err := fn(&ledgerTx{tx: tx}, capacity); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", mapError(err))
	}
	return nil
}

type ledgerTx struct {
	tx *sqlx.Tx
}

func (l *ledgerTx) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := l.tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (l *ledgerTx) GetRegistration(ctx context.Context, userID, eventID int64) (*types.Registration, error) {
	var row registrationRow
	err := l.tx.GetContext(ctx, &row,
		`SELECT `+registrationColumns+` FROM registrations WHERE user_id = ? AND event_id = ?`, userID, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	reg := row.toRegistration()
	return &reg, nil
}

func (l *ledgerTx) CountConfirmed(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := l.tx.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ? AND status = ?`, eventID, string(types.StatusConfirmed))
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (l *ledgerTx) ListWaitlisted(ctx context.Context, eventID int64, limit int) ([]types.Registration, error) {
	var rows []registrationRow
	err := l.tx.SelectContext(ctx, &rows, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE event_id = ? AND status = ?
		ORDER BY waitlisted_at, created_at, user_id
		LIMIT ?`, eventID, string(types.StatusWaitlist), limit)
	if err != nil {
		return nil, mapError(err)
	}
	regs := make([]types.Registration, 0, len(rows))
	for _, row := range rows {
		regs = append(regs, row.toRegistration())
	}
	return regs, nil
}

func (l *ledgerTx) UpsertRegistration(ctx context.Context, reg types.Registration) error {
	var waitlistedAt sql.NullInt64
	if reg.WaitlistedAt != nil {
		waitlistedAt = sql.NullInt64{Int64: toNanos(*reg.WaitlistedAt), Valid: true}
	}
	_, err := l.tx.ExecContext(ctx, `
		INSERT INTO registrations (user_id, event_id, status, waitlisted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, event_id) DO UPDATE SET
			status = excluded.status,
			waitlisted_at = excluded.waitlisted_at,
			updated_at = excluded.updated_at`,
		reg.UserID, reg.EventID, string(reg.Status), waitlistedAt, toNanos(reg.CreatedAt), toNanos(reg.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert registration: %w", mapError(err))
	}
	return nil
}
