package postgres_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type PostgresService struct {
	DB *pgxpool.Pool
}

// NewPostgresService wraps a pool built by the caller. The pool is owned by
// main and closed through Close.
func NewPostgresService(db *pgxpool.Pool) *PostgresService {
	return &PostgresService{DB: db}
}

func (s *PostgresService) Ping(ctx context.Context) error {
	if err := s.DB.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", types.ErrTransient, err)
	}
	return nil
}

func (s *PostgresService) Close() error {
	s.DB.Close()
	return nil
}

// SQLSTATE codes the store distinguishes.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014"
	classConnectionFailure  = "08"
)

// mapError translates driver errors into the types error taxonomy. Errors it
// does not recognise are returned unchanged so context errors survive.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return types.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation,
			pgErr.Code == codeForeignKeyViolation,
			pgErr.Code == codeCheckViolation,
			pgErr.Code == codeNotNullViolation:
			return fmt.Errorf("%w: %w", types.ErrConstraintViolation, err)
		case pgErr.Code == codeSerializationFail,
			pgErr.Code == codeDeadlockDetected,
			pgErr.Code == codeLockNotAvailable,
			pgErr.Code == codeQueryCanceled,
			strings.HasPrefix(pgErr.Code, classConnectionFailure):
			return fmt.Errorf("%w: %w", types.ErrTransient, err)
		}
		return err
	}

	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", types.ErrTransient, err)
	}
	return err
}
