package postgres_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// join_date and expiry_date are DATE columns; they travel as YYYY-MM-DD text.
const userColumns = `id, last_name, full_name, membership_number, gender, tennis_competency_level,
	status, email, phone, membership_type,
	COALESCE(join_date::text, '') AS join_date,
	COALESCE(expiry_date::text, '') AS expiry_date`

func scanUser(row pgx.Row) (*types.User, error) {
	var u types.User
	err := row.Scan(
		&u.ID, &u.LastName, &u.FullName, &u.MembershipNumber, &u.Gender, &u.TennisCompetencyLevel,
		&u.Status, &u.Email, &u.Phone, &u.MembershipType, &u.JoinDate, &u.ExpiryDate,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (s *PostgresService) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	return scanUser(s.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresService) FindUserByCredentials(ctx context.Context, lastName, membershipNumber string) (*types.User, error) {
	return scanUser(s.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(last_name) = LOWER($1) AND membership_number = $2`,
		lastName, membershipNumber))
}

func (s *PostgresService) UpsertUser(ctx context.Context, user types.UserInsert) (*types.User, error) {
	u, err := scanUser(s.DB.QueryRow(ctx, `
		INSERT INTO users (
			last_name, full_name, membership_number, gender, tennis_competency_level,
			status, email, phone, membership_type, join_date, expiry_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			NULLIF($10, '')::date, NULLIF($11, '')::date
		)
		ON CONFLICT (membership_number) DO UPDATE SET
			last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name,
			gender = EXCLUDED.gender,
			tennis_competency_level = EXCLUDED.tennis_competency_level,
			status = EXCLUDED.status,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			membership_type = EXCLUDED.membership_type,
			join_date = EXCLUDED.join_date,
			expiry_date = EXCLUDED.expiry_date
		RETURNING `+userColumns,
		user.LastName, user.FullName, user.MembershipNumber, user.Gender, user.TennisCompetencyLevel,
		user.Status, user.Email, user.Phone, user.MembershipType, user.JoinDate, user.ExpiryDate,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return u, nil
}

func (s *PostgresService) GetAdminByEmail(ctx context.Context, email string) (*types.Admin, error) {
	var a types.Admin
	err := s.DB.QueryRow(ctx,
		`SELECT id, email, password_hash FROM admins WHERE email = $1`, strings.ToLower(email),
	).Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (s *PostgresService) UpsertAdmin(ctx context.Context, email, passwordHash string) (*types.Admin, error) {
	a := types.Admin{Email: strings.ToLower(email), PasswordHash: passwordHash}
	err := s.DB.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash) VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`, a.Email, a.PasswordHash,
	).Scan(&a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", mapError(err))
	}
	return &a, nil
}
