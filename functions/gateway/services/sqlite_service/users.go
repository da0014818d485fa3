package sqlite_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type userRow struct {
	ID                    int64  `db:"id"`
	LastName              string `db:"last_name"`
	FullName              string `db:"full_name"`
	MembershipNumber      string `db:"membership_number"`
	Gender                string `db:"gender"`
	TennisCompetencyLevel string `db:"tennis_competency_level"`
	Status                string `db:"status"`
	Email                 string `db:"email"`
	Phone                 string `db:"phone"`
	MembershipType        string `db:"membership_type"`
	JoinDate              string `db:"join_date"`
	ExpiryDate            string `db:"expiry_date"`
}

func (r userRow) toUser() *types.User {
	return &types.User{
		ID:                    r.ID,
		LastName:              r.LastName,
		FullName:              r.FullName,
		MembershipNumber:      r.MembershipNumber,
		Gender:                r.Gender,
		TennisCompetencyLevel: r.TennisCompetencyLevel,
		Status:                r.Status,
		Email:                 r.Email,
		Phone:                 r.Phone,
		MembershipType:        r.MembershipType,
		JoinDate:              r.JoinDate,
		ExpiryDate:            r.ExpiryDate,
	}
}

const userColumns = `id, last_name, full_name, membership_number, gender, tennis_competency_level,
	status, email, phone, membership_type, join_date, expiry_date`

func (s *SqliteService) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return row.toUser(), nil
}

func (s *SqliteService) FindUserByCredentials(ctx context.Context, lastName, membershipNumber string) (*types.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE LOWER(last_name) = LOWER(?) AND membership_number = ?`,
		lastName, membershipNumber)
	if err != nil {
		return nil, mapError(err)
	}
	return row.toUser(), nil
}

func (s *SqliteService) UpsertUser(ctx context.Context, user types.UserInsert) (*types.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row, `
		INSERT INTO users (
			last_name, full_name, membership_number, gender, tennis_competency_level,
			status, email, phone, membership_type, join_date, expiry_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (membership_number) DO UPDATE SET
			last_name = excluded.last_name,
			full_name = excluded.full_name,
			gender = excluded.gender,
			tennis_competency_level = excluded.tennis_competency_level,
			status = excluded.status,
			email = excluded.email,
			phone = excluded.phone,
			membership_type = excluded.membership_type,
			join_date = excluded.join_date,
			expiry_date = excluded.expiry_date
		RETURNING `+userColumns,
		user.LastName, user.FullName, user.MembershipNumber, user.Gender, user.TennisCompetencyLevel,
		user.Status, user.Email, user.Phone, user.MembershipType, user.JoinDate, user.ExpiryDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", mapError(err))
	}
	return row.toUser(), nil
}

func (s *SqliteService) GetAdminByEmail(ctx context.Context, email string) (*types.Admin, error) {
	var admin struct {
		ID           int64  `db:"id"`
		Email        string `db:"email"`
		PasswordHash string `db:"password_hash"`
	}
	err := s.DB.GetContext(ctx, &admin, `SELECT id, email, password_hash FROM admins WHERE email = ?`, strings.ToLower(email))
	if err != nil {
		return nil, mapError(err)
	}
	return &types.Admin{ID: admin.ID, Email: admin.Email, PasswordHash: admin.PasswordHash}, nil
}

func (s *SqliteService) UpsertAdmin(ctx context.Context, email, passwordHash string) (*types.Admin, error) {
	var id int64
	email = strings.ToLower(email)
	err := s.DB.GetContext(ctx, &id, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON CONFLICT (email) DO UPDATE SET password_hash = excluded.password_hash
		RETURNING id`, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", mapError(err))
	}
	return &types.Admin{ID: id, Email: email, PasswordHash: passwordHash}, nil
}
