package types

import (
	"context"
)

// User is a club member as stored in the users table.
type User struct {
	ID                    int64  `json:"id"`
	LastName              string `json:"last_name"`
	FullName              string `json:"full_name"`
	MembershipNumber      string `json:"membership_number"`
	Gender                string `json:"gender,omitempty"`
	TennisCompetencyLevel string `json:"tennis_competency_level"`
	Status                string `json:"status"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	MembershipType        string `json:"membership_type,omitempty"`
	JoinDate              string `json:"join_date,omitempty"`
	ExpiryDate            string `json:"expiry_date,omitempty"`
}

// UserInsert represents the data required to insert (or refresh) a member.
// MembershipNumber is the natural key.
type UserInsert struct {
	LastName              string `json:"last_name" validate:"required"`
	FullName              string `json:"full_name" validate:"required"`
	MembershipNumber      string `json:"membership_number" validate:"required"`
	Gender                string `json:"gender"`
	TennisCompetencyLevel string `json:"tennis_competency_level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Status                string `json:"status" validate:"required"`
	Email                 string `json:"email" validate:"omitempty,email"`
	Phone                 string `json:"phone"`
	MembershipType        string `json:"membership_type"`
	JoinDate              string `json:"join_date"`
	ExpiryDate            string `json:"expiry_date"`
}

// MemberLogin is the body of POST /api/login.
type MemberLogin struct {
	LastName         string `json:"lastName" validate:"required"`
	MembershipNumber string `json:"membershipNumber" validate:"required"`
}

// Admin is a back-office account. PasswordHash never leaves the service layer.
type Admin struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// AdminLogin is the body of POST /api/admin/login.
type AdminLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminSession is returned on a successful admin login.
type AdminSession struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// UserStore defines member lookups against the backing database.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	FindUserByCredentials(ctx context.Context, lastName, membershipNumber string) (*User, error)
	UpsertUser(ctx context.Context, user UserInsert) (*User, error)
}

// AdminStore defines admin account lookups against the backing database.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	UpsertAdmin(ctx context.Context, email, passwordHash string) (*Admin, error)
}
