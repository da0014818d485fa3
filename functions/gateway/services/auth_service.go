package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

const adminTokenIssuer = "booking-api"

// AdminClaims are carried in the bearer token issued on admin login.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  types.UserStore
	admins types.AdminStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users types.UserStore, admins types.AdminStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		admins: admins,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// MemberLogin matches last name case-insensitively and membership number exactly.
func (s *AuthService) MemberLogin(ctx context.Context, lastName, membershipNumber string) (*types.User, error) {
	lastName = strings.TrimSpace(lastName)
	membershipNumber = strings.TrimSpace(membershipNumber)
	if lastName == "" || membershipNumber == "" {
		return nil, types.ErrAuthentication
	}

	user, err := s.users.FindUserByCredentials(ctx, lastName, membershipNumber)
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrAuthentication
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*types.AdminSession, error) {
	admin, err := s.admins.GetAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrAuthentication
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrAuthentication
	}

	token, err := s.IssueAdminToken(admin.Email)
	if err != nil {
		return nil, err
	}
	return &types.AdminSession{Message: "Admin authenticated", Token: token}, nil
}

func (s *AuthService) IssueAdminToken(email string) (string, error) {
	now := s.now()
	claims := AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    adminTokenIssuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// ParseAdminToken returns the admin email carried by a valid token.
func (s *AuthService) ParseAdminToken(tokenString string) (string, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid admin token", types.ErrAuthentication)
	}
	if claims.Issuer != adminTokenIssuer || claims.Email == "" {
		return "", fmt.Errorf("%w: invalid admin token claims", types.ErrAuthentication)
	}
	return claims.Email, nil
}

// HashPassword produces the bcrypt hash stored in admins.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
