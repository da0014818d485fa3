package interfaces

import (
	"context"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

type LedgerServiceInterface interface {
	Register(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error)
}

type EventServiceInterface interface {
	ListEventsForUser(ctx context.Context, userID int64, includeIneligible bool) ([]types.EventView, error)
	CreateEvent(ctx context.Context, event types.EventInsert) (*types.Event, error)
	GetRoster(ctx context.Context, eventID int64) ([]types.Registration, error)
}

type AuthServiceInterface interface {
	MemberLogin(ctx context.Context, lastName, membershipNumber string) (*types.User, error)
	AdminLogin(ctx context.Context, email, password string) (*types.AdminSession, error)
	ParseAdminToken(token string) (string, error)
}

type SeedServiceInterface interface {
	Seed(ctx context.Context) error
}

// RegistrationPublisher fans committed ledger changes out to other systems.
type RegistrationPublisher interface {
	PublishRegistrationChange(ctx context.Context, change types.RegistrationChange) error
	Close() error
}

type HealthCheckerInterface interface {
	Ping(ctx context.Context) error
}
