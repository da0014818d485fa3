package types

import (
	"context"
	"time"
)

// RegistrationStatus is the ledger state of one (user, event) pair.
type RegistrationStatus string

const (
	// StatusNone means no row exists yet. It is never persisted.
	StatusNone      RegistrationStatus = "none"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusWaitlist  RegistrationStatus = "waitlist"
	StatusWithdrawn RegistrationStatus = "withdrawn"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusWaitlist, StatusWithdrawn:
		return true
	}
	return false
}

// Registration is one row of the ledger.
type Registration struct {
	UserID       int64              `json:"user_id"`
	EventID      int64              `json:"event_id"`
	Status       RegistrationStatus `json:"status"`
	WaitlistedAt *time.Time         `json:"waitlisted_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RegistrationRequest is the body of POST /api/register. Status is read as an
// intent: confirmed or waitlist ask for a place, withdrawn gives it up.
type RegistrationRequest struct {
	UserID  int64              `json:"userId" validate:"required,gt=0"`
	EventID int64              `json:"eventId" validate:"required,gt=0"`
	Status  RegistrationStatus `json:"status" validate:"required,oneof=confirmed waitlist withdrawn"`
}

// RegistrationResult is what the ledger decided.
type RegistrationResult struct {
	Success         bool               `json:"success"`
	Status          RegistrationStatus `json:"status"`
	PreviousStatus  RegistrationStatus `json:"previous_status"`
	PromotedUserIDs []int64            `json:"promoted_user_ids"`
}

// Reasons attached to a RegistrationChange.
const (
	ChangeReasonRequest   = "request"
	ChangeReasonPromotion = "promotion"
)

// RegistrationChange describes one committed status transition.
type RegistrationChange struct {
	UserID         int64              `json:"user_id"`
	EventID        int64              `json:"event_id"`
	PreviousStatus RegistrationStatus `json:"previous_status"`
	Status         RegistrationStatus `json:"status"`
	Reason         string             `json:"reason"`
	At             time.Time          `json:"at"`
}

// LedgerTx is the set of reads and writes the ledger performs while it holds
// the lock on a single event. Implementations must run every call inside the
// same transaction.
type LedgerTx interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetRegistration(ctx context.Context, userID, eventID int64) (*Registration, error)
	CountConfirmed(ctx context.Context, eventID int64) (int, error)
	ListWaitlisted(ctx context.Context, eventID int64, limit int) ([]Registration, error)
	UpsertRegistration(ctx context.Context, reg Registration) error
}

// LedgerStore opens the per-event atomic scope. fn receives the event's
// capacity; the transaction commits only if fn returns nil. A missing event
// yields ErrNotFound.
type LedgerStore interface {
	WithEventLock(ctx context.Context, eventID int64, fn func(tx LedgerTx, capacity int) error) error
}
