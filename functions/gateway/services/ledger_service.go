package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// LedgerService is the only writer of registration rows. Every decision is
// made while the store holds the event's lock, so the confirmed count it reads
// is the one it writes against.
type LedgerService struct {
	store       types.LedgerStore
	publisher   interfaces.RegistrationPublisher
	lockTimeout time.Duration
	now         func() time.Time
}

func NewLedgerService(store types.LedgerStore, publisher interfaces.RegistrationPublisher, lockTimeout time.Duration) *LedgerService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &LedgerService{
		store:       store,
		publisher:   publisher,
		lockTimeout: lockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register applies a member's request for (user, event) and returns the status
// the ledger actually recorded.
func (s *LedgerService) Register(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
	if req.UserID <= 0 || req.EventID <= 0 {
		return nil, fmt.Errorf("%w: userId and eventId are required", types.ErrInvalidInput)
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", types.ErrInvalidInput, req.Status)
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	var (
		result  types.RegistrationResult
		changes []types.RegistrationChange
	)
	err := s.store.WithEventLock(lockCtx, req.EventID, func(tx types.LedgerTx, capacity int) error {
		result = types.RegistrationResult{}
		changes = nil

		exists, err := tx.UserExists(lockCtx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("user %d: %w", req.UserID, types.ErrNotFound)
		}

		now := s.now()
		confirmed, err := tx.CountConfirmed(lockCtx, req.EventID)
		if err != nil {
			return err
		}

		// Waiting members keep their priority over newcomers.
		promoted, err := s.promote(lockCtx, tx, req.EventID, openSlots(capacity, confirmed), now)
		if err != nil {
			return err
		}
		confirmed += len(promoted)
		changes = append(changes, promoted...)

		existing, err := tx.GetRegistration(lockCtx, req.UserID, req.EventID)
		if err != nil {
			return err
		}
		current := types.StatusNone
		if existing != nil {
			current = existing.Status
		}

		next, err := NextStatus(current, req.Status, confirmed < capacity)
		if err != nil {
			return err
		}
		result.PreviousStatus = current
		result.Status = next

		if next == current {
			return nil
		}

		reg := types.Registration{
			UserID:    req.UserID,
			EventID:   req.EventID,
			Status:    next,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if existing != nil {
			reg.CreatedAt = existing.CreatedAt
		}
		if next == types.StatusWaitlist {
			reg.WaitlistedAt = &now
		}
		if err := tx.UpsertRegistration(lockCtx, reg); err != nil {
			return err
		}
		changes = append(changes, types.RegistrationChange{
			UserID:         req.UserID,
			EventID:        req.EventID,
			PreviousStatus: current,
			Status:         next,
			Reason:         types.ChangeReasonRequest,
			At:             now,
		})

		if current == types.StatusConfirmed {
			confirmed--
			promoted, err := s.promote(lockCtx, tx, req.EventID, openSlots(capacity, confirmed), now)
			if err != nil {
				return err
			}
			changes = append(changes, promoted...)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s (event %d)", types.ErrTransient, helpers.ERR_EVENT_LOCK_TIMEOUT, req.EventID)
		}
		return nil, err
	}

	result.Success = true
	result.PromotedUserIDs = []int64{}
	for _, change := range changes {
		if change.Reason == types.ChangeReasonPromotion {
			result.PromotedUserIDs = append(result.PromotedUserIDs, change.UserID)
		}
	}

	log.Printf("registration user=%d event=%d requested=%s %s -> %s promoted=%v",
		req.UserID, req.EventID, req.Status, result.PreviousStatus, result.Status, result.PromotedUserIDs)

	s.publish(ctx, changes)
	return &result, nil
}

// promote moves up to slots waitlisted rows to confirmed, oldest first.
func (s *LedgerService) promote(ctx context.Context, tx types.LedgerTx, eventID int64, slots int, now time.Time) ([]types.RegistrationChange, error) {
	if slots <= 0 {
		return nil, nil
	}
	waiting, err := tx.ListWaitlisted(ctx, eventID, slots)
	if err != nil {
		return nil, err
	}

	var changes []types.RegistrationChange
	for _, reg := range waiting {
		reg.Status = types.StatusConfirmed
		reg.WaitlistedAt = nil
		reg.UpdatedAt = now
		if err := tx.UpsertRegistration(ctx, reg); err != nil {
			return nil, fmt.Errorf("failed to promote user %d: %w", reg.UserID, err)
		}
		changes = append(changes, types.RegistrationChange{
			UserID:         reg.UserID,
			EventID:        eventID,
			PreviousStatus: types.StatusWaitlist,
			Status:         types.StatusConfirmed,
			Reason:         types.ChangeReasonPromotion,
			At:             now,
		})
	}
	return changes, nil
}

// publish runs after commit; the ledger is already authoritative, so a broker
// failure is only logged.
func (s *LedgerService) publish(ctx context.Context, changes []types.RegistrationChange) {
	ctx = context.WithoutCancel(ctx)
	for _, change := range changes {
		if err := s.publisher.PublishRegistrationChange(ctx, change); err != nil {
			log.Printf("ERR: failed to publish registration change user=%d event=%d: %v", change.UserID, change.EventID, err)
		}
	}
}
