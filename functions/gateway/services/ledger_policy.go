package services

import (
	"fmt"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

// wantsPlace reports whether a requested status asks for a place at the event.
// The server, not the caller, decides between confirmed and waitlist.
func wantsPlace(requested types.RegistrationStatus) (bool, error) {
	switch requested {
	case types.StatusConfirmed, types.StatusWaitlist:
		return true, nil
	case types.StatusWithdrawn:
		return false, nil
	}
	return false, fmt.Errorf("%w: status %q", types.ErrInvalidInput, requested)
}

// NextStatus applies one member request to the current ledger state.
// hasRoom is true when confirmed registrations are below capacity.
//
// Repeating a request is a no-op, and confirmed <-> waitlist never happens
// here: a waitlisted member only moves up through promotion.
func NextStatus(current, requested types.RegistrationStatus, hasRoom bool) (types.RegistrationStatus, error) {
	place, err := wantsPlace(requested)
	if err != nil {
		return current, err
	}

	if place {
		switch current {
		case types.StatusConfirmed, types.StatusWaitlist:
			return current, nil
		case types.StatusNone, types.StatusWithdrawn:
			if hasRoom {
				return types.StatusConfirmed, nil
			}
			return types.StatusWaitlist, nil
		}
	} else {
		switch current {
		case types.StatusConfirmed, types.StatusWaitlist, types.StatusWithdrawn:
			return types.StatusWithdrawn, nil
		case types.StatusNone:
			return current, fmt.Errorf("%w: cannot withdraw without a registration", types.ErrInvalidTransition)
		}
	}
	return current, fmt.Errorf("%w: unknown current status %q", types.ErrInvalidTransition, current)
}

// openSlots is how many waitlisted members can be promoted right now.
func openSlots(capacity, confirmed int) int {
	if confirmed >= capacity {
		return 0
	}
	return capacity - confirmed
}
