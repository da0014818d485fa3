package services

import (
	"context"
	"fmt"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

type EventService struct {
	users  types.UserStore
	events types.EventStore
}

func NewEventService(users types.UserStore, events types.EventStore) *EventService {
	return &EventService{users: users, events: events}
}

// ListEventsForUser returns the events a member can act on. With
// includeIneligible every event is returned and Eligible tells them apart.
func (s *EventService) ListEventsForUser(ctx context.Context, userID int64, includeIneligible bool) ([]types.EventView, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	views, err := s.events.ListEventViews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	filtered := make([]types.EventView, 0, len(views))
	for _, view := range views {
		view.Eligible = helpers.IsEligible(view.LevelRequired, user.TennisCompetencyLevel)
		if view.Eligible || includeIneligible {
			filtered = append(filtered, view)
		}
	}
	return filtered, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event types.EventInsert) (*types.Event, error) {
	if event.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", types.ErrInvalidInput)
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", types.ErrInvalidInput)
	}
	event.StartTime = event.StartTime.UTC()
	event.EndTime = event.EndTime.UTC()
	return s.events.InsertEvent(ctx, event)
}

// GetRoster lists an event's registrations: confirmed, then the waitlist in
// promotion order, then withdrawn.
func (s *EventService) GetRoster(ctx context.Context, eventID int64) ([]types.Registration, error) {
	if _, err := s.events.GetEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %d: %w", eventID, err)
	}
	return s.events.ListRegistrationsByEventID(ctx, eventID)
}
