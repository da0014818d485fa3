package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/transport"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

type EventHandler struct {
	EventService interfaces.EventServiceInterface
}

func NewEventHandler(eventService interfaces.EventServiceInterface) *EventHandler {
	return &EventHandler{EventService: eventService}
}

// GetEventsForUser handles GET /api/events/{userId}.
func (h *EventHandler) GetEventsForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, helpers.USER_ID_KEY)
	if !ok {
		return
	}

	includeIneligible := false
	if raw := r.URL.Query().Get(helpers.INCLUDE_INELIGIBLE_KEY); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			transport.SendErrorMessage(w, "Invalid "+helpers.INCLUDE_INELIGIBLE_KEY+" value", http.StatusBadRequest, err)
			return
		}
		includeIneligible = parsed
	}

	events, err := h.EventService.ListEventsForUser(r.Context(), userID, includeIneligible)
	if err != nil {
		transport.SendError(w, err)
		return
	}
	transport.SendJSON(w, events, http.StatusOK)
}

// CreateEvent handles POST /api/admin/events.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var insert types.EventInsert
	if !decodeBody(w, r, &insert) {
		return
	}

	event, err := h.EventService.CreateEvent(r.Context(), insert)
	if err != nil {
		transport.SendError(w, err)
		return
	}
	log.Printf("Admin %s created event id=%d %q capacity=%d",
		transport.AdminEmailFromContext(r.Context()), event.ID, event.Title, event.Capacity)
	transport.SendJSON(w, event, http.StatusCreated)
}

// GetEventRegistrations handles GET /api/admin/events/{eventId}/registrations.
func (h *EventHandler) GetEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, helpers.EVENT_ID_KEY)
	if !ok {
		return
	}

	roster, err := h.EventService.GetRoster(r.Context(), eventID)
	if err != nil {
		transport.SendError(w, err)
		return
	}
	transport.SendJSON(w, roster, http.StatusOK)
}
