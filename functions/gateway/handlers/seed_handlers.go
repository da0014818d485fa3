package handlers

import (
	"net/http"

	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/transport"
)

type SeedHandler struct {
	SeedService interfaces.SeedServiceInterface
	Enabled     bool
}

func NewSeedHandler(seedService interfaces.SeedServiceInterface, enabled bool) *SeedHandler {
	return &SeedHandler{SeedService: seedService, Enabled: enabled}
}

// Seed handles POST /api/seed. When disabled the route behaves as if it did
// not exist.
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled {
		transport.SendErrorMessage(w, "Not found: "+r.URL.Path, http.StatusNotFound, nil)
		return
	}

	if err := h.SeedService.Seed(r.Context()); err != nil {
		transport.SendErrorMessage(w, "Failed to seed database", http.StatusInternalServerError, err)
		return
	}
	transport.SendJSON(w, map[string]string{"message": "Database seeded successfully"}, http.StatusOK)
}
