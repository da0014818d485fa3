package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/transport"
)

type HealthHandler struct {
	Checker interfaces.HealthCheckerInterface
}

func NewHealthHandler(checker interfaces.HealthCheckerInterface) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Checker.Ping(ctx); err != nil {
		transport.SendJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	transport.SendJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
