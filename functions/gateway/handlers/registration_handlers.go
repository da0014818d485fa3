package handlers

import (
	"net/http"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/services"
	"github.com/racquetek/booking-api/functions/gateway/transport"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

const (
	registerAttempts  = 3
	registerBaseDelay = 50 * time.Millisecond
)

type RegistrationHandler struct {
	LedgerService interfaces.LedgerServiceInterface
	Attempts      int
	BaseDelay     time.Duration
}

func NewRegistrationHandler(ledgerService interfaces.LedgerServiceInterface) *RegistrationHandler {
	return &RegistrationHandler{
		LedgerService: ledgerService,
		Attempts:      registerAttempts,
		BaseDelay:     registerBaseDelay,
	}
}

// Register handles POST /api/register. Ledger writes are idempotent, so
// transient store failures are retried before answering 503.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result *types.RegistrationResult
	err := services.RetryTransient(r.Context(), h.Attempts, h.BaseDelay, func() error {
		var err error
		result, err = h.LedgerService.Register(r.Context(), req)
		return err
	})
	if err != nil {
		transport.SendError(w, err)
		return
	}
	transport.SendJSON(w, result, http.StatusOK)
}
