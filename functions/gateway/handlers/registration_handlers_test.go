package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/test_helpers"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		registerFunc   func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error)
		expectedStatus int
		expectedCalls  int
	}{
		{
			name: "confirmed",
			body: `{"userId":1,"eventId":3,"status":"confirmed"}`,
			registerFunc: func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
				return &types.RegistrationResult{Success: true, Status: types.StatusConfirmed, PreviousStatus: types.StatusNone, PromotedUserIDs: []int64{}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "invalid status",
			body:           `{"userId":1,"eventId":3,"status":"maybe"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user",
			body:           `{"eventId":3,"status":"confirmed"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown event",
			body: `{"userId":1,"eventId":99,"status":"confirmed"}`,
			registerFunc: func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
				return nil, fmt.Errorf("event 99: %w", types.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCalls:  1,
		},
		{
			name: "withdraw without registration",
			body: `{"userId":1,"eventId":3,"status":"withdrawn"}`,
			registerFunc: func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
				return nil, types.ErrInvalidTransition
			},
			expectedStatus: http.StatusConflict,
			expectedCalls:  1,
		},
		{
			name: "transient failures are retried then reported",
			body: `{"userId":1,"eventId":3,"status":"confirmed"}`,
			registerFunc: func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
				return nil, fmt.Errorf("%w: lock timeout", types.ErrTransient)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCalls:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &test_helpers.MockLedgerService{RegisterFunc: tt.registerFunc}
			handler := NewRegistrationHandler(mockService)
			handler.BaseDelay = time.Millisecond

			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %v want %v (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if mockService.Calls != tt.expectedCalls {
				t.Errorf("expected %d ledger calls, got %d", tt.expectedCalls, mockService.Calls)
			}
		})
	}
}

func TestRegisterRecoversFromOneTransientFailure(t *testing.T) {
	attempts := 0
	mockService := &test_helpers.MockLedgerService{
		RegisterFunc: func(ctx context.Context, req types.RegistrationRequest) (*types.RegistrationResult, error) {
			attempts++
			if attempts == 1 {
				return nil, types.ErrTransient
			}
			return &types.RegistrationResult{Success: true, Status: types.StatusWaitlist, PreviousStatus: types.StatusNone, PromotedUserIDs: []int64{}}, nil
		},
	}
	handler := NewRegistrationHandler(mockService)
	handler.BaseDelay = time.Millisecond

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"userId":1,"eventId":3,"status":"confirmed"}`))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var res map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["success"] != true || res["status"] != "waitlist" || res["previous_status"] != "none" {
		t.Errorf("unexpected response %v", res)
	}
}
