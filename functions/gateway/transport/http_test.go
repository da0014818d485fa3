package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

func TestSendServerRes(t *testing.T) {
	tests := []struct {
		name           string
		body           []byte
		status         int
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			body:           []byte(`{"ok":true}`),
			status:         http.StatusOK,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ok":true}`,
		},
		{
			name:           "Error body is passed through",
			body:           []byte(`{"error":"nope"}`),
			status:         http.StatusBadRequest,
			err:            errors.New("internal detail"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"nope"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SendServerRes(rr, tt.body, tt.status, tt.err)

			if rr.Code != tt.expectedStatus {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if got := rr.Body.String(); got != tt.expectedBody {
				t.Errorf("unexpected body: got %q want %q", got, tt.expectedBody)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %q", ct)
			}
		})
	}
}

func TestSendJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	SendJSON(rr, map[string]string{"status": "ok"}, http.StatusCreated)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		hiddenDetail   string
	}{
		{"authentication", types.ErrAuthentication, http.StatusUnauthorized, ""},
		{"not found", fmt.Errorf("user 7: %w", types.ErrNotFound), http.StatusNotFound, ""},
		{"invalid input", fmt.Errorf("%w: capacity", types.ErrInvalidInput), http.StatusBadRequest, ""},
		{"invalid transition", types.ErrInvalidTransition, http.StatusConflict, ""},
		{"constraint", fmt.Errorf("%w: duplicate key events_title_start_time_key", types.ErrConstraintViolation), http.StatusConflict, "events_title_start_time_key"},
		{"transient", fmt.Errorf("%w: lock timeout", types.ErrTransient), http.StatusServiceUnavailable, "lock timeout"},
		{"unknown", errors.New("pq: secret table exploded"), http.StatusInternalServerError, "secret table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SendError(rr, tt.err)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Error == "" {
				t.Errorf("expected an error message")
			}
			if tt.hiddenDetail != "" && strings.Contains(body.Error, tt.hiddenDetail) {
				t.Errorf("error body leaked %q: %s", tt.hiddenDetail, body.Error)
			}
		})
	}
}
