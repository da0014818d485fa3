package helpers

import (
	"testing"
	"time"

	"github.com/racquetek/booking-api/functions/gateway/types"
)

func TestNewValidator_EventLevel(t *testing.T) {
	validate := NewValidator()
	base := types.EventInsert{
		Title:     "Cardio Tennis",
		StartTime: time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 11, 2, 19, 30, 0, 0, time.UTC),
		Capacity:  8,
	}

	tests := []struct {
		level   string
		wantErr bool
	}{
		{types.AllLevels, false},
		{types.LevelAdvanced, false},
		{"Expert", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			event := base
			event.LevelRequired = tt.level
			err := validate.Struct(event)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewValidator_RegistrationRequest(t *testing.T) {
	validate := NewValidator()
	tests := []struct {
		name    string
		req     types.RegistrationRequest
		wantErr bool
	}{
		{"Valid", types.RegistrationRequest{UserID: 1, EventID: 2, Status: types.StatusConfirmed}, false},
		{"Missing user", types.RegistrationRequest{EventID: 2, Status: types.StatusConfirmed}, true},
		{"Unknown status", types.RegistrationRequest{UserID: 1, EventID: 2, Status: "maybe"}, true},
		{"None is not requestable", types.RegistrationRequest{UserID: 1, EventID: 2, Status: types.StatusNone}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewValidator_RegistersEventLevelTag(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("%s tag is not registered: %v", EVENT_LEVEL_TAG, r)
		}
	}()

	validate := NewValidator()
	if err := validate.Var(types.LevelBeginner, EVENT_LEVEL_TAG); err != nil {
		t.Errorf("expected %q to pass, got %v", types.LevelBeginner, err)
	}
	if err := validate.Var("Pro", EVENT_LEVEL_TAG); err == nil {
		t.Errorf("expected %q to fail", "Pro")
	}
}
