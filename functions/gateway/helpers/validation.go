package helpers

import (
	"fmt"

	"github.com/go-playground/validator"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// NewValidator returns a validator with the booking-specific tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(EVENT_LEVEL_TAG, validEventLevel); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", EVENT_LEVEL_TAG, err))
	}
	return v
}

func validEventLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case types.LevelBeginner, types.LevelIntermediate, types.LevelAdvanced, types.AllLevels:
		return true
	}
	return false
}
