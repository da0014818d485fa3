package helpers

import (
	"github.com/racquetek/booking-api/functions/gateway/types"
)

// IsEligible reports whether a member at userLevel may register for an event
// requiring levelRequired.
func IsEligible(levelRequired, userLevel string) bool {
	return levelRequired == types.AllLevels || levelRequired == userLevel
}
