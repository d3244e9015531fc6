package scheduling

import (
	"strings"
	"time"
)

// WeekdayName returns the lowercase English day name for t ("sunday" ..
// "saturday"). Schedule rows store day_of_week in exactly this form, so the
// derivation is deliberately locale-independent.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
