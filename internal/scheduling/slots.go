package scheduling

import (
	"fmt"
	"time"
)

// Slot is one bookable time unit. Value is the machine-sortable 24h form
// ("09:30"); Label is the 12-hour display form ("9:30 AM").
type Slot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const clockLayout = "15:04"

// parseClock parses an "HH:MM" wall-clock string.
func parseClock(s string) (time.Time, error) {
	return time.Parse(clockLayout, s)
}

// ValidateWindow checks that start and end are "HH:MM" wall-clock strings
// with start strictly before end.
func ValidateWindow(start, end string) error {
	s, err := parseClock(start)
	if err != nil {
		return fmt.Errorf("invalid start time %q: expected HH:MM", start)
	}
	e, err := parseClock(end)
	if err != nil {
		return fmt.Errorf("invalid end time %q: expected HH:MM", end)
	}
	if !s.Before(e) {
		return fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return nil
}

// partitionWindow splits [start, end) into step-sized slots. A trailing
// remainder shorter than step is dropped: slots never extend past end.
// Malformed or inverted windows yield no slots.
func partitionWindow(start, end string, step time.Duration) []Slot {
	s, err := parseClock(start)
	if err != nil {
		return nil
	}
	e, err := parseClock(end)
	if err != nil {
		return nil
	}
	if !s.Before(e) {
		return nil
	}

	var slots []Slot
	for t := s; !t.Add(step).After(e); t = t.Add(step) {
		slots = append(slots, Slot{
			Value: t.Format(clockLayout),
			Label: t.Format("3:04 PM"),
		})
	}
	return slots
}
