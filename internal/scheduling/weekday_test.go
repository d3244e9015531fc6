package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayName(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-06-01", "sunday"},
		{"2025-06-02", "monday"},
		{"2025-06-03", "tuesday"},
		{"2025-06-04", "wednesday"},
		{"2025-06-05", "thursday"},
		{"2025-06-06", "friday"},
		{"2025-06-07", "saturday"},
	}

	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, WeekdayName(d), "date %s", tc.date)
	}
}
