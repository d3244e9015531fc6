package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotValues(slots []Slot) []string {
	values := make([]string, 0, len(slots))
	for _, s := range slots {
		values = append(values, s.Value)
	}
	return values
}

func TestPartitionWindow(t *testing.T) {
	step := 30 * time.Minute

	t.Run("exact multiple", func(t *testing.T) {
		slots := partitionWindow("09:00", "11:00", step)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotValues(slots))
	})

	t.Run("partial trailing slot dropped", func(t *testing.T) {
		slots := partitionWindow("09:00", "10:45", step)
		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotValues(slots))
	})

	t.Run("window shorter than step", func(t *testing.T) {
		slots := partitionWindow("09:00", "09:15", step)
		assert.Empty(t, slots)
	})

	t.Run("inverted window", func(t *testing.T) {
		slots := partitionWindow("11:00", "09:00", step)
		assert.Empty(t, slots)
	})

	t.Run("malformed times", func(t *testing.T) {
		assert.Empty(t, partitionWindow("nine", "11:00", step))
		assert.Empty(t, partitionWindow("09:00", "25:00", step))
	})

	t.Run("labels use 12-hour clock", func(t *testing.T) {
		slots := partitionWindow("11:30", "13:00", step)
		assert.Equal(t, []string{"11:30", "12:00", "12:30"}, slotValues(slots))
		assert.Equal(t, "11:30 AM", slots[0].Label)
		assert.Equal(t, "12:00 PM", slots[1].Label)
		assert.Equal(t, "12:30 PM", slots[2].Label)
	})

	t.Run("morning labels drop the leading zero", func(t *testing.T) {
		slots := partitionWindow("08:00", "08:30", step)
		assert.Equal(t, "8:00 AM", slots[0].Label)
	})

	t.Run("custom granularity", func(t *testing.T) {
		slots := partitionWindow("09:00", "10:00", 20*time.Minute)
		assert.Equal(t, []string{"09:00", "09:20", "09:40"}, slotValues(slots))
	})
}
