package scheduling

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"clinic-app-server/internal/repository"
)

// SlotResolver computes the bookable slots for a doctor on a calendar date.
// It is stateless and read-only, so any number of requests may resolve
// concurrently.
type SlotResolver struct {
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	slotLength   time.Duration
	logger       *zap.Logger
}

// NewSlotResolver creates a SlotResolver with the given slot granularity.
func NewSlotResolver(repo *repository.Repository, slotLength time.Duration, logger *zap.Logger) *SlotResolver {
	return &SlotResolver{
		schedules:    repo.Schedule,
		appointments: repo.Appointment,
		slotLength:   slotLength,
		logger:       logger,
	}
}

// AvailableSlots returns the ordered open slots for the doctor on date.
// An unknown doctor or a weekday without availability yields an empty list,
// never an error. Overlapping availability windows collapse to one slot per
// value.
func (r *SlotResolver) AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]Slot, error) {
	day := WeekdayName(date)

	windows, err := r.schedules.ListForWeekday(ctx, doctorID, day)
	if err != nil {
		r.logger.Error("failed to load availability windows",
			zap.String("doctorId", doctorID), zap.String("dayOfWeek", day), zap.Error(err))
		return nil, err
	}
	if len(windows) == 0 {
		// No availability for this weekday; skip the appointment query.
		return []Slot{}, nil
	}

	seen := make(map[string]Slot)
	for _, w := range windows {
		for _, s := range partitionWindow(w.StartTime, w.EndTime, r.slotLength) {
			seen[s.Value] = s
		}
	}

	booked, err := r.appointments.BookedTimes(ctx, doctorID, date)
	if err != nil {
		r.logger.Error("failed to load booked times",
			zap.String("doctorId", doctorID), zap.Error(err))
		return nil, err
	}
	for _, t := range booked {
		delete(seen, t)
	}

	slots := make([]Slot, 0, len(seen))
	for _, s := range seen {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Value < slots[j].Value })

	return slots, nil
}
