package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

type fixture struct {
	users        *mockUserRepo
	schedules    *mockScheduleRepo
	appointments *mockAppointmentRepo
	resolver     *SlotResolver
	coordinator  *BookingCoordinator
}

// 2025-06-01 is a Sunday; 2025-06-02 is a Monday.
var (
	sunday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
)

func newFixture() *fixture {
	f := &fixture{
		users:        newMockUserRepo(),
		schedules:    newMockScheduleRepo(),
		appointments: newMockAppointmentRepo(),
	}
	repo := &repository.Repository{
		User:        f.users,
		Schedule:    f.schedules,
		Appointment: f.appointments,
	}
	logger := zap.NewNop()
	f.resolver = NewSlotResolver(repo, 30*time.Minute, logger)
	f.coordinator = NewBookingCoordinator(f.resolver, repo, logger)
	// Fixed clock: noon on the Sunday before the test Monday.
	f.coordinator.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func (f *fixture) addDoctor(id string) {
	f.users.users[id] = &models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.RoleDoctor,
	}
}

func (f *fixture) addPatient(id string) {
	f.users.users[id] = &models.User{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.RolePatient,
	}
}

func (f *fixture) addWindow(doctorID, day, start, end string) {
	f.schedules.schedules[doctorID+day+start] = &models.DoctorSchedule{
		BaseModel:   models.BaseModel{ID: doctorID + day + start},
		DoctorID:    doctorID,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func TestAvailableSlots_NoWindowForWeekday(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "09:00", "11:00")

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", sunday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_UnknownDoctor(t *testing.T) {
	f := newFixture()

	slots, err := f.resolver.AvailableSlots(context.Background(), "nobody", monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_SingleWindow(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "09:00", "11:00")

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotValues(slots))
}

func TestAvailableSlots_OverlappingWindowsDeduplicate(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "09:00", "11:00")
	f.addWindow("doc-1", models.Monday, "10:00", "12:00")

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotValues(slots))
}

func TestAvailableSlots_TwoBlocksSortedAcrossWindows(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	// Evening block inserted first; output must still be ascending.
	f.addWindow("doc-1", models.Monday, "17:00", "18:00")
	f.addWindow("doc-1", models.Monday, "09:00", "10:00")

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "17:00", "17:30"}, slotValues(slots))
}

func TestAvailableSlots_DisabledWindowIgnored(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "09:00", "11:00")
	f.schedules.schedules["off"] = &models.DoctorSchedule{
		BaseModel:   models.BaseModel{ID: "off"},
		DoctorID:    "doc-1",
		DayOfWeek:   models.Monday,
		StartTime:   "14:00",
		EndTime:     "16:00",
		IsAvailable: false,
	}

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotValues(slots))
}

func TestAvailableSlots_BookedSlotExcludedUntilCancelled(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "09:00", "11:00")

	appt := &models.Appointment{
		DoctorID:        "doc-1",
		AppointmentDate: monday,
		AppointmentTime: "09:30",
		Status:          models.StatusConfirmed,
	}
	appt.HoldSlot()
	require.NoError(t, f.appointments.Create(context.Background(), appt))

	slots, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, slotValues(slots))

	appt.Cancel()
	require.NoError(t, f.appointments.Update(context.Background(), appt))

	slots, err = f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotValues(slots))
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	f := newFixture()
	f.addDoctor("doc-1")
	f.addWindow("doc-1", models.Monday, "08:00", "12:00")

	first, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	second, err := f.resolver.AvailableSlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
