package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

// Booker identifies who is booking an appointment: a registered patient or
// an unauthenticated guest. Exactly one variant applies per booking.
type Booker interface {
	isBooker()
}

// PatientBooker books on behalf of a registered patient account.
type PatientBooker struct {
	PatientID string
}

func (PatientBooker) isBooker() {}

// GuestBooker books without an account; name and phone are required,
// email is optional.
type GuestBooker struct {
	Name  string
	Phone string
	Email string
}

func (GuestBooker) isBooker() {}

// BookingRequest carries everything needed to commit one appointment.
type BookingRequest struct {
	DoctorID         string
	Date             time.Time
	SlotValue        string // "HH:MM", must match a resolver slot value
	Booker           Booker
	ConsultationType string
	Reason           string
	TermsAccepted    bool
}

// BookingCoordinator validates a booking request against the live slot state
// and commits the appointment. The insert is guarded by the slot's unique
// key, so the pre-check here is advisory and the database has the last word.
type BookingCoordinator struct {
	resolver     *SlotResolver
	users        repository.UserRepository
	appointments repository.AppointmentRepository
	now          func() time.Time
	logger       *zap.Logger
}

// NewBookingCoordinator creates a BookingCoordinator.
func NewBookingCoordinator(resolver *SlotResolver, repo *repository.Repository, logger *zap.Logger) *BookingCoordinator {
	return &BookingCoordinator{
		resolver:     resolver,
		users:        repo.User,
		appointments: repo.Appointment,
		now:          time.Now,
		logger:       logger,
	}
}

// Book validates the request and creates a pending appointment, or rejects
// with one of the scheduling errors. A lost race against a concurrent booker
// surfaces as the same ErrSlotUnavailable as a stale slot selection; the
// caller re-fetches the slot list either way.
func (b *BookingCoordinator) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if !req.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	appointment := &models.Appointment{
		DoctorID:         req.DoctorID,
		AppointmentDate:  dateOnly(req.Date),
		AppointmentTime:  req.SlotValue,
		Status:           models.StatusPending,
		ConsultationType: req.ConsultationType,
		Reason:           req.Reason,
	}

	switch booker := req.Booker.(type) {
	case PatientBooker:
		if booker.PatientID == "" {
			return nil, ErrInvalidBooker
		}
		if _, err := b.users.GetByRole(ctx, booker.PatientID, models.RolePatient); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPatientNotFound
			}
			return nil, err
		}
		patientID := booker.PatientID
		appointment.PatientID = &patientID
	case GuestBooker:
		if booker.Name == "" || booker.Phone == "" {
			return nil, ErrInvalidBooker
		}
		appointment.GuestName = booker.Name
		appointment.GuestPhone = booker.Phone
		appointment.GuestEmail = booker.Email
	default:
		return nil, ErrInvalidBooker
	}

	if _, err := b.users.GetByRole(ctx, req.DoctorID, models.RoleDoctor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	// Calendar-date comparison: same-day bookings stay allowed.
	if dateOnly(req.Date).Before(dateOnly(b.now())) {
		return nil, ErrPastDate
	}

	// Recompute the slot list at submit time; a list rendered on page load
	// may be stale by now.
	slots, err := b.resolver.AvailableSlots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, req.SlotValue) {
		return nil, ErrSlotUnavailable
	}

	appointment.HoldSlot()
	if err := b.appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			// Someone else won the race between the check above and the
			// insert.
			return nil, ErrSlotUnavailable
		}
		b.logger.Error("failed to create appointment",
			zap.String("doctorId", req.DoctorID), zap.Error(err))
		return nil, err
	}

	b.logger.Info("appointment booked",
		zap.String("appointmentId", appointment.ID),
		zap.String("doctorId", req.DoctorID),
		zap.String("date", appointment.AppointmentDate.Format("2006-01-02")),
		zap.String("time", appointment.AppointmentTime))

	return appointment, nil
}

func containsSlot(slots []Slot, value string) bool {
	for _, s := range slots {
		if s.Value == value {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
