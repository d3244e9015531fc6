package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// ErrDuplicateSlot is returned by Create when the slot's unique key is
// already held by a non-cancelled appointment.
var ErrDuplicateSlot = errors.New("slot already booked")

// AppointmentRepository provides data access for appointments.
type AppointmentRepository interface {
	// Create inserts the appointment. The caller must have stamped the slot
	// key (HoldSlot); a concurrent insert for the same slot fails with
	// ErrDuplicateSlot via the unique index, never with two successes.
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// BookedTimes returns the appointment_time values already consumed by
	// non-cancelled appointments for the doctor on the given date.
	BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id string) error
}

type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo creates a gorm-backed AppointmentRepository.
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

const mysqlDupEntry = 1062

func (r *appointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	err := r.db.WithContext(ctx).Create(appointment).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlot
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry {
		return ErrDuplicateSlot
	}
	return err
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("appointment_date asc, appointment_time asc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepo) BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), models.StatusCancelled).
		Pluck("appointment_time", &times).Error
	return times, err
}

func (r *appointmentRepo) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error
}
