package repository

import (
	"context"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// ScheduleRepository provides data access for doctor availability windows.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.DoctorSchedule) error
	GetByID(ctx context.Context, id string) (*models.DoctorSchedule, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error)
	// ListForWeekday returns only windows that are currently switched on.
	ListForWeekday(ctx context.Context, doctorID, dayOfWeek string) ([]models.DoctorSchedule, error)
	Update(ctx context.Context, schedule *models.DoctorSchedule) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates a gorm-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *models.DoctorSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	var schedules []models.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week asc, start_time asc").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListForWeekday(ctx context.Context, doctorID, dayOfWeek string) ([]models.DoctorSchedule, error) {
	var schedules []models.DoctorSchedule
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND day_of_week = ? AND is_available = ?", doctorID, dayOfWeek, true).
		Order("start_time asc").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *models.DoctorSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.DoctorSchedule{}, "id = ?", id).Error
}
