package repository

import (
	"gorm.io/gorm"
)

// Repository bundles every data-access interface so services take a single
// dependency.
type Repository struct {
	User        UserRepository
	Schedule    ScheduleRepository
	Appointment AppointmentRepository
}

// New wires the gorm-backed implementations.
func New(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Schedule:    NewScheduleRepo(db),
		Appointment: NewAppointmentRepo(db),
	}
}
