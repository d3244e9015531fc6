package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
)

// In-memory repository doubles. The appointment mock enforces slot-key
// uniqueness under a mutex, mirroring the unique index the real store
// relies on.

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByRole(_ context.Context, id string, role models.Role) (*models.User, error) {
	if u, ok := m.users[id]; ok && u.Role == role {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type mockScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]*models.DoctorSchedule
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*models.DoctorSchedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *models.DoctorSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	cp := *schedule
	m.schedules[schedule.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*models.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DoctorSchedule
	for _, s := range m.schedules {
		if s.DoctorID == doctorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListForWeekday(_ context.Context, doctorID, dayOfWeek string) ([]models.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DoctorSchedule
	for _, s := range m.schedules {
		if s.DoctorID == doctorID && s.DayOfWeek == dayOfWeek && s.IsAvailable {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *models.DoctorSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *schedule
	m.schedules[schedule.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

type mockAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appointment.SlotKey != nil {
		for _, a := range m.appointments {
			if a.SlotKey != nil && *a.SlotKey == *appointment.SlotKey {
				return repository.ErrDuplicateSlot
			}
		}
	}
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	cp := *appointment
	m.appointments[appointment.ID] = &cp
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) ListAll(_ context.Context) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if a.PatientID != nil && *a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) BookedTimes(_ context.Context, doctorID string, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := date.Format("2006-01-02")
	var out []string
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate.Format("2006-01-02") == day && a.Status != models.StatusCancelled {
			out = append(out, a.AppointmentTime)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *appointment
	m.appointments[appointment.ID] = &cp
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appointments, id)
	return nil
}
