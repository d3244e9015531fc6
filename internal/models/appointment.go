package models

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// CanTransitionTo reports whether the status may move to next.
// pending -> confirmed, pending/confirmed -> cancelled; cancelled is terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Appointment represents a booked consultation slot. The booker is either a
// registered patient (PatientID set) or a guest (guest contact fields set);
// the two are mutually exclusive.
type Appointment struct {
	BaseModel
	DoctorID         string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID        *string           `gorm:"size:36;index" json:"patientId,omitempty"`
	GuestName        string            `gorm:"size:100" json:"guestName,omitempty"`
	GuestPhone       string            `gorm:"size:30" json:"guestPhone,omitempty"`
	GuestEmail       string            `gorm:"size:255" json:"guestEmail,omitempty"`
	AppointmentDate  time.Time         `gorm:"type:date;index;not null" json:"appointmentDate"`
	AppointmentTime  string            `gorm:"size:5;not null" json:"appointmentTime"` // "HH:MM", a slot boundary
	Status           AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	ConsultationType string            `gorm:"size:50" json:"consultationType,omitempty"`
	Reason           string            `gorm:"size:255" json:"reason,omitempty"`
	MedicalNotes     string            `gorm:"type:text" json:"medicalNotes,omitempty"` // doctor-authored

	// SlotKey is "doctor|date|time" while the appointment holds its slot and
	// NULL once cancelled. The unique index over it is what makes two
	// concurrent bookings of the same slot impossible: MySQL unique indexes
	// ignore NULLs, so cancelled rows never block a re-booking.
	SlotKey *string `gorm:"size:80;uniqueIndex" json:"-"`

	Doctor  User  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient *User `gorm:"foreignKey:PatientID" json:"-"`
}

// SlotKeyFor builds the uniqueness key guarding one bookable slot.
func SlotKeyFor(doctorID string, date time.Time, slotTime string) string {
	return fmt.Sprintf("%s|%s|%s", doctorID, date.Format("2006-01-02"), slotTime)
}

// HoldSlot stamps the appointment with its slot key before insert.
func (a *Appointment) HoldSlot() {
	key := SlotKeyFor(a.DoctorID, a.AppointmentDate, a.AppointmentTime)
	a.SlotKey = &key
}

// Cancel marks the appointment cancelled and releases its slot for re-booking.
func (a *Appointment) Cancel() {
	a.Status = StatusCancelled
	a.SlotKey = nil
}
