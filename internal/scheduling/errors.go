package scheduling

import "errors"

// Business-rule errors raised by the booking coordinator. The slot resolver
// never raises these: an empty slot list is data, not failure.
var (
	ErrSlotUnavailable  = errors.New("slot is no longer available")
	ErrPastDate         = errors.New("appointment date is in the past")
	ErrTermsNotAccepted = errors.New("terms and conditions must be accepted")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrInvalidBooker    = errors.New("booker identity is missing or incomplete")
)
