package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

// SlotResolver computes open slots for a doctor on a date.
type SlotResolver interface {
	AvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]scheduling.Slot, error)
}

// BookingCoordinator validates and commits booking requests.
type BookingCoordinator interface {
	Book(ctx context.Context, req scheduling.BookingRequest) (*models.Appointment, error)
}

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments repository.AppointmentRepository
	Resolver     SlotResolver
	Coordinator  BookingCoordinator
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments repository.AppointmentRepository, resolver SlotResolver, coordinator BookingCoordinator) *AppointmentHandler {
	return &AppointmentHandler{
		Appointments: appointments,
		Resolver:     resolver,
		Coordinator:  coordinator,
	}
}

const dateLayout = "2006-01-02"

// GetAvailableSlots handles the public slot query for the booking page.
// Query params: doctorId, date (ISO 8601 date). An unknown doctor or a day
// without availability returns an empty list.
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		utils.BadRequest(c, "doctorId query parameter is required")
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		utils.BadRequest(c, "date must be a valid YYYY-MM-DD date")
		return
	}

	slots, err := h.Resolver.AvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute available slots: "+err.Error())
		return
	}

	utils.Success(c, "Available slots fetched successfully", slots)
}

// GuestDetails carries the contact fields for unauthenticated bookers.
type GuestDetails struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CreateAppointmentRequest represents the request body for booking a slot.
// Exactly one of patientId or guest identifies the booker.
type CreateAppointmentRequest struct {
	DoctorID         string        `json:"doctorId" binding:"required"`
	Date             string        `json:"date" binding:"required"`
	Time             string        `json:"time" binding:"required"`
	PatientID        string        `json:"patientId"`
	Guest            *GuestDetails `json:"guest"`
	ConsultationType string        `json:"consultationType"`
	Reason           string        `json:"reason"`
	TermsAccepted    bool          `json:"termsAccepted"`
}

// CreateAppointmentResponse represents the response body for a successful booking.
type CreateAppointmentResponse struct {
	AppointmentID string                   `json:"appointmentId"`
	Status        models.AppointmentStatus `json:"status"`
}

// CreateAppointment handles booking a slot. The slot list shown to the user
// is never trusted; the coordinator re-resolves availability at commit time.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.BadRequest(c, "date must be a valid YYYY-MM-DD date")
		return
	}

	if (req.PatientID == "") == (req.Guest == nil) {
		utils.BadRequest(c, "Provide exactly one of patientId or guest details")
		return
	}

	var booker scheduling.Booker
	if req.PatientID != "" {
		booker = scheduling.PatientBooker{PatientID: req.PatientID}
	} else {
		booker = scheduling.GuestBooker{
			Name:  req.Guest.Name,
			Phone: req.Guest.Phone,
			Email: req.Guest.Email,
		}
	}

	appointment, err := h.Coordinator.Book(c.Request.Context(), scheduling.BookingRequest{
		DoctorID:         req.DoctorID,
		Date:             date,
		SlotValue:        req.Time,
		Booker:           booker,
		ConsultationType: req.ConsultationType,
		Reason:           req.Reason,
		TermsAccepted:    req.TermsAccepted,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotUnavailable):
			utils.Conflict(c, "The selected slot is no longer available. Please choose another slot.")
		case errors.Is(err, scheduling.ErrPastDate):
			utils.UnprocessableEntity(c, "Appointments cannot be booked for past dates.")
		case errors.Is(err, scheduling.ErrTermsNotAccepted):
			utils.BadRequest(c, "You must accept the terms and conditions to book.")
		case errors.Is(err, scheduling.ErrInvalidBooker):
			utils.BadRequest(c, "Booker details are missing or incomplete.")
		case errors.Is(err, scheduling.ErrDoctorNotFound):
			utils.NotFound(c, "Doctor not found")
		case errors.Is(err, scheduling.ErrPatientNotFound):
			utils.NotFound(c, "Patient not found")
		default:
			utils.InternalServerError(c, "Failed to book appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment booked successfully. We will confirm it shortly.", CreateAppointmentResponse{
		AppointmentID: appointment.ID,
		Status:        appointment.Status,
	})
}

// GetAppointmentsForUser handles fetching appointments for the logged-in
// user (patient or doctor); admins see all appointments.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error

	switch userRole {
	case models.RolePatient:
		appointments, err = h.Appointments.ListByPatient(c.Request.Context(), userID)
	case models.RoleDoctor:
		appointments, err = h.Appointments.ListByDoctor(c.Request.Context(), userID)
	case models.RoleAdmin:
		appointments, err = h.Appointments.ListAll(c.Request.Context())
	default:
		utils.Forbidden(c, "User role not permitted to view appointments.")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient, the involved doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.loadInvolvedAppointment(c, c.Param("id"))
	if err != nil {
		return // response already written
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status       models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed cancelled"`
	MedicalNotes string                   `json:"medicalNotes"` // Doctor-authored; ignored for patients
}

// UpdateAppointmentStatus handles status transitions. Doctors confirm or
// cancel their own appointments, patients may only cancel theirs, admins may
// do either. Cancelling releases the slot for re-booking.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.loadInvolvedAppointment(c, c.Param("id"))
	if err != nil {
		return // response already written
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isPatientInvolved := appointment.PatientID != nil && *appointment.PatientID == userID
	if userRole == models.RolePatient && isPatientInvolved && req.Status != models.StatusCancelled {
		utils.Forbidden(c, "Patients can only cancel appointments.")
		return
	}

	if !appointment.Status.CanTransitionTo(req.Status) {
		utils.Conflict(c, "Cannot change status from "+string(appointment.Status)+" to "+string(req.Status))
		return
	}

	if req.Status == models.StatusCancelled {
		appointment.Cancel()
	} else {
		appointment.Status = req.Status
	}
	if req.MedicalNotes != "" && (userRole == models.RoleDoctor || userRole == models.RoleAdmin) {
		appointment.MedicalNotes = req.MedicalNotes
	}

	if err := h.Appointments.Update(c.Request.Context(), appointment); err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// DeleteAppointment handles removing an appointment record. Only cancelled
// appointments may be deleted; active bookings must be cancelled first.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointment, err := h.loadInvolvedAppointment(c, c.Param("id"))
	if err != nil {
		return // response already written
	}

	if appointment.Status != models.StatusCancelled {
		utils.Conflict(c, "Only cancelled appointments can be deleted.")
		return
	}

	if err := h.Appointments.Delete(c.Request.Context(), appointment.ID); err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// loadInvolvedAppointment fetches the appointment and enforces that the
// caller is the involved patient, the involved doctor, or an admin. On
// failure it writes the error response and returns a non-nil error.
func (h *AppointmentHandler) loadInvolvedAppointment(c *gin.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := h.Appointments.GetByID(c.Request.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isPatientInvolved := appointment.PatientID != nil && *appointment.PatientID == userID
	isDoctorInvolved := appointment.DoctorID == userID

	if userRole != models.RoleAdmin && !isPatientInvolved && !isDoctorInvolved {
		utils.Forbidden(c, "You are not authorized to access this appointment")
		return nil, errors.New("forbidden")
	}

	return appointment, nil
}
