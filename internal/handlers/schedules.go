package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

// ScheduleHandler handles doctor availability window requests.
type ScheduleHandler struct {
	Schedules repository.ScheduleRepository
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedules repository.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Schedules: schedules}
}

// CreateScheduleRequest represents the request body for declaring an
// availability window.
type CreateScheduleRequest struct {
	DoctorID    string `json:"doctorId"` // Admins may set this; doctors always create their own
	DayOfWeek   string `json:"dayOfWeek" binding:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

// CreateSchedule handles declaring a new weekly availability window.
// Doctors create windows for themselves; admins may create for any doctor.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	doctorID := userID
	if userRole == models.RoleAdmin {
		if req.DoctorID == "" {
			utils.BadRequest(c, "doctorId is required when creating a schedule as admin")
			return
		}
		doctorID = req.DoctorID
	} else if req.DoctorID != "" && req.DoctorID != userID {
		utils.Forbidden(c, "Doctors can only manage their own schedule.")
		return
	}

	if err := scheduling.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	schedule := models.DoctorSchedule{
		DoctorID:    doctorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: isAvailable,
	}

	if err := h.Schedules.Create(c.Request.Context(), &schedule); err != nil {
		utils.InternalServerError(c, "Failed to create schedule: "+err.Error())
		return
	}

	utils.Created(c, "Schedule created successfully", schedule)
}

// GetSchedulesForDoctor handles fetching every window declared by a doctor.
// The booking page uses this to show which weekdays a doctor works.
func (h *ScheduleHandler) GetSchedulesForDoctor(c *gin.Context) {
	doctorID := c.Param("doctorId")

	schedules, err := h.Schedules.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch schedules: "+err.Error())
		return
	}

	utils.Success(c, "Schedules fetched successfully", schedules)
}

// GetMySchedules handles fetching the authenticated doctor's own windows.
func (h *ScheduleHandler) GetMySchedules(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	schedules, err := h.Schedules.ListByDoctor(c.Request.Context(), userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch schedules: "+err.Error())
		return
	}

	utils.Success(c, "Schedules fetched successfully", schedules)
}

// UpdateScheduleRequest represents the request body for editing a window.
type UpdateScheduleRequest struct {
	DayOfWeek   string `json:"dayOfWeek" binding:"omitempty,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable *bool  `json:"isAvailable"`
}

// UpdateSchedule handles editing a window. Changes affect future slot
// computations only; existing appointments keep their times.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID := c.Param("id")

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	schedule, err := h.loadOwnedSchedule(c, scheduleID)
	if err != nil {
		return // response already written
	}

	if req.DayOfWeek != "" {
		schedule.DayOfWeek = req.DayOfWeek
	}
	if req.StartTime != "" {
		schedule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		schedule.EndTime = req.EndTime
	}
	if req.IsAvailable != nil {
		schedule.IsAvailable = *req.IsAvailable
	}

	if err := scheduling.ValidateWindow(schedule.StartTime, schedule.EndTime); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Schedules.Update(c.Request.Context(), schedule); err != nil {
		utils.InternalServerError(c, "Failed to update schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles removing a window.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID := c.Param("id")

	schedule, err := h.loadOwnedSchedule(c, scheduleID)
	if err != nil {
		return // response already written
	}

	if err := h.Schedules.Delete(c.Request.Context(), schedule.ID); err != nil {
		utils.InternalServerError(c, "Failed to delete schedule: "+err.Error())
		return
	}

	utils.Success(c, "Schedule deleted successfully", nil)
}

// loadOwnedSchedule fetches the schedule and enforces that the caller is its
// owning doctor or an admin. On failure it writes the error response and
// returns a non-nil error.
func (h *ScheduleHandler) loadOwnedSchedule(c *gin.Context, scheduleID string) (*models.DoctorSchedule, error) {
	schedule, err := h.Schedules.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && schedule.DoctorID != userID {
		utils.Forbidden(c, "You are not authorized to manage this schedule.")
		return nil, errors.New("forbidden")
	}

	return schedule, nil
}
