package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

type stubResolver struct {
	slots       []scheduling.Slot
	err         error
	gotDoctorID string
	gotDate     time.Time
}

func (s *stubResolver) AvailableSlots(_ context.Context, doctorID string, date time.Time) ([]scheduling.Slot, error) {
	s.gotDoctorID = doctorID
	s.gotDate = date
	return s.slots, s.err
}

type stubCoordinator struct {
	appointment *models.Appointment
	err         error
	got         scheduling.BookingRequest
	called      bool
}

func (s *stubCoordinator) Book(_ context.Context, req scheduling.BookingRequest) (*models.Appointment, error) {
	s.called = true
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.appointment, nil
}

func newBookingRouter(resolver *stubResolver, coordinator *stubCoordinator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAppointmentHandler(nil, resolver, coordinator)

	router := gin.New()
	router.GET("/api/v1/booking/slots", handler.GetAvailableSlots)
	router.POST("/api/v1/booking/appointments", handler.CreateAppointment)
	return router
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.ResponseData {
	t.Helper()
	var body utils.ResponseData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetAvailableSlots_Success(t *testing.T) {
	resolver := &stubResolver{slots: []scheduling.Slot{
		{Value: "09:00", Label: "9:00 AM"},
		{Value: "09:30", Label: "9:30 AM"},
	}}
	router := newBookingRouter(resolver, &stubCoordinator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/slots?doctorId=doc-1&date=2025-06-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doc-1", resolver.gotDoctorID)
	assert.Equal(t, "2025-06-02", resolver.gotDate.Format("2006-01-02"))

	body := decodeResponse(t, rec)
	slots, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, slots, 2)
	first, ok := slots[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "09:00", first["value"])
	assert.Equal(t, "9:00 AM", first["label"])
}

func TestGetAvailableSlots_MissingDoctorID(t *testing.T) {
	router := newBookingRouter(&stubResolver{}, &stubCoordinator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/slots?date=2025-06-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailableSlots_InvalidDate(t *testing.T) {
	router := newBookingRouter(&stubResolver{}, &stubCoordinator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/slots?doctorId=doc-1&date=June-2nd", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func postAppointment(router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/appointments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validPatientPayload() map[string]interface{} {
	return map[string]interface{}{
		"doctorId":      "doc-1",
		"date":          "2025-06-02",
		"time":          "09:00",
		"patientId":     "pat-1",
		"reason":        "Checkup",
		"termsAccepted": true,
	}
}

func TestCreateAppointment_PatientSuccess(t *testing.T) {
	coordinator := &stubCoordinator{appointment: &models.Appointment{
		BaseModel: models.BaseModel{ID: "appt-1"},
		Status:    models.StatusPending,
	}}
	router := newBookingRouter(&stubResolver{}, coordinator)

	rec := postAppointment(router, validPatientPayload())

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, coordinator.called)
	assert.Equal(t, "doc-1", coordinator.got.DoctorID)
	assert.Equal(t, "09:00", coordinator.got.SlotValue)
	assert.Equal(t, scheduling.PatientBooker{PatientID: "pat-1"}, coordinator.got.Booker)
	assert.True(t, coordinator.got.TermsAccepted)

	body := decodeResponse(t, rec)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "appt-1", data["appointmentId"])
	assert.Equal(t, string(models.StatusPending), data["status"])
}

func TestCreateAppointment_GuestSuccess(t *testing.T) {
	coordinator := &stubCoordinator{appointment: &models.Appointment{
		BaseModel: models.BaseModel{ID: "appt-2"},
		Status:    models.StatusPending,
	}}
	router := newBookingRouter(&stubResolver{}, coordinator)

	payload := validPatientPayload()
	delete(payload, "patientId")
	payload["guest"] = map[string]interface{}{
		"name":  "Jan Kowalski",
		"phone": "+48 600 000 000",
		"email": "jan@example.com",
	}

	rec := postAppointment(router, payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, scheduling.GuestBooker{
		Name:  "Jan Kowalski",
		Phone: "+48 600 000 000",
		Email: "jan@example.com",
	}, coordinator.got.Booker)
}

func TestCreateAppointment_BothBookersRejected(t *testing.T) {
	coordinator := &stubCoordinator{}
	router := newBookingRouter(&stubResolver{}, coordinator)

	payload := validPatientPayload()
	payload["guest"] = map[string]interface{}{
		"name":  "Jan Kowalski",
		"phone": "+48 600 000 000",
	}

	rec := postAppointment(router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, coordinator.called)
}

func TestCreateAppointment_NoBookerRejected(t *testing.T) {
	coordinator := &stubCoordinator{}
	router := newBookingRouter(&stubResolver{}, coordinator)

	payload := validPatientPayload()
	delete(payload, "patientId")

	rec := postAppointment(router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, coordinator.called)
}

func TestCreateAppointment_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"slot unavailable", scheduling.ErrSlotUnavailable, http.StatusConflict},
		{"past date", scheduling.ErrPastDate, http.StatusUnprocessableEntity},
		{"terms not accepted", scheduling.ErrTermsNotAccepted, http.StatusBadRequest},
		{"invalid booker", scheduling.ErrInvalidBooker, http.StatusBadRequest},
		{"doctor not found", scheduling.ErrDoctorNotFound, http.StatusNotFound},
		{"patient not found", scheduling.ErrPatientNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newBookingRouter(&stubResolver{}, &stubCoordinator{err: tc.err})

			rec := postAppointment(router, validPatientPayload())

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestCreateAppointment_InvalidDate(t *testing.T) {
	coordinator := &stubCoordinator{}
	router := newBookingRouter(&stubResolver{}, coordinator)

	payload := validPatientPayload()
	payload["date"] = "02-06-2025"

	rec := postAppointment(router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, coordinator.called)
}
