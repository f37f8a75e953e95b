package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	ucBooking "github.com/agendaly/salon-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucBooking.CreateBooking
	confirmUC      *ucBooking.ConfirmBooking
	startUC        *ucBooking.StartAppointment
	completeUC     *ucBooking.CompleteAppointment
	cancelUC       *ucBooking.CancelBooking
	noShowUC       *ucBooking.MarkNoShow
	rescheduleUC   *ucBooking.RescheduleBooking
	availabilityUC *ucBooking.GetAvailability
	listByDateUC   *ucBooking.ListAppointmentsByDate
	listByMonthUC  *ucBooking.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	startUC *ucBooking.StartAppointment,
	completeUC *ucBooking.CompleteAppointment,
	cancelUC *ucBooking.CancelBooking,
	noShowUC *ucBooking.MarkNoShow,
	rescheduleUC *ucBooking.RescheduleBooking,
	availabilityUC *ucBooking.GetAvailability,
	listByDateUC *ucBooking.ListAppointmentsByDate,
	listByMonthUC *ucBooking.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		confirmUC:      confirmUC,
		startUC:        startUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		noShowUC:       noShowUC,
		rescheduleUC:   rescheduleUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`

	LocationType string          `json:"location_type"`
	HomeAddress  string          `json:"home_address"`
	DistanceKm   float64         `json:"distance_km"`
	Discount     decimal.Decimal `json:"discount"`

	Notes string `json:"notes"`
}

type CancelAppointmentRequest struct {
	By     string `json:"by" binding:"required,oneof=customer establishment"`
	Reason string `json:"reason"`
}

type CompleteAppointmentRequest struct {
	Tip decimal.Decimal `json:"tip"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  &professionalID,

		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,

		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,

		LocationType: req.LocationType,
		HomeAddress:  req.HomeAddress,
		DistanceKm:   req.DistanceKm,
		Discount:     req.Discount,

		Notes:   req.Notes,
		ActorID: &professionalID,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), professionalID, id)
	if err != nil {
		writeBusinessError(c, err, "failed_to_confirm", "Erro ao confirmar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	ap, err := h.startUC.Execute(c.Request.Context(), professionalID, id)
	if err != nil {
		writeBusinessError(c, err, "failed_to_start", "Erro ao iniciar atendimento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	var req CompleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, settlement, err := h.completeUC.Execute(c.Request.Context(), professionalID, id, req.Tip)
	if err != nil {
		writeBusinessError(c, err, "failed_to_complete", "Erro ao concluir atendimento.")
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": ap,
		"transaction": settlement,
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		professionalID,
		id,
		domain.CancelActor(req.By),
		req.Reason,
	)
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	ap, err := h.noShowUC.Execute(c.Request.Context(), professionalID, id)
	if err != nil {
		writeBusinessError(c, err, "failed_to_mark_no_show", "Erro ao registrar falta.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	id := h.paramID(c)
	if id == 0 {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), professionalID, id, req.Date, req.Time)
	if err != nil {
		writeBusinessError(c, err, "failed_to_reschedule", "Erro ao remarcar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LISTING / AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	serviceID, _ := strconv.ParseUint(c.Query("service_id"), 10, 64)
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil || serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  professionalID,
		ServiceID:       uint(serviceID),
		Date:            date,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_availability", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), professionalID, establishmentID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	if year == 0 || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), professionalID, establishmentID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) paramID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0
	}
	return uint(id)
}
