package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/models"
	ucBooking "github.com/agendaly/salon-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serve a superfície pública (cliente final), sem
// autenticação: catálogo, horários livres e criação/cancelamento de
// reservas através do slug do estabelecimento.
type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucBooking.CreateBooking
	cancelUC       *ucBooking.CancelBooking
	availabilityUC *ucBooking.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	availabilityUC *ucBooking.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		cancelUC:       cancelUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicBookingRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	// Sem campo de desconto: desconto é prerrogativa do painel
	// autenticado, nunca do cliente anônimo.
	LocationType string  `json:"location_type"`
	HomeAddress  string  `json:"home_address"`
	DistanceKm   float64 `json:"distance_km"`

	Notes string `json:"notes"`
}

type PublicCancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) GetEstablishment(c *gin.Context) {
	est, ok := h.loadEstablishment(c)
	if !ok {
		return
	}

	httpresp.OK(c, gin.H{
		"id":       est.ID,
		"name":     est.Name,
		"slug":     est.Slug,
		"timezone": est.Timezone,
		"address":  est.Address,
		"phone":    est.Phone,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	est, ok := h.loadEstablishment(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("establishment_id = ? AND active = ?", est.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	est, ok := h.loadEstablishment(c)
	if !ok {
		return
	}

	type professionalDTO struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var pros []professionalDTO
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("establishment_id = ? AND active = ?", est.ID, true).
		Where("role IN ?", []string{models.RoleProfessional, models.RoleManager}).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, pros)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	est, ok := h.loadEstablishment(c)
	if !ok {
		return
	}

	professionalID, _ := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	serviceID, _ := strconv.ParseUint(c.Query("service_id"), 10, 64)
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil || professionalID == 0 || serviceID == 0 {
		httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		EstablishmentID: &est.ID,
		ProfessionalID:  uint(professionalID),
		ServiceID:       uint(serviceID),
		Date:            date,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_list_availability", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// BOOKING
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	est, ok := h.loadEstablishment(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		EstablishmentID: &est.ID,
		ProfessionalID:  &req.ProfessionalID,

		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,

		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,

		LocationType: req.LocationType,
		HomeAddress:  req.HomeAddress,
		DistanceKm:   req.DistanceKm,

		Notes: req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_booking", "Erro ao criar reserva.")
		return
	}

	httpresp.Created(c, gin.H{
		"booking_code":     ap.BookingCode,
		"status":           ap.Status,
		"scheduled_at":     ap.ScheduledAt,
		"scheduled_end_at": ap.ScheduledEndAt,
		"total":            ap.Total,
	})
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	code := c.Param("code")

	var ap models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Service").
		Where("booking_code = ?", code).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{
		"booking_code":     ap.BookingCode,
		"status":           ap.Status,
		"scheduled_at":     ap.ScheduledAt,
		"scheduled_end_at": ap.ScheduledEndAt,
		"service":          ap.Service.Name,
		"total":            ap.Total,
	})
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	code := c.Param("code")

	var req PublicCancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.ExecuteByCode(c.Request.Context(), code, req.Reason)
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_booking", "Erro ao cancelar reserva.")
		return
	}

	httpresp.OK(c, gin.H{
		"booking_code": ap.BookingCode,
		"status":       ap.Status,
		"cancelled_at": ap.CancelledAt,
	})
}

// ------------------------------------------------------

func (h *PublicHandler) loadEstablishment(c *gin.Context) (*models.Establishment, bool) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", slug).
		First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	return &est, true
}
