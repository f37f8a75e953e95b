package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
	"github.com/agendaly/salon-platform/internal/timezone"
)

type EstablishmentHandler struct {
	db *gorm.DB
}

func NewEstablishmentHandler(db *gorm.DB) *EstablishmentHandler {
	return &EstablishmentHandler{db: db}
}

type UpdateEstablishmentRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	Timezone string `json:"timezone"`

	MinBookingHours   *int             `json:"min_booking_hours"`
	CancellationHours *int             `json:"cancellation_hours"`
	CancellationFee   *decimal.Decimal `json:"cancellation_fee"`
	NoShowFee         *decimal.Decimal `json:"no_show_fee"`
	PointsPerCurrency *int             `json:"points_per_currency"`
}

func (h *EstablishmentHandler) Get(c *gin.Context) {
	est, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, est)
}

func (h *EstablishmentHandler) Update(c *gin.Context) {
	est, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	if req.Name != "" {
		est.Name = req.Name
	}
	if req.Phone != "" {
		est.Phone = req.Phone
	}
	if req.Address != "" {
		est.Address = req.Address
	}
	if req.Timezone != "" {
		est.Timezone = req.Timezone
	}
	if req.MinBookingHours != nil && *req.MinBookingHours >= 0 {
		est.MinBookingHours = *req.MinBookingHours
	}
	if req.CancellationHours != nil && *req.CancellationHours >= 0 {
		est.CancellationHours = *req.CancellationHours
	}
	if req.CancellationFee != nil && !req.CancellationFee.IsNegative() {
		est.CancellationFee = *req.CancellationFee
	}
	if req.NoShowFee != nil && !req.NoShowFee.IsNegative() {
		est.NoShowFee = *req.NoShowFee
	}
	if req.PointsPerCurrency != nil && *req.PointsPerCurrency >= 0 {
		est.PointsPerCurrency = *req.PointsPerCurrency
	}

	if err := h.db.WithContext(c.Request.Context()).Save(est).Error; err != nil {
		httperr.Internal(c, "failed_to_update_establishment", "Erro ao atualizar estabelecimento.")
		return
	}

	httpresp.OK(c, est)
}

func (h *EstablishmentHandler) load(c *gin.Context) (*models.Establishment, bool) {
	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		httperr.BadRequest(c, "no_establishment", "Usuário não pertence a um estabelecimento.")
		return nil, false
	}

	var est models.Establishment
	if err := h.db.WithContext(c.Request.Context()).
		First(&est, *establishmentID).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	return &est, true
}
