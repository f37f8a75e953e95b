package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
)

type ZoneHandler struct {
	db *gorm.DB
}

func NewZoneHandler(db *gorm.DB) *ZoneHandler {
	return &ZoneHandler{db: db}
}

type ZoneRequest struct {
	ZoneType  string  `json:"zone_type" binding:"required,oneof=fixed_location service_area home_service_only"`
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	RadiusKm  float64 `json:"radius_km" binding:"min=0"`
	Active    *bool   `json:"active"`
}

func (h *ZoneHandler) List(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var zones []models.ProfessionalServiceZone
	if err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", professionalID).
		Find(&zones).Error; err != nil {
		httperr.Internal(c, "failed_to_list_zones", "Erro ao listar zonas de atendimento.")
		return
	}

	httpresp.List(c, zones)
}

func (h *ZoneHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	zone := models.ProfessionalServiceZone{
		ProfessionalID: professionalID,
		ZoneType:       req.ZoneType,
		CenterLat:      req.CenterLat,
		CenterLng:      req.CenterLng,
		RadiusKm:       req.RadiusKm,
		Active:         true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&zone).Error; err != nil {
		httperr.Internal(c, "failed_to_create_zone", "Erro ao criar zona de atendimento.")
		return
	}

	httpresp.Created(c, zone)
}

func (h *ZoneHandler) Update(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var zone models.ProfessionalServiceZone
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND professional_id = ?", id, professionalID).
		First(&zone).Error; err != nil {
		httperr.NotFound(c, "zone_not_found", "Zona de atendimento não encontrada.")
		return
	}

	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	zone.ZoneType = req.ZoneType
	zone.CenterLat = req.CenterLat
	zone.CenterLng = req.CenterLng
	zone.RadiusKm = req.RadiusKm
	if req.Active != nil {
		zone.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&zone).Error; err != nil {
		httperr.Internal(c, "failed_to_update_zone", "Erro ao atualizar zona de atendimento.")
		return
	}

	httpresp.OK(c, zone)
}
