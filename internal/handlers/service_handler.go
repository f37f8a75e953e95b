package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
	"github.com/agendaly/salon-platform/internal/pricing"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`

	DurationMinutes   int `json:"duration_minutes" binding:"required,min=5"`
	BufferTimeMinutes int `json:"buffer_time_minutes" binding:"min=0"`

	BasePrice decimal.Decimal `json:"base_price" binding:"required"`

	HomeServiceSurcharge decimal.Decimal `json:"home_service_surcharge"`
	HomeServiceRadiusKm  float64         `json:"home_service_radius_km"`
	DeliveryTiers        datatypes.JSON  `json:"delivery_tiers"`

	Active *bool `json:"active"`
}

type PriceOverrideRequest struct {
	ProfessionalID uint            `json:"professional_id" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	query := h.scoped(c)

	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DeliveryTiers != nil {
		if _, err := pricing.ParseDeliveryTiers(req.DeliveryTiers); err != nil {
			httperr.BadRequest(c, "invalid_delivery_tiers", "Faixas de deslocamento inválidas.")
			return
		}
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,

		DurationMinutes:   req.DurationMinutes,
		BufferTimeMinutes: req.BufferTimeMinutes,

		BasePrice: req.BasePrice,

		HomeServiceSurcharge: req.HomeServiceSurcharge,
		HomeServiceRadiusKm:  req.HomeServiceRadiusKm,
		DeliveryTiers:        req.DeliveryTiers,

		Active: true,
	}

	if establishmentID != nil {
		svc.EstablishmentID = establishmentID
	} else {
		// serviço de profissional autônomo
		svc.ProfessionalID = &userID
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.DeliveryTiers != nil {
		if _, err := pricing.ParseDeliveryTiers(req.DeliveryTiers); err != nil {
			httperr.BadRequest(c, "invalid_delivery_tiers", "Faixas de deslocamento inválidas.")
			return
		}
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Category = req.Category
	svc.DurationMinutes = req.DurationMinutes
	svc.BufferTimeMinutes = req.BufferTimeMinutes
	svc.BasePrice = req.BasePrice
	svc.HomeServiceSurcharge = req.HomeServiceSurcharge
	svc.HomeServiceRadiusKm = req.HomeServiceRadiusKm
	svc.DeliveryTiers = req.DeliveryTiers
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, svc)
}

// Delete desativa o serviço em vez de removê-lo: agendamentos passados
// continuam referenciando o registro.
func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	svc.Active = false
	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Serviço desativado."})
}

// ======================================================
// PRICE OVERRIDES
// ======================================================

func (h *ServiceHandler) ListOverrides(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	var overrides []models.ServicePriceOverride
	if err := h.db.WithContext(c.Request.Context()).
		Where("service_id = ?", svc.ID).
		Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Erro ao listar preços.")
		return
	}

	httpresp.List(c, overrides)
}

func (h *ServiceHandler) SetOverride(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	var req PriceOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	override := models.ServicePriceOverride{
		ServiceID:      svc.ID,
		ProfessionalID: req.ProfessionalID,
		Price:          req.Price,
	}

	// upsert: um override por (serviço, profissional)
	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_id"}, {Name: "professional_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(&override).Error
	if err != nil {
		httperr.Internal(c, "failed_to_set_override", "Erro ao salvar preço.")
		return
	}

	httpresp.OK(c, override)
}

func (h *ServiceHandler) DeleteOverride(c *gin.Context) {
	svc, ok := h.loadService(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Param("professionalId"), 10, 64)
	if err != nil || professionalID == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Where("service_id = ? AND professional_id = ?", svc.ID, professionalID).
		Delete(&models.ServicePriceOverride{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_override", "Erro ao remover preço.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "override_not_found", "Preço específico não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Preço específico removido."})
}

// ------------------------------------------------------

// scoped restringe a consulta ao tenant do usuário autenticado.
func (h *ServiceHandler) scoped(c *gin.Context) *gorm.DB {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	query := h.db.WithContext(c.Request.Context()).Model(&models.Service{})
	if establishmentID != nil {
		return query.Where("establishment_id = ?", *establishmentID)
	}
	return query.Where("professional_id = ?", userID)
}

func (h *ServiceHandler) loadService(c *gin.Context) (*models.Service, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var svc models.Service
	if err := h.scoped(c).Where("id = ?", id).First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return nil, false
	}
	return &svc, true
}
