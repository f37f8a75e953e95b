package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/agendaly/salon-platform/internal/commission"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AgreementHandler gerencia os acordos de comissão entre o
// estabelecimento e seus profissionais. A regra central: no máximo UM
// acordo ativo por (estabelecimento, profissional) a qualquer momento —
// ativar um novo encerra o anterior na mesma transação.
type AgreementHandler struct {
	db *gorm.DB
}

func NewAgreementHandler(db *gorm.DB) *AgreementHandler {
	return &AgreementHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type AgreementRequest struct {
	UserID uint `json:"user_id" binding:"required"`

	Role           string `json:"role"`
	EmploymentType string `json:"employment_type"`

	CommissionModel      string          `json:"commission_model" binding:"required,oneof=percentage tiered fixed_per_service salary_plus booth_rental salary_only"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	CommissionTiers      datatypes.JSON  `json:"commission_tiers"`

	FixedAmountPerService decimal.Decimal `json:"fixed_amount_per_service"`
	BaseSalary            decimal.Decimal `json:"base_salary"`
	BoothRentalFee        decimal.Decimal `json:"booth_rental_fee"`

	TipsIncludedInCommission *bool `json:"tips_included_in_commission"`

	StartDate string `json:"start_date" binding:"required"`
}

// ======================================================
// OPERATIONS
// ======================================================

func (h *AgreementHandler) List(c *gin.Context) {
	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		httperr.BadRequest(c, "no_establishment", "Usuário não pertence a um estabelecimento.")
		return
	}

	query := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Where("establishment_id = ?", *establishmentID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var agreements []models.EstablishmentUser
	if err := query.Order("start_date DESC").Find(&agreements).Error; err != nil {
		httperr.Internal(c, "failed_to_list_agreements", "Erro ao listar acordos.")
		return
	}

	httpresp.List(c, agreements)
}

// Create registra um novo acordo já ativo. Qualquer acordo ativo
// anterior do mesmo profissional é encerrado com end_date na véspera do
// novo start_date, preservando o histórico para liquidações passadas.
func (h *AgreementHandler) Create(c *gin.Context) {
	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		httperr.BadRequest(c, "no_establishment", "Usuário não pertence a um estabelecimento.")
		return
	}

	var req AgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Data de início inválida.")
		return
	}

	if req.CommissionModel == models.CommissionTiered {
		if _, err := commission.ParseTiers(req.CommissionTiers); err != nil {
			httperr.BadRequest(c, "invalid_commission_tiers", "Faixas de comissão inválidas.")
			return
		}
	}

	tipsIncluded := true
	if req.TipsIncludedInCommission != nil {
		tipsIncluded = *req.TipsIncludedInCommission
	}

	agreement := models.EstablishmentUser{
		EstablishmentID: *establishmentID,
		UserID:          req.UserID,

		Role:           req.Role,
		EmploymentType: req.EmploymentType,

		CommissionModel:      req.CommissionModel,
		CommissionPercentage: req.CommissionPercentage,
		CommissionTiers:      req.CommissionTiers,

		FixedAmountPerService: req.FixedAmountPerService,
		BaseSalary:            req.BaseSalary,
		BoothRentalFee:        req.BoothRentalFee,

		TipsIncludedInCommission: tipsIncluded,

		Status:    models.AgreementActive,
		StartDate: startDate,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		endDate := startDate.AddDate(0, 0, -1)

		if err := tx.Model(&models.EstablishmentUser{}).
			Where("establishment_id = ? AND user_id = ? AND status = ?",
				*establishmentID, req.UserID, models.AgreementActive).
			Updates(map[string]any{
				"status":   models.AgreementInactive,
				"end_date": endDate,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&agreement).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_agreement", "Erro ao criar acordo.")
		return
	}

	httpresp.Created(c, agreement)
}

// Terminate encerra um acordo ativo a partir de hoje.
func (h *AgreementHandler) Terminate(c *gin.Context) {
	establishmentID := middleware.EstablishmentID(c)
	if establishmentID == nil {
		httperr.BadRequest(c, "no_establishment", "Usuário não pertence a um estabelecimento.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var agreement models.EstablishmentUser
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND establishment_id = ?", id, *establishmentID).
		First(&agreement).Error; err != nil {
		httperr.NotFound(c, "agreement_not_found", "Acordo não encontrado.")
		return
	}

	if agreement.Status != models.AgreementActive {
		httperr.BadRequest(c, "agreement_not_active", "Acordo já está encerrado.")
		return
	}

	now := time.Now()
	agreement.Status = models.AgreementInactive
	agreement.EndDate = &now

	if err := h.db.WithContext(c.Request.Context()).Save(&agreement).Error; err != nil {
		httperr.Internal(c, "failed_to_terminate_agreement", "Erro ao encerrar acordo.")
		return
	}

	httpresp.OK(c, agreement)
}
