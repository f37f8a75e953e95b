package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
	ucLoyalty "github.com/agendaly/salon-platform/internal/usecase/loyalty"
)

// ======================================================
// HANDLER
// ======================================================

type LoyaltyHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	redeemUC *ucLoyalty.RedeemPoints
}

func NewLoyaltyHandler(
	db *gorm.DB,
	repo domain.Repository,
	redeemUC *ucLoyalty.RedeemPoints,
) *LoyaltyHandler {
	return &LoyaltyHandler{db: db, repo: repo, redeemUC: redeemUC}
}

type RedeemPointsRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	Points      int    `json:"points" binding:"required,min=1"`
	Description string `json:"description"`
}

// ======================================================
// BALANCE / HISTORY
// ======================================================

func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	lp, ok := h.loadBalance(c)
	if !ok {
		return
	}

	httpresp.OK(c, lp)
}

func (h *LoyaltyHandler) ListHistory(c *gin.Context) {
	lp, ok := h.loadBalance(c)
	if !ok {
		return
	}

	rows, err := h.repo.ListLoyaltyTransactions(c.Request.Context(), lp.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_history", "Erro ao listar extrato de pontos.")
		return
	}

	// extrato mais recente primeiro
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	httpresp.List(c, rows)
}

// ======================================================
// REDEEM
// ======================================================

func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	var req RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var professionalID *uint
	if establishmentID == nil {
		professionalID = &userID
	}

	lp, err := h.redeemUC.Execute(
		c.Request.Context(),
		req.CustomerID,
		establishmentID,
		professionalID,
		req.Points,
		req.Description,
	)
	if err != nil {
		writeBusinessError(c, err, "failed_to_redeem", "Erro ao resgatar pontos.")
		return
	}

	httpresp.OK(c, lp)
}

// ------------------------------------------------------

func (h *LoyaltyHandler) loadBalance(c *gin.Context) (*models.LoyaltyPoint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 64)
	if err != nil || customerID == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	query := h.db.WithContext(c.Request.Context()).
		Where("customer_id = ?", customerID)
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	} else {
		query = query.Where("professional_id = ?", userID)
	}

	var lp models.LoyaltyPoint
	if err := query.First(&lp).Error; err != nil {
		httperr.NotFound(c, "loyalty_not_found", "Cliente sem saldo de pontos.")
		return nil, false
	}
	return &lp, true
}
