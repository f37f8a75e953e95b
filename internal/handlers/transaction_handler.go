package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
	ucBooking "github.com/agendaly/salon-platform/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type TransactionHandler struct {
	db       *gorm.DB
	refundUC *ucBooking.RefundTransaction
}

func NewTransactionHandler(db *gorm.DB, refundUC *ucBooking.RefundTransaction) *TransactionHandler {
	return &TransactionHandler{db: db, refundUC: refundUC}
}

type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason"`
}

// ======================================================
// LISTING
// ======================================================

func (h *TransactionHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	query := h.db.WithContext(c.Request.Context()).Model(&models.Transaction{})
	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	} else {
		query = query.Where("professional_id = ?", userID)
	}

	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		query = query.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(200).Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar transações.")
		return
	}

	httpresp.List(c, transactions)
}

// Summary agrega o período: faturamento bruto, comissões, taxas e
// líquido do estabelecimento.
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := middleware.EstablishmentID(c)

	query := h.db.WithContext(c.Request.Context()).
		Model(&models.Transaction{}).
		Where("type = ? AND status IN ?", models.TxPayment,
			[]string{models.TxStatusCompleted, models.TxStatusPartiallyRefunded})

	if establishmentID != nil {
		query = query.Where("establishment_id = ?", *establishmentID)
	} else {
		query = query.Where("professional_id = ?", userID)
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		query = query.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var summary struct {
		Count           int64               `json:"count"`
		GrossTotal      decimal.NullDecimal `json:"-"`
		CommissionTotal decimal.NullDecimal `json:"-"`
		FeeTotal        decimal.NullDecimal `json:"-"`
		NetTotal        decimal.NullDecimal `json:"-"`
		RefundTotal     decimal.NullDecimal `json:"-"`
	}

	err := query.
		Select(`COUNT(*) AS count,
			SUM(total) AS gross_total,
			SUM(professional_commission) AS commission_total,
			SUM(platform_fee) AS fee_total,
			SUM(establishment_net) AS net_total,
			SUM(refund_amount) AS refund_total`).
		Scan(&summary).Error
	if err != nil {
		httperr.Internal(c, "failed_to_summarize", "Erro ao calcular resumo.")
		return
	}

	httpresp.OK(c, gin.H{
		"count":        summary.Count,
		"gross_total":  summary.GrossTotal.Decimal,
		"commissions":  summary.CommissionTotal.Decimal,
		"platform_fee": summary.FeeTotal.Decimal,
		"net_total":    summary.NetTotal.Decimal,
		"refunds":      summary.RefundTotal.Decimal,
	})
}

// ======================================================
// REFUND
// ======================================================

func (h *TransactionHandler) Refund(c *gin.Context) {
	code := c.Param("code")

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tx, err := h.refundUC.Execute(c.Request.Context(), code, req.Amount, req.Reason)
	if err != nil {
		writeBusinessError(c, err, "failed_to_refund", "Erro ao estornar transação.")
		return
	}

	httpresp.OK(c, tx)
}
