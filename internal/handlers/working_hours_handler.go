package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/httpresp"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingHoursEntry struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`
}

type WorkingHoursRequest struct {
	Entries []WorkingHoursEntry `json:"entries" binding:"required,dive"`
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Erro ao listar expediente.")
		return
	}

	httpresp.List(c, hours)
}

// Upsert substitui a grade semanal inteira: um registro por dia da semana.
func (h *WorkingHoursHandler) Upsert(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, entry := range req.Entries {
		if entry.Active && !validHoursEntry(entry) {
			httperr.BadRequest(c, "invalid_working_hours", "Horários de expediente inválidos.")
			return
		}
	}

	rows := make([]models.WorkingHours, 0, len(req.Entries))
	for _, entry := range req.Entries {
		rows = append(rows, models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        entry.Weekday,
			StartTime:      entry.StartTime,
			EndTime:        entry.EndTime,
			BreakStart:     entry.BreakStart,
			BreakEnd:       entry.BreakEnd,
			Active:         entry.Active,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	httpresp.List(c, rows)
}

func validHoursEntry(entry WorkingHoursEntry) bool {
	start, err := time.Parse("15:04", entry.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", entry.EndTime)
	if err != nil {
		return false
	}
	if !start.Before(end) {
		return false
	}

	if entry.BreakStart == "" && entry.BreakEnd == "" {
		return true
	}

	bs, err := time.Parse("15:04", entry.BreakStart)
	if err != nil {
		return false
	}
	be, err := time.Parse("15:04", entry.BreakEnd)
	if err != nil {
		return false
	}
	return bs.Before(be) && !bs.Before(start) && !be.After(end)
}
