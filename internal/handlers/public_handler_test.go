package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/infra/repository"
	"github.com/agendaly/salon-platform/internal/models"
	ucBooking "github.com/agendaly/salon-platform/internal/usecase/booking"
)

type publicEnv struct {
	db     *gorm.DB
	router *gin.Engine

	est models.Establishment
	pro models.User
	svc models.Service
}

func setupPublicEnv(t *testing.T) *publicEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Establishment{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.ServicePriceOverride{},
		&models.EstablishmentUser{},
		&models.WorkingHours{},
		&models.ProfessionalServiceZone{},
		&models.Appointment{},
		&models.Transaction{},
		&models.LoyaltyPoint{},
		&models.LoyaltyPointTransaction{},
		&models.AuditLog{},
	))

	e := &publicEnv{db: db}

	e.est = models.Establishment{
		Name:            "Studio Publico",
		Slug:            "studio-publico",
		Timezone:        "UTC",
		MinBookingHours: 2,
	}
	require.NoError(t, db.Create(&e.est).Error)

	e.pro = models.User{
		EstablishmentID: &e.est.ID,
		Name:            "Profissional Publico",
		Email:           "pro@studio-publico.com",
		PasswordHash:    "x",
		Role:            models.RoleProfessional,
		Active:          true,
	}
	require.NoError(t, db.Create(&e.pro).Error)

	e.svc = models.Service{
		EstablishmentID: &e.est.ID,
		Name:            "Corte",
		DurationMinutes: 60,
		BasePrice:       mustDec(t, "100.00"),
		Active:          true,
	}
	require.NoError(t, db.Create(&e.svc).Error)

	for weekday := 0; weekday < 7; weekday++ {
		require.NoError(t, db.Create(&models.WorkingHours{
			ProfessionalID: e.pro.ID,
			Weekday:        weekday,
			StartTime:      "00:00",
			EndTime:        "23:59",
			Active:         true,
		}).Error)
	}

	repo := repository.NewBookingGormRepository(db)
	dispatcher := events.NewDispatcher()
	availCache := cache.NewAvailabilityCache(nil)

	handler := NewPublicHandler(
		db,
		ucBooking.NewCreateBooking(repo, dispatcher, availCache),
		ucBooking.NewCancelBooking(repo, dispatcher, availCache),
		ucBooking.NewGetAvailability(repo, availCache),
	)

	e.router = gin.New()
	public := e.router.Group("/api/public")
	public.POST("/:slug/bookings", handler.CreateBooking)

	return e
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// A superfície pública não aceita desconto: qualquer valor enviado pelo
// cliente anônimo é ignorado e a reserva sai pelo preço cheio.
func TestPublicCreateBooking_IgnoresClientDiscount(t *testing.T) {
	e := setupPublicEnv(t)

	date := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	body, err := json.Marshal(map[string]any{
		"professional_id": e.pro.ID,
		"service_id":      e.svc.ID,
		"date":            date,
		"time":            "10:00",
		"customer_name":   "Maria Souza",
		"customer_phone":  "+5511988887777",
		"discount":        "100.00",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/public/studio-publico/bookings",
		bytes.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ap models.Appointment
	require.NoError(t, e.db.Where("professional_id = ?", e.pro.ID).First(&ap).Error)
	assert.True(t, ap.Discount.IsZero())
	assert.True(t, ap.Total.Equal(mustDec(t, "100.00")))
}
