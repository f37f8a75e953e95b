package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/infra/repository"
	"github.com/agendaly/salon-platform/internal/models"
)

// ======================================================
// TEST ENVIRONMENT
// ======================================================

type env struct {
	db         *gorm.DB
	repo       *repository.BookingGormRepository
	dispatcher *events.Dispatcher
	cache      *cache.AvailabilityCache

	est      models.Establishment
	pro      models.User
	svc      models.Service
	customer models.Customer
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// banco em memória nomeado por teste: o pool do GORM abre mais de
	// uma conexão, e sem cache=shared cada uma veria um banco vazio
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

	return db
}

// setupEnv seeds one establishment, one professional with full-week
// working hours, one service and one customer.
func setupEnv(t *testing.T) *env {
	t.Helper()

	db := newTestDB(t)

	e := &env{
		db:         db,
		repo:       repository.NewBookingGormRepository(db),
		dispatcher: events.NewDispatcher(),
		cache:      cache.NewAvailabilityCache(nil),
	}

	e.est = models.Establishment{
		Name:              "Studio Teste",
		Slug:              "studio-teste",
		Timezone:          "UTC",
		MinBookingHours:   2,
		CancellationHours: 24,
		CancellationFee:   dec("30.00"),
		NoShowFee:         dec("25.00"),
		PointsPerCurrency: 1,
	}
	require.NoError(t, db.Create(&e.est).Error)

	e.pro = models.User{
		EstablishmentID: &e.est.ID,
		Name:            "Profissional Teste",
		Email:           "pro@studio-teste.com",
		PasswordHash:    "x",
		Role:            models.RoleProfessional,
		Active:          true,
	}
	require.NoError(t, db.Create(&e.pro).Error)

	e.svc = models.Service{
		EstablishmentID:   &e.est.ID,
		Name:              "Corte",
		DurationMinutes:   60,
		BufferTimeMinutes: 15,
		BasePrice:         dec("100.00"),
		Active:            true,
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

	e.customer = models.Customer{
		EstablishmentID: &e.est.ID,
		Name:            "Cliente Teste",
		Phone:           "+5511999990000",
	}
	require.NoError(t, db.Create(&e.customer).Error)

	return e
}

// seedAgreement attaches an active percentage agreement to the default
// professional.
func (e *env) seedAgreement(t *testing.T, model string, percentage string) *models.EstablishmentUser {
	t.Helper()

	agreement := models.EstablishmentUser{
		EstablishmentID:          e.est.ID,
		UserID:                   e.pro.ID,
		CommissionModel:          model,
		CommissionPercentage:     dec(percentage),
		TipsIncludedInCommission: true,
		Status:                   models.AgreementActive,
		StartDate:                time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, e.db.Create(&agreement).Error)
	return &agreement
}

// seedAppointment inserts an appointment directly, bypassing the booking
// flow, for transition tests.
func (e *env) seedAppointment(t *testing.T, status string, scheduledAt time.Time) *models.Appointment {
	t.Helper()

	ap := models.Appointment{
		BookingCode:     domain.NewBookingCode(),
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerID:      e.customer.ID,
		ServiceID:       e.svc.ID,

		ScheduledAt:     scheduledAt,
		ScheduledEndAt:  scheduledAt.Add(time.Hour),
		DurationMinutes: 60,

		LocationType: models.LocationInStore,
		Status:       status,

		ServicePrice: dec("100.00"),
		Subtotal:     dec("100.00"),
		Total:        dec("100.00"),
	}
	require.NoError(t, e.db.Create(&ap).Error)
	return &ap
}

// futureSlot formats a date/time pair N days ahead at the given clock time.
func futureSlot(days int, hm string) (string, string) {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02"), hm
}

func (e *env) countTransactions(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Transaction{}).Count(&n).Error)
	return n
}
