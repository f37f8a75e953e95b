package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/httperr"
	"github.com/agendaly/salon-platform/internal/models"
)

func TestCreateBooking_HappyPath(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	date, hm := futureSlot(3, "10:00")

	ap, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date,
		Time:            hm,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.True(t, strings.HasPrefix(ap.BookingCode, "BK-"))
	assert.True(t, ap.Total.Equal(dec("100.00")))
	assert.Equal(t, 60, ap.DurationMinutes)
	assert.Equal(t, ap.ScheduledAt.Add(time.Hour), ap.ScheduledEndAt)
	assert.Equal(t, models.LocationInStore, ap.LocationType)

	// cliente novo criado sob o tenant
	var customer models.Customer
	require.NoError(t, e.db.First(&customer, ap.CustomerID).Error)
	assert.Equal(t, "Maria Souza", customer.Name)
	require.NotNil(t, customer.EstablishmentID)
	assert.Equal(t, e.est.ID, *customer.EstablishmentID)
}

func TestCreateBooking_CustomerDedupByPhone(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	date1, hm1 := futureSlot(3, "10:00")
	date2, hm2 := futureSlot(4, "10:00")

	ap1, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date1,
		Time:            hm1,
	})
	require.NoError(t, err)

	ap2, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria S.",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date2,
		Time:            hm2,
	})
	require.NoError(t, err)

	assert.Equal(t, ap1.CustomerID, ap2.CustomerID)
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	date, _ := futureSlot(3, "10:00")

	base := CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date,
	}

	first := base
	first.Time = "10:00"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// mesma janela
	second := base
	second.Time = "10:00"
	_, err = uc.Execute(context.Background(), second)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// janela parcialmente sobreposta
	third := base
	third.Time = "10:30"
	_, err = uc.Execute(context.Background(), third)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

// O buffer do serviço (15min) mantém o intervalo 11:00-11:15 bloqueado
// depois de um atendimento 10:00-11:00.
func TestCreateBooking_BufferRespected(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	date, _ := futureSlot(3, "10:00")

	base := CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date,
	}

	first := base
	first.Time = "10:00"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	backToBack := base
	backToBack.Time = "11:00"
	_, err = uc.Execute(context.Background(), backToBack)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	afterBuffer := base
	afterBuffer.Time = "11:15"
	_, err = uc.Execute(context.Background(), afterBuffer)
	assert.NoError(t, err)
}

func TestCreateBooking_LeadTimeEnforced(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	soon := time.Now().UTC().Add(30 * time.Minute)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            soon.Format("2006-01-02"),
		Time:            soon.Format("15:04"),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon))
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	// profissional com expediente restrito
	restricted := models.User{
		EstablishmentID: &e.est.ID,
		Name:            "Profissional Manhã",
		Email:           "manha@studio-teste.com",
		PasswordHash:    "x",
		Active:          true,
	}
	require.NoError(t, e.db.Create(&restricted).Error)

	for weekday := 0; weekday < 7; weekday++ {
		require.NoError(t, e.db.Create(&models.WorkingHours{
			ProfessionalID: restricted.ID,
			Weekday:        weekday,
			StartTime:      "09:00",
			EndTime:        "12:00",
			Active:         true,
		}).Error)
	}

	date, _ := futureSlot(3, "")

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &restricted.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date,
		Time:            "14:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideWorkingHours))
}

func TestCreateBooking_UnknownService(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	date, hm := futureSlot(3, "10:00")

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       9999,
		Date:            date,
		Time:            hm,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_PriceOverrideApplied(t *testing.T) {
	e := setupEnv(t)
	uc := NewCreateBooking(e.repo, e.dispatcher, e.cache)

	require.NoError(t, e.db.Create(&models.ServicePriceOverride{
		ServiceID:      e.svc.ID,
		ProfessionalID: e.pro.ID,
		Price:          dec("120.00"),
	}).Error)

	date, hm := futureSlot(3, "10:00")

	ap, err := uc.Execute(context.Background(), CreateBookingInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  &e.pro.ID,
		CustomerName:    "Maria Souza",
		CustomerPhone:   "+5511988887777",
		ServiceID:       e.svc.ID,
		Date:            date,
		Time:            hm,
	})
	require.NoError(t, err)

	assert.True(t, ap.ServicePrice.Equal(dec("120.00")))
	assert.True(t, ap.Total.Equal(dec("120.00")))
}

func TestCreateBooking_LocksProfessionalRow(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	// a trava serializa mesmo com a agenda vazia: é a linha do usuário,
	// não as linhas de conflito, que segura a transação concorrente
	err := e.repo.InTx(ctx, func(txr domain.Repository) error {
		if err := txr.LockProfessional(ctx, e.pro.ID); err != nil {
			return err
		}
		busy, err := txr.LockBusyIntervals(ctx, e.pro.ID, time.Now(), time.Now().Add(time.Hour))
		if err != nil {
			return err
		}
		assert.Empty(t, busy)
		return nil
	})
	require.NoError(t, err)

	// profissional inexistente aborta a transação antes do insert
	err = e.repo.InTx(ctx, func(txr domain.Repository) error {
		return txr.LockProfessional(ctx, 99999)
	})
	assert.Error(t, err)
}
