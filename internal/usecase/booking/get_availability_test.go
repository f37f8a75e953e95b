package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/models"
)

func TestGetAvailability_ListsFreeSlots(t *testing.T) {
	e := setupEnv(t)
	uc := NewGetAvailability(e.repo, e.cache)

	// expediente curto para o dia consultado
	day := time.Now().UTC().AddDate(0, 0, 3)
	require.NoError(t, e.db.
		Model(&models.WorkingHours{}).
		Where("professional_id = ? AND weekday = ?", e.pro.ID, int(day.Weekday())).
		Updates(map[string]any{"start_time": "09:00", "end_time": "12:00"}).Error)

	// 10:00-11:00 ocupado
	occupied := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.UTC)
	e.seedAppointment(t, string(domain.StatusConfirmed), occupied)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  e.pro.ID,
		ServiceID:       e.svc.ID,
		Date:            day,
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}

	// 09:00 livre; 10:00 ocupado; 11:00 cai no buffer de 15min
	assert.Equal(t, []string{"09:00"}, starts)
}

func TestGetAvailability_InactiveWeekdayEmpty(t *testing.T) {
	e := setupEnv(t)
	uc := NewGetAvailability(e.repo, e.cache)

	day := time.Now().UTC().AddDate(0, 0, 3)
	require.NoError(t, e.db.
		Model(&models.WorkingHours{}).
		Where("professional_id = ? AND weekday = ?", e.pro.ID, int(day.Weekday())).
		Update("active", false).Error)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  e.pro.ID,
		ServiceID:       e.svc.ID,
		Date:            day,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_ServesFromCache(t *testing.T) {
	e := setupEnv(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	availCache := cache.NewAvailabilityCache(rdb)
	uc := NewGetAvailability(e.repo, availCache)

	day := time.Now().UTC().AddDate(0, 0, 3)
	require.NoError(t, e.db.
		Model(&models.WorkingHours{}).
		Where("professional_id = ? AND weekday = ?", e.pro.ID, int(day.Weekday())).
		Updates(map[string]any{"start_time": "09:00", "end_time": "11:00"}).Error)

	in := domain.AvailabilityInput{
		EstablishmentID: &e.est.ID,
		ProfessionalID:  e.pro.ID,
		ServiceID:       e.svc.ID,
		Date:            day,
	}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// novo agendamento sem invalidação: a resposta em cache ainda vale
	occupied := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
	e.seedAppointment(t, string(domain.StatusConfirmed), occupied)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// a invalidação derruba o cache e o conflito aparece
	availCache.Invalidate(context.Background(), e.pro.ID)

	third, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, third, 0)
}
