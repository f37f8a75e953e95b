package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendaly/salon-platform/internal/domain/booking"
	"github.com/agendaly/salon-platform/internal/models"
)

// Fetch pad around the requested window when loading busy intervals, so
// buffers of minutes-scale never fall outside the candidate set.
const bufferFetchPad = 6 * time.Hour

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *BookingGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewBookingGormRepository(tx))
	})
}

// --------------------------------------------------
// Establishment
// --------------------------------------------------

func (r *BookingGormRepository) GetEstablishmentByID(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *BookingGormRepository) GetEstablishmentBySlug(
	ctx context.Context,
	slug string,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&est).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetPriceOverride(
	ctx context.Context,
	serviceID uint,
	professionalID uint,
) (*models.ServicePriceOverride, error) {

	var ov models.ServicePriceOverride
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND professional_id = ?", serviceID, professionalID).
		First(&ov).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LockProfessional prende a linha do profissional FOR UPDATE. Com a agenda
// vazia na janela pedida o SELECT de conflitos não trava linha nenhuma, e
// duas criações concorrentes passariam as duas; a linha do usuário é o
// ponto fixo que serializa a checagem.
func (r *BookingGormRepository) LockProfessional(
	ctx context.Context,
	id uint,
) error {
	var user models.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, id).Error
}

func (r *BookingGormRepository) GetServiceZone(
	ctx context.Context,
	professionalID uint,
) (*models.ProfessionalServiceZone, error) {

	var zone models.ProfessionalServiceZone
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND active = ?", professionalID, true).
		First(&zone).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	establishmentID *uint,
	professionalID *uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	q := r.db.WithContext(ctx).Where("phone = ?", phone)
	if establishmentID != nil {
		q = q.Where("establishment_id = ?", *establishmentID)
	} else if professionalID != nil {
		q = q.Where("professional_id = ?", *professionalID)
	}

	var customer models.Customer
	if err := q.First(&customer).Error; err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		EstablishmentID: establishmentID,
		ProfessionalID:  professionalID,
		Name:            name,
		Phone:           phone,
		Email:           email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Agreement
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveAgreement(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	at time.Time,
) (*models.EstablishmentUser, error) {

	var agreement models.EstablishmentUser
	err := r.db.WithContext(ctx).
		Where(
			"establishment_id = ? AND user_id = ? AND status = ? AND start_date <= ?",
			establishmentID, professionalID, models.AgreementActive, at,
		).
		Where("end_date IS NULL OR end_date >= ?", at).
		First(&agreement).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) GetAppointmentForProfessional(
	ctx context.Context,
	appointmentID uint,
	professionalID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentByCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("booking_code = ?", code).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Busy intervals (conflict checks / slot listing)
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]domain.BusyInterval, error) {
	return r.busyIntervals(ctx, professionalID, start, end, false)
}

func (r *BookingGormRepository) LockBusyIntervals(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]domain.BusyInterval, error) {
	return r.busyIntervals(ctx, professionalID, start, end, true)
}

func (r *BookingGormRepository) busyIntervals(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
	lock bool,
) ([]domain.BusyInterval, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"professional_id = ? AND status IN ? AND scheduled_at < ? AND scheduled_end_at > ?",
			professionalID,
			domain.ActiveStatuses(),
			end,
			start.Add(-bufferFetchPad),
		).
		Order("scheduled_at ASC")

	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, domain.BusyInterval{
			AppointmentID: ap.ID,
			Start:         ap.ScheduledAt,
			End:           ap.ScheduledEndAt,
			BufferMinutes: ap.Service.BufferTimeMinutes,
		})
	}

	return busy, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"professional_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			professionalID,
			start,
			end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func (r *BookingGormRepository) SumSettledRevenue(
	ctx context.Context,
	establishmentID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) (decimal.Decimal, error) {

	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("SUM(total)").
		Where(
			"establishment_id = ? AND professional_id = ? AND type = ? AND status = ? AND created_at >= ? AND created_at < ?",
			establishmentID,
			professionalID,
			models.TxPayment,
			models.TxStatusCompleted,
			start,
			end,
		).
		Scan(&sum).Error

	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

func (r *BookingGormRepository) CreateTransaction(
	ctx context.Context,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *BookingGormRepository) GetTransactionByCode(
	ctx context.Context,
	code string,
) (*models.Transaction, error) {

	var tx models.Transaction
	if err := r.db.WithContext(ctx).
		Where("transaction_code = ?", code).
		First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *BookingGormRepository) UpdateTransaction(
	ctx context.Context,
	tx *models.Transaction,
) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// --------------------------------------------------
// Loyalty
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateLoyalty(
	ctx context.Context,
	customerID uint,
	establishmentID *uint,
	professionalID *uint,
) (*models.LoyaltyPoint, error) {

	q := r.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if establishmentID != nil {
		q = q.Where("establishment_id = ?", *establishmentID)
	} else if professionalID != nil {
		q = q.Where("professional_id = ?", *professionalID)
	}

	var lp models.LoyaltyPoint
	if err := q.First(&lp).Error; err == nil {
		return &lp, nil
	}

	lp = models.LoyaltyPoint{
		CustomerID:      customerID,
		EstablishmentID: establishmentID,
		ProfessionalID:  professionalID,
		Tier:            "bronze",
	}

	if err := r.db.WithContext(ctx).Create(&lp).Error; err != nil {
		return nil, err
	}

	return &lp, nil
}

func (r *BookingGormRepository) SaveLoyalty(
	ctx context.Context,
	lp *models.LoyaltyPoint,
) error {
	return r.db.WithContext(ctx).Save(lp).Error
}

func (r *BookingGormRepository) CreateLoyaltyTransaction(
	ctx context.Context,
	lt *models.LoyaltyPointTransaction,
) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *BookingGormRepository) ListLoyaltyTransactions(
	ctx context.Context,
	loyaltyPointID uint,
) ([]models.LoyaltyPointTransaction, error) {

	var rows []models.LoyaltyPointTransaction
	err := r.db.WithContext(ctx).
		Where("loyalty_point_id = ?", loyaltyPointID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
