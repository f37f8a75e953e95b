package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agendaly/salon-platform/internal/models"
)

type Repository interface {
	// InTx runs fn against a repository bound to one database transaction.
	// Nested calls reuse the surrounding transaction.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Establishment --------
	GetEstablishmentByID(
		ctx context.Context,
		id uint,
	) (*models.Establishment, error)

	GetEstablishmentBySlug(
		ctx context.Context,
		slug string,
	) (*models.Establishment, error)

	// -------- Service catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetPriceOverride(
		ctx context.Context,
		serviceID uint,
		professionalID uint,
	) (*models.ServicePriceOverride, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// LockProfessional takes the professional's user row FOR UPDATE,
	// serializing concurrent availability checks even when the requested
	// window has no appointment rows to lock. Only meaningful inside
	// InTx, before the busy-interval read.
	LockProfessional(
		ctx context.Context,
		id uint,
	) error

	GetServiceZone(
		ctx context.Context,
		professionalID uint,
	) (*models.ProfessionalServiceZone, error)

	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		establishmentID *uint,
		professionalID *uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Agreement --------
	GetActiveAgreement(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
		at time.Time,
	) (*models.EstablishmentUser, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForProfessional(
		ctx context.Context,
		appointmentID uint,
		professionalID uint,
	) (*models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	// ListBusyIntervals returns calendar-blocking windows with their
	// service buffers, ordered by start.
	ListBusyIntervals(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]BusyInterval, error)

	// LockBusyIntervals is ListBusyIntervals with the professional's
	// appointment rows locked FOR UPDATE. Only meaningful inside InTx.
	LockBusyIntervals(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]BusyInterval, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Settlement --------
	// SumSettledRevenue totals the professional's settled appointment
	// revenue at the establishment inside [start, end), the tiered
	// commission period-to-date base.
	SumSettledRevenue(
		ctx context.Context,
		establishmentID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) (decimal.Decimal, error)

	CreateTransaction(
		ctx context.Context,
		tx *models.Transaction,
	) error

	GetTransactionByCode(
		ctx context.Context,
		code string,
	) (*models.Transaction, error)

	UpdateTransaction(
		ctx context.Context,
		tx *models.Transaction,
	) error

	// -------- Loyalty --------
	GetOrCreateLoyalty(
		ctx context.Context,
		customerID uint,
		establishmentID *uint,
		professionalID *uint,
	) (*models.LoyaltyPoint, error)

	SaveLoyalty(
		ctx context.Context,
		lp *models.LoyaltyPoint,
	) error

	CreateLoyaltyTransaction(
		ctx context.Context,
		lt *models.LoyaltyPointTransaction,
	) error

	// ListLoyaltyTransactions returns the full ledger in apply order
	// (oldest first): replaying the deltas rebuilds the balance.
	ListLoyaltyTransactions(
		ctx context.Context,
		loyaltyPointID uint,
	) ([]models.LoyaltyPointTransaction, error)
}
