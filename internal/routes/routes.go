package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/agendaly/salon-platform/internal/audit"
	"github.com/agendaly/salon-platform/internal/config"
	"github.com/agendaly/salon-platform/internal/events"
	"github.com/agendaly/salon-platform/internal/handlers"
	"github.com/agendaly/salon-platform/internal/infra/cache"
	"github.com/agendaly/salon-platform/internal/infra/repository"
	"github.com/agendaly/salon-platform/internal/middleware"
	ucBooking "github.com/agendaly/salon-platform/internal/usecase/booking"
	ucLoyalty "github.com/agendaly/salon-platform/internal/usecase/loyalty"
)

// RegisterRoutes monta todas as dependências e expõe a API.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// --------------------------------------------------
	// Infra
	// --------------------------------------------------
	repo := repository.NewBookingGormRepository(db)
	availCache := cache.NewAvailabilityCache(rdb)

	auditLogger := audit.New(db)
	dispatcher := events.NewDispatcher(
		events.NewLogSink(),
		audit.NewSink(auditLogger),
	)

	// --------------------------------------------------
	// Use cases
	// --------------------------------------------------
	createUC := ucBooking.NewCreateBooking(repo, dispatcher, availCache)
	confirmUC := ucBooking.NewConfirmBooking(repo, dispatcher)
	startUC := ucBooking.NewStartAppointment(repo, dispatcher)
	completeUC := ucBooking.NewCompleteAppointment(repo, dispatcher, availCache, cfg.PlatformFeePercent)
	cancelUC := ucBooking.NewCancelBooking(repo, dispatcher, availCache)
	noShowUC := ucBooking.NewMarkNoShow(repo, dispatcher, availCache)
	rescheduleUC := ucBooking.NewRescheduleBooking(repo, dispatcher, availCache)
	availabilityUC := ucBooking.NewGetAvailability(repo, availCache)
	listByDateUC := ucBooking.NewListAppointmentsByDate(repo)
	listByMonthUC := ucBooking.NewListAppointmentsByMonth(repo)
	refundUC := ucBooking.NewRefundTransaction(repo)
	redeemUC := ucLoyalty.NewRedeemPoints(repo)

	// --------------------------------------------------
	// Handlers
	// --------------------------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC, confirmUC, startUC, completeUC, cancelUC,
		noShowUC, rescheduleUC, availabilityUC, listByDateUC, listByMonthUC,
	)
	publicHandler := handlers.NewPublicHandler(db, createUC, cancelUC, availabilityUC)
	serviceHandler := handlers.NewServiceHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	zoneHandler := handlers.NewZoneHandler(db)
	agreementHandler := handlers.NewAgreementHandler(db)
	transactionHandler := handlers.NewTransactionHandler(db, refundUC)
	loyaltyHandler := handlers.NewLoyaltyHandler(db, repo, redeemUC)
	establishmentHandler := handlers.NewEstablishmentHandler(db)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// --------------------------------------------------
	// Rotas públicas
	// --------------------------------------------------
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	public := api.Group("/public")
	{
		public.GET("/bookings/:code", publicHandler.GetBooking)
		public.POST("/bookings/:code/cancel", publicHandler.CancelBooking)

		bySlug := public.Group("/:slug")
		{
			bySlug.GET("", publicHandler.GetEstablishment)
			bySlug.GET("/services", publicHandler.ListServices)
			bySlug.GET("/professionals", publicHandler.ListProfessionals)
			bySlug.GET("/availability", publicHandler.Availability)
			bySlug.POST("/bookings", publicHandler.CreateBooking)
		}
	}

	// --------------------------------------------------
	// Rotas autenticadas
	// --------------------------------------------------
	me := api.Group("/me", middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.Get)
		me.PATCH("", meHandler.Update)
		me.POST("/password", meHandler.ChangePassword)

		me.GET("/establishment", establishmentHandler.Get)
		me.PATCH("/establishment", establishmentHandler.Update)

		me.GET("/services", serviceHandler.List)
		me.POST("/services", serviceHandler.Create)
		me.PUT("/services/:id", serviceHandler.Update)
		me.DELETE("/services/:id", serviceHandler.Delete)
		me.GET("/services/:id/overrides", serviceHandler.ListOverrides)
		me.PUT("/services/:id/overrides", serviceHandler.SetOverride)
		me.DELETE("/services/:id/overrides/:professionalId", serviceHandler.DeleteOverride)

		me.GET("/working-hours", workingHoursHandler.List)
		me.PUT("/working-hours", workingHoursHandler.Upsert)

		me.GET("/zones", zoneHandler.List)
		me.POST("/zones", zoneHandler.Create)
		me.PUT("/zones/:id", zoneHandler.Update)

		me.GET("/agreements", agreementHandler.List)
		me.POST("/agreements", agreementHandler.Create)
		me.POST("/agreements/:id/terminate", agreementHandler.Terminate)

		me.GET("/availability", appointmentHandler.Availability)
		me.GET("/appointments", appointmentHandler.ListByDate)
		me.GET("/appointments/month", appointmentHandler.ListByMonth)
		me.POST("/appointments", appointmentHandler.Create)
		me.POST("/appointments/:id/confirm", appointmentHandler.Confirm)
		me.POST("/appointments/:id/start", appointmentHandler.Start)
		me.POST("/appointments/:id/complete", appointmentHandler.Complete)
		me.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
		me.POST("/appointments/:id/no-show", appointmentHandler.NoShow)
		me.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)

		me.GET("/transactions", transactionHandler.List)
		me.GET("/transactions/summary", transactionHandler.Summary)
		me.POST("/transactions/:code/refund", transactionHandler.Refund)

		me.GET("/loyalty/:customerId", loyaltyHandler.GetBalance)
		me.GET("/loyalty/:customerId/history", loyaltyHandler.ListHistory)
		me.POST("/loyalty/redeem", loyaltyHandler.Redeem)

		me.GET("/audit-logs", auditLogsHandler.List)
	}
}
