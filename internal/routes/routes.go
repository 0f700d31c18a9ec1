package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sharpfade/booking-api/internal/audit"
	"github.com/sharpfade/booking-api/internal/cache"
	"github.com/sharpfade/booking-api/internal/config"
	"github.com/sharpfade/booking-api/internal/handlers"
	infraRepo "github.com/sharpfade/booking-api/internal/infra/repository"
	"github.com/sharpfade/booking-api/internal/metrics"
	"github.com/sharpfade/booking-api/internal/middleware"
	"github.com/sharpfade/booking-api/internal/models"
	"github.com/sharpfade/booking-api/internal/timezone"
	ucBooking "github.com/sharpfade/booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(func(c *gin.Context) {
		metrics.IncHTTP(c.FullPath())
		c.Next()
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleCache := cache.NewScheduleCache(redisClient, cfg.ScheduleCacheTTL)
	bookingRepo := infraRepo.NewBookingGormRepository(db, scheduleCache)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// BOOKING USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, cfg.SlotGranularityMin)

	createUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		loc,
		cfg.MinAdvanceMin,
	)

	changeStatusUC := ucBooking.NewChangeStatus(bookingRepo, auditDispatcher)
	rescheduleUC := ucBooking.NewReschedule(bookingRepo, auditDispatcher)
	listUC := ucBooking.NewListAppointments(bookingRepo, loc)

	emergencyUC := ucBooking.NewHandleEmergency(
		bookingRepo,
		changeStatusUC,
		rescheduleUC,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(bookingRepo)

	appointmentHandler := handlers.NewAppointmentHandler(
		cfg,
		createUC,
		changeStatusUC,
		rescheduleUC,
		listUC,
	)

	publicHandler := handlers.NewPublicHandler(cfg, availabilityUC, createUC)
	emergencyHandler := handlers.NewEmergencyHandler(cfg, emergencyUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimitMiddleware(cfg))
		{
			publicAPI.GET("/services", serviceHandler.ListActive)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.Use(middleware.RequireRole(models.RoleBarber, models.RoleAdmin))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.POST("/me/emergency", emergencyHandler.Handle)
		}

		// ------------------------------
		// ADMIN API
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
