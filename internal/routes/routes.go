package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/repository"
	"clinic-app-server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	repo := repository.New(db)

	slotLength := time.Duration(cfg.SlotDurationMinutes) * time.Minute
	resolver := scheduling.NewSlotResolver(repo, slotLength, logger)
	coordinator := scheduling.NewBookingCoordinator(resolver, repo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(repo.Schedule)
	appointmentHandler := handlers.NewAppointmentHandler(repo.Appointment, resolver, coordinator)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Booking flow for the public appointment page: guests browse
		// doctors, query open slots, and book without an account.
		bookingRoutes := public.Group("/booking")
		{
			bookingRoutes.GET("/doctors", userHandler.GetDoctors)
			bookingRoutes.GET("/doctors/:doctorId/schedules", scheduleHandler.GetSchedulesForDoctor)
			bookingRoutes.GET("/slots", appointmentHandler.GetAvailableSlots)
			bookingRoutes.POST("/appointments", appointmentHandler.CreateAppointment)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Patients for a doctor - accessible by doctors and admins
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Doctor schedule (weekly availability) routes
		scheduleRoutes := private.Group("/schedules")
		scheduleRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
		{
			scheduleRoutes.POST("", scheduleHandler.CreateSchedule)
			scheduleRoutes.GET("", scheduleHandler.GetMySchedules)
			scheduleRoutes.PUT("/:id", scheduleHandler.UpdateSchedule)
			scheduleRoutes.DELETE("/:id", scheduleHandler.DeleteSchedule)
		}

		// Appointment routes for the portal dashboards
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
