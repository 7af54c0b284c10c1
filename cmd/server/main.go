package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clinic-scheduling-backend/internal/cache"
	"clinic-scheduling-backend/internal/config"
	"clinic-scheduling-backend/internal/database"
	"clinic-scheduling-backend/internal/events"
	"clinic-scheduling-backend/internal/handler"
	"clinic-scheduling-backend/internal/middleware"
	"clinic-scheduling-backend/internal/repository"
	"clinic-scheduling-backend/internal/service"
	"clinic-scheduling-backend/pkg/logger"
	"clinic-scheduling-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	logFormat := "json"
	if cfg.Server.GinMode != "release" {
		logFormat = "console"
	}
	logger.Init("info", logFormat)
	log := logger.Get()
	log.Info().Msg("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Dependent-view cache: Redis when reachable, in-memory otherwise
	var viewCache cache.Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache")
		viewCache = cache.NewMemoryCache()
	} else {
		viewCache = redisCache
	}

	// 5. Appointment event publisher; nil publisher is a no-op
	var publisher *events.Publisher
	if cfg.AMQP.URL != "" {
		publisher, err = events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("AMQP unavailable, appointment events disabled")
			publisher = nil
		}
	}

	// 6. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	clinicRepo := repository.NewClinicRepo(db)
	userClinicRepo := repository.NewUserClinicRepo(db)
	clientRepo := repository.NewClientRepo(db)
	professionalRepo := repository.NewProfessionalRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	personaRepo := repository.NewPersonaRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 7. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	tenantService := service.NewTenantService(userClinicRepo, userRepo)
	clinicService := service.NewClinicService(clinicRepo, userClinicRepo, tenantService, auditRepo)
	clientService := service.NewClientService(clientRepo)
	professionalService := service.NewProfessionalService(professionalRepo, auditRepo)
	personaService := service.NewPersonaService(personaRepo)
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		clientRepo,
		professionalRepo,
		viewCache,
		publisher,
	)
	reminderService := service.NewReminderService(appointmentRepo, publisher)

	// 8. Start reminder worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reminderService.Start(ctx)

	// 9. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 10. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	clinicHandler := handler.NewClinicHandler(clinicService)
	clientHandler := handler.NewClientHandler(clientService)
	professionalHandler := handler.NewProfessionalHandler(professionalService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	personaHandler := handler.NewPersonaHandler(personaService)
	integrationHandler := handler.NewIntegrationHandler(appointmentService, clientService)

	// 11. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-scheduling-backend",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Session routes (authenticated, active clinic resolved from cookie)
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.ActiveClinicMiddleware(clinicService))
	{
		api.GET("/clinics", clinicHandler.GetClinics)
		api.POST("/clinics", clinicHandler.CreateClinic)
		api.PUT("/clinics/active", clinicHandler.SwitchActiveClinic)

		tenant := api.Group("")
		tenant.Use(middleware.RequireActiveClinic(tenantService))
		{
			tenant.PUT("/clinics/:id", clinicHandler.UpdateClinic)
			tenant.PUT("/clinics/:id/operating-hours", clinicHandler.ReplaceOperatingHours)

			tenant.GET("/professionals", professionalHandler.GetProfessionals)
			tenant.POST("/professionals", professionalHandler.CreateProfessional)
			tenant.PUT("/professionals/:id", professionalHandler.UpdateProfessional)
			tenant.DELETE("/professionals/:id", professionalHandler.DeleteProfessional)

			tenant.GET("/clients", clientHandler.GetClients)
			tenant.POST("/clients", clientHandler.CreateClient)
			tenant.PUT("/clients/:id", clientHandler.UpdateClient)
			tenant.DELETE("/clients/:id", clientHandler.DeleteClient)

			tenant.GET("/appointments", appointmentHandler.ListAppointments)
			tenant.POST("/appointments", appointmentHandler.CreateAppointment)
			tenant.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
			tenant.PATCH("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
			tenant.POST("/appointments/:id/cancel", appointmentHandler.CancelAppointment)

			tenant.GET("/assistant-persona", personaHandler.GetPersona)
			tenant.PUT("/assistant-persona", personaHandler.UpsertPersona)
		}
	}

	// Automation routes (service-token gated)
	integrations := r.Group("/integrations/:provider")
	integrations.Use(middleware.ServiceTokenAuth(cfg.Integration.ServiceToken))
	{
		integrations.POST("/clinics/:clinicId/appointments", integrationHandler.CreateAppointment)
		integrations.POST("/clinics/:clinicId/appointments/:appointmentId/cancel", integrationHandler.CancelAppointment)
		integrations.POST("/clinics/:clinicId/clients", integrationHandler.UpsertClient)
	}

	// 12. Setup graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Cancel reminder worker context
	cancel()
	if publisher != nil {
		_ = publisher.Close()
	}
	log.Info().Msg("Server exited")
}
