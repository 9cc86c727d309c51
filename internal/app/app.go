package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contentHTTP "pompa-press/internal/controller/http"
	"pompa-press/internal/repo/persistent"
	"pompa-press/internal/usecase"
	"pompa-press/pkg/config"
	"pompa-press/pkg/imghost"
	"pompa-press/pkg/jwt"
	"pompa-press/pkg/logger"
	"pompa-press/pkg/mailer"
	"pompa-press/pkg/metrics"
	"pompa-press/pkg/middleware"
	"pompa-press/pkg/queue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "pompa-press/docs" // Swagger docs
)

func newImageHost(cfg *config.Config, log *logger.Logger) (imghost.Host, error) {
	switch cfg.ImageHostDriver {
	case "s3":
		return imghost.NewS3Host(cfg)
	case "imgbb":
		return imghost.NewImgBBHost(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown image host driver %q", cfg.ImageHostDriver)
	}
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	imageHost, err := newImageHost(cfg, log)
	if err != nil {
		log.Error("Failed to initialize image host: %v", err)
		panic(err)
	}
	smtpMailer := mailer.NewSMTPMailer(cfg)

	// Initialize repositories
	contentRepo := persistent.NewContentRepository(db)
	subscriberRepo := persistent.NewSubscriberRepository(db)
	newsletterRepo := persistent.NewNewsletterRepository(db)

	// Initialize use cases
	newsletterUseCase := usecase.NewNewsletterUseCase(newsletterRepo, subscriberRepo, contentRepo, smtpMailer, cfg, log)
	contentUseCase := usecase.NewContentUseCase(contentRepo, imageHost, queueClient, newsletterUseCase, cfg, log)
	visitUseCase := usecase.NewVisitUseCase(contentRepo, redisClient, cfg, log)
	subscriberUseCase := usecase.NewSubscriberUseCase(subscriberRepo, log)

	// Initialize HTTP handlers
	contentHandler := contentHTTP.NewContentHandler(contentUseCase, visitUseCase, log)
	subscriberHandler := contentHTTP.NewSubscriberHandler(subscriberUseCase, log)
	newsletterHandler := contentHTTP.NewNewsletterHandler(newsletterUseCase, log)

	// Drain publish events queued while the service was down
	if queueClient != nil {
		if err := queueClient.ConsumeTasks(newsletterUseCase.HandleDispatchTask); err != nil {
			log.Error("Failed to start newsletter consumer: %v", err)
		}
	}

	// Background jobs: nightly visit window sweep, hourly pending upload retry
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("15 3 * * *", func() {
		if _, err := visitUseCase.SweepStaleWindows(); err != nil {
			log.Error("Visit window sweep failed: %v", err)
		}
	}); err != nil {
		log.Error("Failed to schedule visit window sweep: %v", err)
	}
	if _, err := scheduler.AddFunc("@every 1h", func() {
		if _, err := contentUseCase.RetryPendingUploads(); err != nil {
			log.Error("Pending upload sweep failed: %v", err)
		}
	}); err != nil {
		log.Error("Failed to schedule pending upload sweep: %v", err)
	}
	if queueClient != nil {
		if _, err := scheduler.AddFunc("@every 1m", func() {
			pending, err := queueClient.QueueLength()
			if err != nil {
				log.Warn("Failed to inspect newsletter queue: %v", err)
				return
			}
			metrics.NewsletterQueueDepth.Set(float64(pending))
		}); err != nil {
			log.Error("Failed to schedule queue depth gauge: %v", err)
		}
	}
	scheduler.Start()

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 300, time.Minute))

	{
		api.GET("/contenidos", contentHandler.ListContents)
		api.GET("/contenidos/:id", contentHandler.GetContent)
		api.GET("/contenidos/slug/:slug", contentHandler.GetContentBySlug)
		api.GET("/contenidos/mas-visitados", contentHandler.MostVisited)
		api.GET("/contenidos/mas-leidos", contentHandler.MostRead)
		api.POST("/contenidos/:id/visita", contentHandler.RecordVisit)

		api.POST("/suscriptores", subscriberHandler.Subscribe)
		api.POST("/suscriptores/desuscribir/:token", subscriberHandler.Unsubscribe)
		api.PUT("/suscriptores/preferencias/:token", subscriberHandler.UpdatePreferences)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtService))

	{
		admin.POST("/contenidos", contentHandler.CreateContent)
		admin.PUT("/contenidos/:id", contentHandler.UpdateContent)
		admin.PATCH("/contenidos/:id/estado", contentHandler.ChangeEstado)
		admin.DELETE("/contenidos/:id", contentHandler.TrashContent)
		admin.DELETE("/contenidos/:id/definitivo", contentHandler.DeleteContent)
		admin.POST("/contenidos/:id/:kind/:slot", contentHandler.AttachMedia)
		admin.DELETE("/contenidos/:id/:kind/:slot", contentHandler.RemoveMedia)
		admin.POST("/contenidos/:id/reset-contadores", contentHandler.ResetCounters)
		admin.POST("/contenidos/reset-contadores", contentHandler.ResetCountersBulk)

		admin.GET("/newsletters", newsletterHandler.ListNewsletters)
		admin.GET("/newsletters/:id", newsletterHandler.GetNewsletter)
		admin.POST("/newsletters/:id/reenviar", newsletterHandler.Resend)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("pompa-press starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down pompa-press...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scheduler.Stop()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("pompa-press exited")
}
