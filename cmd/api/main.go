package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/config"
	"github.com/edupath-ng/edupath-go-api/internal/database"
	"github.com/edupath-ng/edupath-go-api/internal/handler"
	"github.com/edupath-ng/edupath-go-api/internal/mailer"
	"github.com/edupath-ng/edupath-go-api/internal/middleware"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
	"github.com/edupath-ng/edupath-go-api/internal/router"
	"github.com/edupath-ng/edupath-go-api/internal/service"
	cloud "github.com/edupath-ng/edupath-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("cloudinary not configured, uploads disabled")
	}

	smtpMailer, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromName:  cfg.AppName,
		FromEmail: cfg.SMTPFrom,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create mailer: %v", err)
	}
	dispatcher := mailer.NewAsync(smtpMailer, cfg.MailTimeout, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	adminTokens := service.NewTokenIssuer(cfg.AdminJWTSecret, service.TokenAudienceAdmin, cfg.TokenTTL)
	studentTokens := service.NewTokenIssuer(cfg.StudentJWTSecret, service.TokenAudienceStudent, cfg.TokenTTL)

	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	successStoryRepo := repository.NewSuccessStoryRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	studentService := service.NewStudentService(studentRepo, validate, dispatcher, studentTokens, logger)
	adminService := service.NewAdminService(adminRepo, validate, dispatcher, adminTokens, logger)
	blogService := service.NewBlogService(blogRepo, validate, redisClient, cfg.BlogCacheTTL, logger)
	testimonialService := service.NewTestimonialService(testimonialRepo, validate, logger)
	successStoryService := service.NewSuccessStoryService(successStoryRepo, validate, logger)

	deps := router.Dependencies{
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		AdminHandler:        handler.NewAdminHandler(adminService, logger),
		BlogHandler:         handler.NewBlogHandler(blogService, logger),
		TestimonialHandler:  handler.NewTestimonialHandler(testimonialService, logger),
		SuccessStoryHandler: handler.NewSuccessStoryHandler(successStoryService, logger),
	}
	if uploader != nil {
		uploadService := service.NewUploadService(uploader, mediaRepo, cfg.UploadMaxSizeMB, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
