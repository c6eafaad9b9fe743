package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/domain/fiber/handler"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/fadilmartias/neuraview/internal/repository"
	"github.com/fadilmartias/neuraview/internal/service"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	uploadConfig := config.LoadUploadConfig()
	wizardConfig := config.LoadWizardConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(uploadConfig.MaxFileSize) + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	localUploads := service.NewUploadService(uploadConfig, appConfig.BaseURL)
	if err := localUploads.EnsureUploadDir(); err != nil {
		log.Fatal(err)
	}
	app.Static(service.UploadRoute, uploadConfig.Path)

	var uploader usecase.Uploader = localUploads
	if uploadConfig.GatewayURL != "" {
		uploader = service.NewUploadGatewayClient(uploadConfig.GatewayURL, wizardConfig.Timeout)
		log.Println("Wizard uploads go to the remote gateway")
	}

	extractor, err := newExtractor(ctx)
	if err != nil {
		log.Fatal(err)
	}

	store := newInterviewStore(wizardConfig.Timeout)
	interviews := usecase.NewInterviewUsecase(store, wizardConfig.Timeout)
	wizards := usecase.NewWizardManager(uploader, extractor, interviews, wizardConfig.Timeout, wizardConfig.SessionTTL)
	reports := usecase.NewReportUsecase(interviews, usecase.NewTaskStore())
	auth := service.NewAuthService(config.LoadAuthConfig())

	api := app.Group("/api", middleware.Authenticate(auth), middleware.RateLimiter(50, 1*time.Minute))
	handler.NewUploadHandler(localUploads).RegisterRoutes(api)
	handler.NewExtractorHandler(extractor).RegisterRoutes(api)
	handler.NewWizardHandler(wizards).RegisterRoutes(api)
	handler.NewInterviewHandler(interviews).RegisterRoutes(api)
	handler.NewReportHandler(reports).RegisterRoutes(api)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": appConfig.Name,
			"endpoints": []string{
				"POST /api/upload",
				"POST /api/resume-extractor",
				"POST /api/wizard",
				"POST /api/interviews",
				"GET /api/reports",
			},
		})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d, wizard sessions: %d", runtime.NumGoroutine(), wizards.Len())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newExtractor(ctx context.Context) (usecase.Extractor, error) {
	relayConfig := config.LoadRelayConfig()
	if relayConfig.Provider == config.ProviderGemini {
		log.Println("Resume extraction uses gemini")
		return service.NewGeminiService(ctx, config.LoadGeminiConfig(), relayConfig.Timeout)
	}
	if relayConfig.APIToken == "" {
		log.Println("Warning: AI_API_TOKEN not set")
	}
	return service.NewRelayService(relayConfig), nil
}

func newInterviewStore(timeout time.Duration) usecase.InterviewStore {
	cmsConfig := config.LoadCMSConfig()
	if cmsConfig.Enabled() {
		log.Println("Interview records live in Strapi at ", cmsConfig.URL)
		return service.NewStrapiService(cmsConfig, timeout)
	}
	return repository.NewInterviewRepository(ConnectDB())
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	logLevel := gormlogger.Info
	if appConfig.IsProduction() {
		logLevel = gormlogger.Warn
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		log.Printf("Could not enable pgcrypto: %v", err)
	}
	if err := db.AutoMigrate(&model.Interview{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
