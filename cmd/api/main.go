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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/config"
	"github.com/noah-isme/cinofilo-api/internal/database"
	"github.com/noah-isme/cinofilo-api/internal/handler"
	"github.com/noah-isme/cinofilo-api/internal/middleware"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
	"github.com/noah-isme/cinofilo-api/internal/router"
	"github.com/noah-isme/cinofilo-api/internal/service"
	"github.com/noah-isme/cinofilo-api/pkg/ai"
	cloud "github.com/noah-isme/cinofilo-api/pkg/cloudinary"
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

	if err := db.AutoMigrate(
		&models.Role{}, &models.Profile{}, &models.Dog{},
		&models.Course{}, &models.MaterialCategory{}, &models.Material{},
		&models.Class{}, &models.ClassStudent{}, &models.ClassDog{}, &models.Lesson{},
		&models.Quiz{}, &models.QuizSubmission{},
		&models.CaseStudy{}, &models.CaseStudyAttempt{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url missing, dashboard caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, domain events disabled")
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	var grader ai.Evaluator
	if cfg.OpenAIAPIKey != "" {
		openAIGrader, err := ai.NewOpenAIGrader(ai.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.AIModel,
			MaxTokens:   cfg.AIMaxTokens,
			Temperature: float32(cfg.AITemperature),
			Timeout:     cfg.EvaluationTimeout,
			Logger:      logger,
		})
		if err != nil {
			log.Fatalf("failed to create AI grader: %v", err)
		}
		grader = openAIGrader
	} else {
		logger.Warn().Msg("openai api key missing, case study evaluation disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	events := service.NewEventPublisher(natsConn, logger)

	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	classRepo := repository.NewClassRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	caseStudyRepo := repository.NewCaseStudyRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	authService := service.NewAuthService(profileRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	studentService := service.NewStudentService(profileRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, profileRepo, validate, logger)
	categoryService := service.NewCategoryService(categoryRepo, courseRepo, validate, logger)
	materialService := service.NewMaterialService(materialRepo, courseRepo, categoryRepo, validate, uploader, logger)
	dashboardService := service.NewDashboardService(classRepo, lessonRepo, caseStudyRepo, attemptRepo, redisClient, cfg.DashboardCacheTTL, logger)
	classService := service.NewClassService(classRepo, courseRepo, profileRepo, validate, events, dashboardService, logger)
	lessonService := service.NewLessonService(lessonRepo, classRepo, validate, logger)
	quizService := service.NewQuizService(quizRepo, courseRepo, validate, logger)
	caseStudyService := service.NewCaseStudyService(caseStudyRepo, attemptRepo, courseRepo, validate, logger)
	evaluationService := service.NewEvaluationService(caseStudyRepo, attemptRepo, grader, events, dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, studentService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		CategoryHandler:   handler.NewCategoryHandler(categoryService, logger),
		MaterialHandler:   handler.NewMaterialHandler(materialService, logger),
		ClassHandler:      handler.NewClassHandler(classService, logger),
		LessonHandler:     handler.NewLessonHandler(lessonService, logger),
		QuizHandler:       handler.NewQuizHandler(quizService, logger),
		CaseStudyHandler:  handler.NewCaseStudyHandler(caseStudyService, logger),
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

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
