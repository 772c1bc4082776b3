package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dcet-prep/internal/adapter"
	"dcet-prep/internal/adapter/retrieval"
	"dcet-prep/internal/adapter/textgen"
	"dcet-prep/internal/cache"
	"dcet-prep/internal/config"
	"dcet-prep/internal/database"
	"dcet-prep/internal/domain"
	"dcet-prep/internal/handler"
	"dcet-prep/internal/logger"
	"dcet-prep/internal/mailer"
	"dcet-prep/internal/middleware"
	"dcet-prep/internal/repository"
	"dcet-prep/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with method, path, status and latency.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Successfully connected to Postgres")

	// Redis is optional: retrieval falls back to direct database reads
	// when no cache is reachable.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, retrieval cache disabled", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	materialRepository := repository.NewSQLXMaterialRepository(db)

	// LLM generator; the server still serves auth and material routes when
	// no usable API key is configured.
	generator := textgen.NewGroqGenerator(cfg.LLM, appLogger)
	if !generator.Available() {
		appLogger.Warn("Text generator unavailable, generation endpoints will report failure")
	}

	contextRetriever := retrieval.NewCachedRetriever(materialRepository, cacheAdapter, appLogger)

	appMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	if !appMailer.Configured() {
		appLogger.Warn("SMTP credentials missing, outgoing email disabled")
	}

	// Initialize services
	generationService := service.NewGenerationService(generator, contextRetriever)

	authService, err := service.NewAuthService(userRepository, appMailer, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	generationHandler := handler.NewGenerationHandler(generationService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	// Auth routes (public)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/admin-login", authHandler.AdminLogin)
	authGroup.Get("/verify-token", authHandler.VerifyToken)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", authHandler.ResetPassword)
	authGroup.Get("/verify-email/:token", authHandler.VerifyEmail)

	// Generation routes (protected)
	apiGroup := app.Group("/api", middleware.Protected(authService))
	apiGroup.Post("/quiz/generate", generationHandler.GenerateQuiz)
	apiGroup.Post("/flashcards/generate", generationHandler.GenerateFlashcards)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
