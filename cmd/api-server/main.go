package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/qutha/yamdb-final/database"
	"github.com/qutha/yamdb-final/internal/config"
	"github.com/qutha/yamdb-final/internal/handler"
	"github.com/qutha/yamdb-final/internal/mail"
	"github.com/qutha/yamdb-final/internal/middleware"
	"github.com/qutha/yamdb-final/internal/repository"
	"github.com/qutha/yamdb-final/internal/service"
)

func main() {
	// 1. Load and validate config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// 3. Connect to Redis for the confirmation-code store
	redisClient, err := repository.ConnectRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	defer redisClient.Close()

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	codeRepo := repository.NewCodeRepository(redisClient, cfg.ConfirmationCodeTTL)

	// 5. Services
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.AdminEmail)
	authService := service.NewAuthService(userRepo, codeRepo, mailer, cfg, logger)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, genreRepo, categoryRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// 6. Router
	router := handler.NewRouter(
		middleware.Authenticate(authService, userRepo),
		middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst),
		handler.Handlers{
			Auth:       handler.NewAuthHandler(authService),
			Users:      handler.NewUserHandler(userService),
			Categories: handler.NewCategoryHandler(categoryService),
			Genres:     handler.NewGenreHandler(genreService),
			Titles:     handler.NewTitleHandler(titleService),
			Reviews:    handler.NewReviewHandler(reviewService),
			Comments:   handler.NewCommentHandler(commentService),
		},
	)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
