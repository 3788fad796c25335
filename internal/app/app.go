package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"lsu-service/internal/auth"
	"lsu-service/internal/class"
	"lsu-service/internal/comment"
	"lsu-service/internal/config"
	"lsu-service/internal/db"
	"lsu-service/internal/evaluation"
	"lsu-service/internal/generation"
	"lsu-service/internal/health"
	"lsu-service/internal/kafka"
	"lsu-service/internal/logger"
	"lsu-service/internal/messaging"
	"lsu-service/internal/metrics"
	"lsu-service/internal/middleware"
	"lsu-service/internal/settings"
	"lsu-service/internal/student"
	"lsu-service/internal/subject"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	producer producer
}

// producer lets App close whichever event backend was configured.
type producer interface {
	comment.Producer
	Close() error
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database,
		(*auth.User)(nil),
		(*auth.RefreshToken)(nil),
		(*class.Class)(nil),
		(*student.Student)(nil),
		(*subject.Subject)(nil),
		(*evaluation.Evaluation)(nil),
		(*comment.Comment)(nil),
		(*settings.Parameter)(nil),
	); err != nil {
		log.Fatal("failed to run migrations:", err)
	}
	if err := subject.Seed(ctx, database); err != nil {
		log.Fatal("failed to seed subjects:", err)
	}
	if err := settings.Seed(ctx, database); err != nil {
		log.Fatal("failed to seed parameters:", err)
	}

	meter := otel.Meter(ServiceName)
	appMetrics, err := metrics.New(meter)
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		appMetrics = nil
	} else if err := appMetrics.Database.RegisterDB(database.DB, meter); err != nil {
		slogLogger.Warn("failed to register database metrics", "error", err)
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler(database)
	healthHandler.RegisterRoutes(app.router)

	// Auth setup
	authRepo := auth.NewRepository(database, appMetrics)
	authService := auth.NewService(authRepo, cfg.Auth)
	authHandler := auth.NewHandler(authService, slogLogger)
	authHandler.RegisterRoutes(app.router)

	// Repositories
	classRepo := class.NewRepository(database, appMetrics)
	studentRepo := student.NewRepository(database, appMetrics)
	subjectRepo := subject.NewRepository(database, appMetrics)
	evaluationRepo := evaluation.NewRepository(database, appMetrics)
	commentRepo := comment.NewRepository(database, appMetrics)
	settingsRepo := settings.NewRepository(database, appMetrics)

	// Comment generation provider
	generator, err := generation.NewClient(generationConfig(cfg.Generation))
	if err != nil {
		log.Fatal("failed to initialize generation client:", err)
	}
	slogLogger.Info("generation client initialized", "provider", generator.Name())

	app.producer = newEventProducer(cfg.Messaging, slogLogger)

	var eventProducer comment.Producer
	if app.producer != nil {
		eventProducer = app.producer
	}

	// Services and handlers
	classService := class.NewService(classRepo)
	classHandler := class.NewHandler(classService, slogLogger, appMetrics, cfg.Uploads.Dir)

	studentService := student.NewService(studentRepo, classRepo)
	studentHandler := student.NewHandler(studentService, slogLogger, appMetrics)

	subjectHandler := subject.NewHandler(subjectRepo, slogLogger)

	evaluationService := evaluation.NewService(evaluationRepo, studentRepo)
	evaluationHandler := evaluation.NewHandler(evaluationService, slogLogger, appMetrics)

	commentService := comment.NewService(
		studentRepo, evaluationRepo, commentRepo,
		generator, eventProducer, appMetrics, slogLogger,
	)
	commentHandler := comment.NewHandler(commentService, slogLogger)

	settingsHandler := settings.NewHandler(settingsRepo, slogLogger)

	// Protected routes
	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret, slogLogger))
		classHandler.RegisterRoutes(r)
		studentHandler.RegisterRoutes(r)
		subjectHandler.RegisterRoutes(r)
		evaluationHandler.RegisterRoutes(r)
		commentHandler.RegisterRoutes(r)
		settingsHandler.RegisterRoutes(r)
	})

	// Class photos are served from the uploads directory
	if cfg.Uploads.Dir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
		app.router.Get("/uploads/*", fileServer.ServeHTTP)
	}

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close event producer", "error", err)
		}
	}
	return a.server.Shutdown(ctx)
}

// newEventProducer builds the configured event backend. A broken or absent
// broker is not fatal: comment publication is best effort.
func newEventProducer(cfg config.MessagingConfig, logger *slog.Logger) producer {
	switch cfg.Backend {
	case "kafka":
		p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return p
	case "nats":
		p, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return p
	case "":
		logger.Info("no messaging backend configured")
		return nil
	default:
		logger.Warn("unknown messaging backend", "backend", cfg.Backend)
		return nil
	}
}

func generationConfig(cfg config.GenerationConfig) generation.Config {
	apiKey := cfg.APIKey
	if cfg.Provider == "gemini" {
		apiKey = cfg.GeminiAPIKey
	}
	return generation.Config{
		Provider:    cfg.Provider,
		APIKey:      apiKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.TimeoutDuration(),
	}
}
