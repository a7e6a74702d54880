package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaudit "github.com/lendledger/backend/internal/application/audit"
	appidentity "github.com/lendledger/backend/internal/application/identity"
	applending "github.com/lendledger/backend/internal/application/lending"
	appreport "github.com/lendledger/backend/internal/application/report"
	"github.com/lendledger/backend/internal/infrastructure/auth"
	"github.com/lendledger/backend/internal/infrastructure/cache"
	"github.com/lendledger/backend/internal/infrastructure/config"
	"github.com/lendledger/backend/internal/infrastructure/export"
	"github.com/lendledger/backend/internal/infrastructure/logger"
	"github.com/lendledger/backend/internal/infrastructure/persistence"
	"github.com/lendledger/backend/internal/infrastructure/storage"
	"github.com/lendledger/backend/internal/infrastructure/telemetry"
	"github.com/lendledger/backend/internal/interfaces/http/handler"
	"github.com/lendledger/backend/internal/interfaces/http/middleware"
	"github.com/lendledger/backend/internal/interfaces/http/router"
)

const scheduleCacheTTL = 15 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LendLedger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing (optional)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	creditorRepo := persistence.NewGormCreditorRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	repaymentRepo := persistence.NewGormRepaymentRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	paymentReportRepo := persistence.NewGormPaymentReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Schedule cache: Redis when configured, otherwise in-process
	var scheduleCache applending.ScheduleCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisScheduleCache(cfg.Redis, scheduleCacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		scheduleCache = redisCache
		log.Info("Redis schedule cache enabled",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		scheduleCache = cache.NewInMemoryScheduleCache(scheduleCacheTTL)
	}

	// Export artifact archiving (optional)
	var artifacts appreport.ArtifactStore
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ArtifactStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		artifacts = s3Storage
		log.Info("Export archiving enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Report exporters. PDF uses headless Chrome when enabled and falls
	// back to a plain-text renderer otherwise.
	var pdfRenderer export.PDFRenderer
	if cfg.PDF.Enabled {
		chromeRenderer, err := export.NewChromedpRenderer(cfg.PDF, log)
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer chromeRenderer.Close()
		pdfRenderer = chromeRenderer
		log.Info("Chrome PDF rendering enabled")
	} else {
		pdfRenderer = export.NewStubRenderer()
	}
	exporters := map[string]appreport.Exporter{
		"csv": export.NewCSVExporter(),
		"pdf": export.NewPDFExporter(pdfRenderer),
	}

	// Application services
	recorder := appaudit.NewRecorder(auditRepo, log)
	logService := appaudit.NewLogService(auditRepo, log)
	profileService := appidentity.NewProfileService(userRepo, creditorRepo, debtorRepo, recorder, log)
	loanService := applending.NewLoanService(loanRepo, repaymentRepo, creditorRepo, debtorRepo, txScope, scheduleCache, recorder, log)
	repaymentService := applending.NewRepaymentService(txScope, debtorRepo, scheduleCache, recorder, log)
	arrearsService := applending.NewArrearsService(loanRepo, repaymentRepo, creditorRepo, log)
	paymentReportService := appreport.NewPaymentReportService(paymentReportRepo, exporters, artifacts, recorder, log)
	dashboardService := appreport.NewDashboardService(userRepo, creditorRepo, debtorRepo, loanRepo, repaymentRepo, log)

	// Token verification
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	handlers := router.Handlers{
		System:    handler.NewSystemHandler(db),
		Profile:   handler.NewProfileHandler(profileService),
		Loan:      handler.NewLoanHandler(loanService),
		Repayment: handler.NewRepaymentHandler(repaymentService),
		Report:    handler.NewReportHandler(arrearsService, paymentReportService, dashboardService),
		Audit:     handler.NewAuditHandler(logService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if tracerProvider.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	router.Mount(engine, handlers, router.WithAPIVersion("v1"))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
