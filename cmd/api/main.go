package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fsel/admin-console-api/config"
	"github.com/fsel/admin-console-api/internal/handlers"
	"github.com/fsel/admin-console-api/internal/middleware"
	"github.com/fsel/admin-console-api/internal/services"
	"github.com/fsel/admin-console-api/internal/session"
	"github.com/fsel/admin-console-api/pkg/fsel"
	"github.com/fsel/admin-console-api/pkg/httpclient"
	"github.com/fsel/admin-console-api/pkg/jwt"
	"github.com/fsel/admin-console-api/pkg/logger"
	"github.com/fsel/admin-console-api/pkg/metrics"
	"github.com/fsel/admin-console-api/pkg/profiling"
	"github.com/fsel/admin-console-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerStudentRoutes registers the student search, detail, and
// provisioning routes on an operator-authenticated group.
func registerStudentRoutes(
	group *gin.RouterGroup,
	generalRateLimiter, provisioningRateLimiter *middleware.RateLimiter,
	studentHandler *handlers.StudentHandler,
	provisioningHandler *handlers.ProvisioningHandler,
) {
	group.GET("/students/search", generalRateLimiter.Middleware(), studentHandler.Search)
	group.GET("/students/:userId/otp", generalRateLimiter.Middleware(), studentHandler.GetOTPState)

	// Placement tests are keyed by StudentID, not UserID, so they live under
	// their own resource path instead of /students/:userId.
	group.GET("/placement-tests/:studentId", generalRateLimiter.Middleware(), studentHandler.GetPlacementTest)

	// The provisioning workflows issue destructive gateway writes, so they
	// get a much tighter limit and a small body cap.
	group.POST("/students", provisioningRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), provisioningHandler.AddStudent)
	group.POST("/students/reset-placement-test", provisioningRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), provisioningHandler.ResetPlacementTest)
	group.DELETE("/students/:userId", provisioningRateLimiter.Middleware(), provisioningHandler.DeleteStudent)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting FSEL Admin Console API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.AlloyEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		profiling.Config{
			Enabled:               cfg.Profiling.Enabled,
			Endpoint:              cfg.Profiling.Endpoint,
			AppName:               cfg.Profiling.AppName,
			SampleTypes:           cfg.Profiling.SampleTypes,
			UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
		},
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize HTTP client for the gateway calls
	httpClient := httpclient.NewStandardClient()

	// Gateway client and admin session manager. The session manager needs
	// the client to log in and the client needs the manager for tokens, so
	// the token source is installed after both exist.
	gatewayClient := fsel.NewClient(fsel.Config{
		AuthBaseURL:        cfg.Gateways.AuthBaseURL,
		UserBaseURL:        cfg.Gateways.UserBaseURL,
		CourseBaseURL:      cfg.Gateways.CourseBaseURL,
		OrderingBaseURL:    cfg.Gateways.OrderingBaseURL,
		SignUpPlatformCode: cfg.GatewayAuth.SignUpPlatformCode,
		AdminPlatformCode:  cfg.GatewayAuth.AdminPlatformCode,
	}, httpClient, nil)

	sessionManager := session.NewManager(func(ctx context.Context) (string, error) {
		return gatewayClient.Login(ctx, cfg.GatewayAuth.AdminUsername, cfg.GatewayAuth.AdminPassword)
	}, cfg.GatewayAuth.TokenCacheFile)
	gatewayClient.SetTokenSource(sessionManager)

	// Operator session tokens
	tokenManager := jwt.NewTokenManager(
		cfg.OperatorSession.JWTSecret,
		cfg.OperatorSession.JWTIssuer,
		cfg.OperatorSession.SessionTTLHours,
	)

	// Initialize services
	searchService := services.NewSearchService(gatewayClient)
	placementService := services.NewPlacementService(gatewayClient)
	provisioningService := services.NewProvisioningService(gatewayClient, cfg.Provisioning.DefaultSignupPassword)
	catalogService := services.NewCatalogService(gatewayClient, cfg.Catalog.CurriculumDir)
	alertSettingsService := services.NewAlertSettingsService(cfg.AlertSettings.DefaultsFile, cfg.AlertSettings.StoreFile)
	operatorAuthService := services.NewOperatorAuthService(cfg.OperatorSession.Username, cfg.OperatorSession.Password, tokenManager)

	// Initialize handlers
	studentHandler := handlers.NewStudentHandler(searchService, placementService)
	provisioningHandler := handlers.NewProvisioningHandler(provisioningService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	alertSettingsHandler := handlers.NewAlertSettingsHandler(alertSettingsService)
	operatorAuthHandler := handlers.NewOperatorAuthHandler(operatorAuthService, cfg.OperatorSession.CookieDomain, cfg.OperatorSession.CookieSecure)
	healthHandler := handlers.NewHealthHandler(sessionManager.HasValidToken)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for operator session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(50, 100)       // searches and lookups
	provisioningRateLimiter := middleware.NewRateLimiter(1, 3)     // destructive workflows
	operatorAuthRateLimiter := middleware.NewRateLimiter(0.033, 3) // ~2 logins/min, burst of 3

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Operator authentication (public)
	auth := router.Group("/api/v1/auth")
	auth.POST("/login", operatorAuthRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(8*1024), operatorAuthHandler.Login)
	auth.POST("/logout", operatorAuthHandler.Logout)
	auth.GET("/session", middleware.OperatorSessionMiddleware(tokenManager, cfg.OperatorSession.CookieDomain, cfg.OperatorSession.CookieSecure), operatorAuthHandler.GetSession)

	// Everything else requires an operator session
	v1 := router.Group("/api/v1")
	v1.Use(middleware.OperatorSessionMiddleware(tokenManager, cfg.OperatorSession.CookieDomain, cfg.OperatorSession.CookieSecure))

	registerStudentRoutes(v1, generalRateLimiter, provisioningRateLimiter, studentHandler, provisioningHandler)

	v1.GET("/catalog/packages", generalRateLimiter.Middleware(), catalogHandler.GetProductPackages)
	v1.GET("/catalog/curriculum", generalRateLimiter.Middleware(), catalogHandler.ListCurriculumCourses)
	v1.GET("/catalog/curriculum/:courseId", generalRateLimiter.Middleware(), catalogHandler.GetCurriculumCourse)

	v1.GET("/settings/alerts", generalRateLimiter.Middleware(), alertSettingsHandler.Get)
	v1.PUT("/settings/alerts", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), alertSettingsHandler.Update)
	v1.DELETE("/settings/alerts", generalRateLimiter.Middleware(), alertSettingsHandler.Reset)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // reset workflow runs six gateway calls
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
