package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"
	"castdeck/internal/core/services"
	httphandlers "castdeck/internal/handlers/http"
	"castdeck/internal/infrastructure/bridge"
	"castdeck/internal/infrastructure/host"
	"castdeck/internal/infrastructure/middleware"
	"castdeck/internal/infrastructure/monitoring"
	memoryrepo "castdeck/internal/infrastructure/repositories/memory"
	redisrepo "castdeck/internal/infrastructure/repositories/redis"
	"castdeck/pkg/config"
	"castdeck/pkg/export"
	"castdeck/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const appVersion = "1.0.0"

func main() {
	startTime := time.Now()

	configPaths := []string{
		os.Getenv("CASTDECK_CONFIG"),
		"configs/castdeck.yaml",
		"castdeck.yaml",
	}

	var cfg *config.Config
	var err error
	for _, path := range configPaths {
		if path == "" {
			continue
		}
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()
	contextLogger := logger.NewContextLogger(zapLogger)

	// State repository: redis when configured, otherwise in-process
	var stateRepo ports.StateRepository
	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, log)
		if err != nil {
			log.Fatalw("failed to connect to redis", "address", cfg.Redis.Address, "error", err)
		}
		defer redisrepo.CloseRedisClient(client)
		stateRepo = redisrepo.NewRedisStateRepository(client, cfg.Persistence.Profile)
	} else {
		stateRepo = memoryrepo.NewMemoryStateRepository()
	}

	collector := monitoring.NewPrometheusCollector()

	// The bridge doubles as the store's change notifier, so it is built
	// before the services.
	hostBridge := bridge.NewHostBridge(bridge.Options{
		PingInterval:    cfg.Bridge.PingInterval,
		PongTimeout:     cfg.Bridge.PongTimeout,
		EventsPerSecond: cfg.Bridge.EventsPerSecond,
		EventBurst:      cfg.Bridge.EventBurst,
		NotifyPerSecond: cfg.Bridge.NotifyPerSecond,
	}, log)

	// Load and reconcile persisted state
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	reconciler := services.NewReconciler(stateRepo, collector, log)
	initialState := reconciler.LoadState(loadCtx)
	loadCancel()

	store := services.NewStore(initialState, stateRepo, hostBridge, log)

	// Host-supplied providers boot detached; the shell attaches real
	// implementations over the bridge once its capture layer is up.
	captureProvider := host.NewDetachedCaptureProvider()
	audioProvider := host.NewDetachedAudioProvider()
	cameraProvider := host.NewDetachedCameraProvider()
	mirrorProvider := host.NewDetachedMirrorProvider()
	channelAPI := host.NewDetachedChannelAPI()
	windowController := host.NewDetachedWindowController()

	exportStorage, err := export.NewFileStorage(cfg.Export.Directory)
	if err != nil {
		log.Fatalw("failed to prepare export directory", "directory", cfg.Export.Directory, "error", err)
	}
	exporter := export.NewService(exportStorage, appVersion)

	// Core services
	scheduler := services.NewTransitionScheduler(log)
	compositionService := services.NewCompositionService(store, scheduler, collector, log)
	audioService := services.NewAudioService(store, audioProvider, collector, log)
	sessionService := services.NewSessionService(store, compositionService, channelAPI, exporter, cfg.Polling.StatsInterval, log)
	discoveryService := services.NewDiscoveryService(store, mirrorProvider, cfg.Discovery.ReconnectAttempts, cfg.Discovery.ReconnectBackoff, log)
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	hostBridge.SetSessionService(sessionService)

	// HTTP handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	panelHandler := httphandlers.NewPanelHandler(
		compositionService,
		audioService,
		sessionService,
		discoveryService,
		captureProvider,
		cameraProvider,
		audioProvider,
		windowController,
	)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggerMiddleware(contextLogger))
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))

	authHandler.SetupRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"version":   appVersion,
			"timestamp": time.Now(),
			"uptime":    time.Since(startTime).String(),
		})
	})

	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// State reads stay reachable for browser overlay pages that cannot
	// attach a panel token; everything mutating requires one.
	readonly := router.Group("")
	readonly.Use(middleware.OptionalAuthMiddleware(authService))
	panelHandler.SetupReadRoutes(readonly)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	panelHandler.SetupRoutes(protected)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Bridge server carries the host websocket on its own listener
	bridgeMux := http.NewServeMux()
	bridgeMux.HandleFunc("/bridge", hostBridge.HandleWebSocket)
	bridgeSrv := &http.Server{
		Addr:        cfg.Bridge.Address,
		Handler:     bridgeMux,
		ReadTimeout: 0, // long-lived websocket connections
	}

	serverErr := make(chan error, 2)
	go func() {
		log.Infow("starting castdeck API server", "address", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	go func() {
		log.Infow("starting host bridge", "address", cfg.Bridge.Address)
		if err := bridgeSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("received shutdown signal", "signal", sig)
	}

	log.Info("shutting down castdeck...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("API server shutdown failed", "error", err)
	}
	if err := bridgeSrv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("bridge shutdown failed", "error", err)
	}

	// Stop background work before the final snapshot lands
	sessionService.Close()
	audioService.Close()
	scheduler.Stop()
	hostBridge.CloseAll()

	// Persist a final snapshot so nothing since the last write-through
	// is lost
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer saveCancel()
	if err := stateRepo.Save(saveCtx, domain.Snapshot(store.Snapshot())); err != nil {
		log.Warnw("final state save failed", "error", err)
	}

	log.Info("castdeck stopped")
}
