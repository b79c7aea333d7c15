package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/common/otel"
	"courtlistener.app/cl/core/config"
	"courtlistener.app/cl/core/db"
	"courtlistener.app/cl/internal/api"
	"courtlistener.app/cl/internal/http/dto"
	"courtlistener.app/cl/internal/http/middleware"
	httprouter "courtlistener.app/cl/internal/http/router"
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/queue"
	"courtlistener.app/cl/internal/search"
	"courtlistener.app/cl/internal/service"
	"courtlistener.app/cl/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "courtlistener server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Queue.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	producer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, slog.Default())
	defer producer.Close()

	stores := store.NewStores(database.Queries())

	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		service.NewMailQueue(producer),
		mail.NewComposer(cfg.SiteName, cfg.BaseURL),
	)

	var searcher search.Searcher
	if cfg.Search.Enabled() {
		backend := search.NewTypesenseBackend(cfg.Search)
		schemas := search.NewSchemaSource(backend, redisClient, cfg.Search.SchemaTTL)
		searcher = search.NewSearcher(backend, schemas, cfg.Search.Collections)
		slog.InfoContext(ctx, "search backend configured", "url", cfg.Search.URL)
	} else {
		slog.WarnContext(ctx, "search disabled (TYPESENSE_URL or TYPESENSE_API_KEY missing)")
	}

	apiHandler := api.NewHandler(
		api.NewRegistry(api.DefaultResources()...),
		store.NewRecordStore(database.Conn()),
		stores.Courts(),
		searcher,
		api.Config{
			BaseURL:      cfg.BaseURL,
			PageSize:     cfg.API.PageSize,
			MaxPageSize:  cfg.API.MaxPageSize,
			PagerankFile: cfg.API.PagerankFile,
		},
		dto.SchemaTypes(),
	)

	if err := dto.RegisterValidators(); err != nil {
		slog.ErrorContext(ctx, "failed to register validators", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, apiHandler)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, apiHandler *api.Handler) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	httprouter.SetupRoutes(router, services, apiHandler, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
		CORSOrigins:  cfg.CORSOrigins,
	})

	return router
}

const banner = `
 ██████╗██╗         ███████╗███████╗██████╗ ██╗   ██╗███████╗██████╗
██╔════╝██║         ██╔════╝██╔════╝██╔══██╗██║   ██║██╔════╝██╔══██╗
██║     ██║         ███████╗█████╗  ██████╔╝██║   ██║█████╗  ██████╔╝
██║     ██║         ╚════██║██╔══╝  ██╔══██╗╚██╗ ██╔╝██╔══╝  ██╔══██╗
╚██████╗███████╗    ███████║███████╗██║  ██║ ╚████╔╝ ███████╗██║  ██║
 ╚═════╝╚══════╝    ╚══════╝╚══════╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝
`
