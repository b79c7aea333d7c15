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

	"github.com/redis/go-redis/v9"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/common/metrics"
	"courtlistener.app/cl/common/otel"
	"courtlistener.app/cl/core/config"
	"courtlistener.app/cl/core/db"
	"courtlistener.app/cl/core/db/sqlc"
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/queue"
	"courtlistener.app/cl/internal/search"
	"courtlistener.app/cl/internal/service"
	"courtlistener.app/cl/internal/store"
	"courtlistener.app/cl/internal/worker"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "courtlistener worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Queue.Group,
		"consumer_name", cfg.Queue.Consumer)

	// Node 2 keeps worker ids disjoint from the server's.
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
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
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Queue.Stream,
		Group:        cfg.Queue.Group,
		Consumer:     cfg.Queue.Consumer,
		DLQStream:    cfg.Queue.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	producer := queue.NewRedisProducer(redisClient, cfg.Queue.Stream, slog.Default())
	stores := store.NewStores(database.Queries())
	txRunner := &workerTxRunnerAdapter{db: database}
	composer := mail.NewComposer(cfg.SiteName, cfg.BaseURL)

	var searcher search.Searcher
	if cfg.Search.Enabled() {
		backend := search.NewTypesenseBackend(cfg.Search)
		schemas := search.NewSchemaSource(backend, redisClient, cfg.Search.SchemaTTL)
		searcher = search.NewSearcher(backend, schemas, cfg.Search.Collections)
	} else {
		slog.WarnContext(ctx, "search disabled; alert runs will fail until TYPESENSE_URL and TYPESENSE_API_KEY are set")
	}

	if !cfg.Mail.Enabled() {
		slog.WarnContext(ctx, "SMTP_HOST not set; emails will be logged instead of sent")
	}

	alertProcessor := worker.NewAlertProcessor(txRunner, searcher, composer, service.NewMailQueue(producer), worker.AlertProcessorConfig{
		BaseURL:     cfg.BaseURL,
		ResultLimit: cfg.Alerts.ResultLimit,
	})

	processors := map[queue.TaskType]worker.Processor{
		queue.TaskTypeSendEmail: worker.NewEmailProcessor(mail.NewSender(cfg.Mail)),
		queue.TaskTypeRunAlert:  alertProcessor,
	}

	w := worker.New(consumer, processors, worker.Config{
		MaxAttempts: cfg.Queue.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Queue.Stream,
		Group:     cfg.Queue.Group,
		Consumer:  cfg.Queue.Consumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  1 * time.Minute,
		BatchSize: 10,
	}, consumer, w.Handle)

	jobs, err := worker.AlertJobs(cfg.Alerts, stores.Alerts(), producer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build alert schedule", "error", err)
		os.Exit(1)
	}
	auth := service.NewAuthService(stores.Users(), stores.Sessions())
	jobs = append(jobs, worker.SessionCleanupJob(auth))
	scheduler := worker.NewScheduler(jobs...)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.InfoContext(ctx, "metrics server starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	errCh := make(chan error, 3)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()
	go func() {
		scheduler.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running", "jobs", len(jobs))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Scheduler and reclaimer stop quickly; the worker may be mid-batch.
	scheduler.Stop()
	reclaimer.Stop()
	w.Stop()

	waitForShutdown(shutdownCtx, errCh, 3)

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "metrics server shutdown error", "error", err)
	}

	if err := producer.Close(); err != nil {
		slog.ErrorContext(ctx, "producer close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

// waitForShutdown collects n exit results from errCh or gives up at ctx's deadline.
func waitForShutdown(ctx context.Context, errCh <-chan error, n int) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			slog.WarnContext(ctx, "shutdown timeout exceeded")
			return
		case err := <-errCh:
			if err != nil {
				slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
			}
		}
	}
}

// workerTxRunnerAdapter bridges db.DB to worker.TxRunner.
type workerTxRunnerAdapter struct {
	db *db.DB
}

func (a *workerTxRunnerAdapter) WithTx(ctx context.Context, fn func(stores worker.StoreProvider) error) error {
	return a.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}

const banner = `
 ██████╗██╗         ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
██╔════╝██║         ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
██║     ██║         ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
██║     ██║         ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
╚██████╗███████╗    ╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
 ╚═════╝╚══════╝     ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
