package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/port"
	"github.com/bibbank/agricredit/internal/domain/service"
	"github.com/bibbank/agricredit/internal/infrastructure/config"
	"github.com/bibbank/agricredit/internal/infrastructure/kafka"
	"github.com/bibbank/agricredit/internal/infrastructure/messaging"
	"github.com/bibbank/agricredit/internal/infrastructure/metrics"
	"github.com/bibbank/agricredit/internal/infrastructure/persistence/memory"
	pgrepo "github.com/bibbank/agricredit/internal/infrastructure/persistence/postgres"
	redisstore "github.com/bibbank/agricredit/internal/infrastructure/persistence/redis"
	grpcPresentation "github.com/bibbank/agricredit/internal/presentation/grpc"
	"github.com/bibbank/agricredit/internal/presentation/rest"
	pkgkafka "github.com/bibbank/agricredit/pkg/kafka"
	"github.com/bibbank/agricredit/pkg/observability"
	pkgpostgres "github.com/bibbank/agricredit/pkg/postgres"
	"github.com/bibbank/agricredit/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("agricreditd exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A missing .env file is fine; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	logger.Info("starting agricreditd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"store", cfg.StoreBackend,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Insecure:     cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	recorder, err := metrics.NewAssessmentMetrics(meterProvider.Meter("github.com/bibbank/agricredit"))
	if err != nil {
		return fmt.Errorf("init assessment metrics: %w", err)
	}

	// Wire infrastructure adapters.
	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher := openPublisher(cfg, logger)
	defer closePublisher()

	// Wire use cases.
	assessUC := usecase.NewAssessFarmerUseCase(repo, publisher, recorder, service.NewScoringEngine(), logger)
	getUC := usecase.NewGetAssessmentUseCase(repo)
	listUC := usecase.NewListFarmerAssessmentsUseCase(repo)
	exportUC := usecase.NewExportReportUseCase(repo, service.NewReportGenerator())
	calcUC := usecase.NewCalculateLoanUseCase()

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewAgriCreditHandler(assessUC, getUC, listUC, exportUC, calcUC),
		logger,
		grpcPresentation.ServerOptions{
			CertFile:   cfg.TLS.CertFile,
			KeyFile:    cfg.TLS.KeyFile,
			Reflection: cfg.GRPCReflection,
		},
	)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	// HTTP server.
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Health:         rest.NewHealthHandler(cfg.ServiceName, repo, logger),
			Assessments:    rest.NewAssessmentHandler(assessUC, getUC, listUC, exportUC, calcUC, logger),
			Metrics:        metricsHandler,
			Logger:         logger,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		httpServer.TLSConfig, err = tlsutil.ServerTLSConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load HTTP TLS config: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr(), "tls", httpServer.TLSConfig != nil)
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		grpcServer.GracefulStop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("agricreditd stopped")
	return nil
}

// openStore selects the assessment repository from configuration.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.AssessmentRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		poolCfg := cfg.DB.PoolConfig()
		poolCfg.ApplicationName = cfg.ServiceName

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		pool, err := pkgpostgres.NewPool(dbCtx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pgrepo.Migrate(poolCfg.DSN()); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)
		return pgrepo.NewAssessmentRepo(pool), pool.Close, nil

	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		return redisstore.NewAssessmentStore(client, cfg.Redis.TTL), func() { _ = client.Close() }, nil

	default:
		logger.Warn("using in-memory assessment store; data is lost on restart")
		return memory.NewAssessmentRepo(), func() {}, nil
	}
}

// openPublisher uses Kafka when brokers are configured and logs events otherwise.
func openPublisher(cfg config.Config, logger *slog.Logger) (port.EventPublisher, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("no Kafka brokers configured, logging domain events")
		return messaging.NewLogPublisher(logger), func() {}
	}

	producer := pkgkafka.NewProducer(pkgkafka.Config{
		ClientID: cfg.Kafka.ClientID,
		Brokers:  cfg.Kafka.Brokers,
		TLS:      cfg.Kafka.TLS,
	})
	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close Kafka producer", "error", err)
		}
	}
	return kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger), closeFn
}
