package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx stdlib драйвер для goose миграций

	platformlogging "github.com/PraneethShetty626/rapidcart/platform/logging"
	platformobservability "github.com/PraneethShetty626/rapidcart/platform/observability"
	platformshutdown "github.com/PraneethShetty626/rapidcart/platform/shutdown"
	httpapi "github.com/PraneethShetty626/rapidcart/services/order/internal/api/http"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/client"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/config"
	kafkaevent "github.com/PraneethShetty626/rapidcart/services/order/internal/event/kafka"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository/postgres"
	"github.com/PraneethShetty626/rapidcart/services/order/internal/service"
	"github.com/PraneethShetty626/rapidcart/services/order/migrations"
)

// App содержит все зависимости для запуска и корректного shutdown Order Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	readiness   func() bool
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Order Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "order",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Order service", zap.String("http_addr", cfg.HTTPAddr))

	// OpenTelemetry (noop если OTEL_ENABLED != true)
	otelShutdown, err := platformobservability.Init(context.Background(), platformobservability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTLPEndpoint,
		SamplingRatio:         cfg.OTELSamplingRatio,
		ServiceName:           "order",
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, fmt.Errorf("observability init: %w", err)
	}

	// Подключаемся к PostgreSQL
	logger.Info("Connecting to PostgreSQL")
	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("PostgreSQL connection established")

	// Применяем миграции
	if err := runMigrations(context.Background(), cfg.PostgresDSN); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	logger.Info("Migrations applied")

	// Функция readiness для health check
	readiness := func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(ctx) == nil
	}

	orderRepo := postgres.NewRepository(pool)
	catalogClient := client.NewCatalogHTTPClient(logger, cfg.CatalogBaseURL)
	publisher := kafkaevent.NewKafkaOrderEventPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.Topic)
	orderService := service.NewOrderService(logger, catalogClient, publisher, orderRepo)
	handler := httpapi.NewHandler(orderService, logger)
	router := httpapi.NewRouter(handler, readiness, logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shutdown функции выполняются в обратном порядке регистрации
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("otel", otelShutdown)
	shutdownMgr.Add("postgres_pool", platformshutdown.ClosePool(pool))
	shutdownMgr.Add("kafka_publisher", platformshutdown.CloseWithError(publisher))
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
		readiness:   readiness,
	}, nil
}

// runMigrations применяет goose миграции из встроенной файловой системы
// goose работает через database/sql, поэтому открываем отдельное подключение через pgx stdlib
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Order service", zap.String("addr", a.httpServer.Addr))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Order service stopped")
	return nil
}
