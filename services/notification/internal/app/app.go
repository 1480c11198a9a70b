package app

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	platformlogging "github.com/PraneethShetty626/rapidcart/platform/logging"
	platformshutdown "github.com/PraneethShetty626/rapidcart/platform/shutdown"
	httpapi "github.com/PraneethShetty626/rapidcart/services/notification/internal/api/http"
	"github.com/PraneethShetty626/rapidcart/services/notification/internal/config"
	kafkaevent "github.com/PraneethShetty626/rapidcart/services/notification/internal/event/kafka"
	"github.com/PraneethShetty626/rapidcart/services/notification/internal/service"
)

// App содержит все зависимости для запуска и корректного shutdown Notification Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	consumer    *kafkaevent.OrderEventsConsumer
	shutdownMgr *platformshutdown.Manager
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Notification Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "notification",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Notification service",
		zap.Strings("kafka_brokers", cfg.Kafka.Brokers),
		zap.String("kafka_topic", cfg.Kafka.Topic),
	)

	notifier := service.NewLogNotifier(logger)
	processed := service.NewMemoryProcessedEventsStore()
	notificationService := service.NewNotificationService(logger, notifier, processed)

	consumer := kafkaevent.NewOrderEventsConsumer(
		logger,
		cfg.Kafka.Brokers,
		cfg.ConsumerGroup,
		cfg.Kafka.Topic,
		notificationService,
	)

	// Health endpoint: сервис готов, пока жив процесс и consumer
	router := httpapi.NewRouter(func() bool { return true })
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shutdown функции выполняются в обратном порядке регистрации
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("kafka_consumer", platformshutdown.CloseWithError(consumer))
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		consumer:    consumer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.shutdownMgr.Add("consumer_ctx", func(context.Context) error {
		cancel()
		return nil
	})

	a.logger.Info("Starting Notification service", zap.String("addr", a.httpServer.Addr))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil {
			a.logger.Error("Kafka consumer error", zap.Error(err))
		}
	}()

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
	a.logger.Info("Notification service stopped")
	return nil
}
