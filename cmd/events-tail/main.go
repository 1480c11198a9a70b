// Package main содержит утилиту для чтения событий заказов из Kafka.
//
// Это инструмент для отладки событийного канала RapidCart:
//   - использует платформенный логгер (platform/logging) на основе zap
//   - использует платформенную конфигурацию Kafka (platform/kafka)
//   - читает топик с начала и печатает каждое событие
//
// По умолчанию подключается к localhost:19092 и топику order.events.
// Это можно переопределить через переменные окружения:
//   - KAFKA_BROKERS (например, "localhost:19092" или "kafka:9092" для Docker)
//   - KAFKA_TOPIC (например, "order.events")
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	platformkafka "github.com/PraneethShetty626/rapidcart/platform/kafka"
	platformlogging "github.com/PraneethShetty626/rapidcart/platform/logging"
)

func main() {
	// Останавливаемся по Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Инициализируем платформенный логгер
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "events-tail",
		Env:         "local",
		Level:       "info",
		Format:      "console",
		AddCaller:   true,
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer platformlogging.Sync(logger)

	// Загружаем конфигурацию Kafka из переменных окружения
	// Если переменные не заданы, используются дефолты (localhost:19092, order.events)
	cfg := platformkafka.DefaultConfig()
	if err := platformkafka.LoadEnv(&cfg); err != nil {
		logger.Error("failed to load kafka config", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("tailing kafka topic",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)

	// Reader без consumer group: читаем топик с начала, offset не коммитим
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
	})
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("stopping")
				return
			}
			logger.Error("failed to read message", zap.Error(err))
			os.Exit(1)
		}

		logger.Info("event",
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
			zap.String("key", string(m.Key)),
			zap.String("value", string(m.Value)),
		)
	}
}
