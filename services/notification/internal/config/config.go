package config

import (
	"fmt"
	"log"
	"os"
	"time"

	platformkafka "github.com/PraneethShetty626/rapidcart/platform/kafka"
)

// Env представляет окружение приложения
type Env string

const (
	// EnvLocal - локальное окружение (для разработки на хосте)
	EnvLocal Env = "local"
	// EnvDocker - Docker окружение (для запуска в контейнерах)
	EnvDocker Env = "docker"
)

// Config содержит конфигурацию Notification Service
type Config struct {
	AppEnv          Env
	HTTPAddr        string
	ShutdownTimeout time.Duration

	Kafka         platformkafka.Config
	ConsumerGroup string
}

// Load загружает конфигурацию из переменных окружения
func Load() (Config, error) {
	cfg := Config{}

	// Читаем APP_ENV
	appEnvStr := getString("APP_ENV", string(EnvLocal))
	appEnv := Env(appEnvStr)
	if appEnv != EnvLocal && appEnv != EnvDocker {
		return Config{}, fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", appEnvStr)
	}
	cfg.AppEnv = appEnv

	// HTTP_ADDR (только health endpoint)
	if cfg.AppEnv == EnvLocal {
		cfg.HTTPAddr = getString("HTTP_ADDR", "127.0.0.1:8083")
	} else {
		cfg.HTTPAddr = getString("HTTP_ADDR", "0.0.0.0:8083")
	}

	// SHUTDOWN_TIMEOUT
	shutdownTimeoutStr := getString("SHUTDOWN_TIMEOUT", "10s")
	shutdownTimeout, err := time.ParseDuration(shutdownTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = shutdownTimeout

	// KAFKA_BROKERS / KAFKA_TOPIC через caarlos0/env
	kafkaCfg := platformkafka.DefaultConfig()
	if cfg.AppEnv == EnvDocker {
		kafkaCfg.Brokers = []string{"kafka:9092"}
	}
	if err := platformkafka.LoadEnv(&kafkaCfg); err != nil {
		return Config{}, fmt.Errorf("load kafka config: %w", err)
	}
	cfg.Kafka = kafkaCfg

	// Consumer group
	cfg.ConsumerGroup = getString("KAFKA_NOTIFICATION_GROUP_ID", "notification")

	// Валидация
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required")
	}
	if c.ConsumerGroup == "" {
		return fmt.Errorf("KAFKA_NOTIFICATION_GROUP_ID is required")
	}
	return nil
}

// Log выводит конфигурацию в лог
func (c Config) Log() {
	log.Printf("Config loaded:")
	log.Printf("  APP_ENV: %s", c.AppEnv)
	log.Printf("  HTTP_ADDR: %s", c.HTTPAddr)
	log.Printf("  SHUTDOWN_TIMEOUT: %s", c.ShutdownTimeout)
	log.Printf("  KAFKA_BROKERS: %v", c.Kafka.Brokers)
	log.Printf("  KAFKA_TOPIC: %s", c.Kafka.Topic)
	log.Printf("  KAFKA_NOTIFICATION_GROUP_ID: %s", c.ConsumerGroup)
}

// getString читает переменную окружения или возвращает дефолт
func getString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
