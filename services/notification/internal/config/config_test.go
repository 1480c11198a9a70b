package config

import (
	"os"
	"testing"
)

func TestLoad_LocalDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvLocal {
		t.Errorf("Expected AppEnv=local, got %s", cfg.AppEnv)
	}
	if cfg.HTTPAddr != "127.0.0.1:8083" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:8083, got %s", cfg.HTTPAddr)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:19092" {
		t.Errorf("Expected Kafka brokers [localhost:19092], got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "order.events" {
		t.Errorf("Expected Kafka topic order.events, got %s", cfg.Kafka.Topic)
	}
	if cfg.ConsumerGroup != "notification" {
		t.Errorf("Expected ConsumerGroup=notification, got %s", cfg.ConsumerGroup)
	}
}

func TestLoad_DockerDefaults(t *testing.T) {
	// Очищаем env
	os.Clearenv()
	os.Setenv("APP_ENV", "docker")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != EnvDocker {
		t.Errorf("Expected AppEnv=docker, got %s", cfg.AppEnv)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Errorf("Expected Kafka brokers [kafka:9092], got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "prod")

	if _, err := Load(); err == nil {
		t.Fatalf("Expected error for invalid APP_ENV")
	}
}
