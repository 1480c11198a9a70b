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
	if cfg.HTTPAddr != "127.0.0.1:8082" {
		t.Errorf("Expected HTTPAddr=127.0.0.1:8082, got %s", cfg.HTTPAddr)
	}
	if cfg.CatalogBaseURL != "http://127.0.0.1:8081" {
		t.Errorf("Expected CatalogBaseURL=http://127.0.0.1:8081, got %s", cfg.CatalogBaseURL)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:19092" {
		t.Errorf("Expected Kafka brokers [localhost:19092], got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "order.events" {
		t.Errorf("Expected Kafka topic order.events, got %s", cfg.Kafka.Topic)
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
	if cfg.HTTPAddr != "0.0.0.0:8082" {
		t.Errorf("Expected HTTPAddr=0.0.0.0:8082, got %s", cfg.HTTPAddr)
	}
	if cfg.CatalogBaseURL != "http://catalog:8081" {
		t.Errorf("Expected CatalogBaseURL=http://catalog:8081, got %s", cfg.CatalogBaseURL)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Errorf("Expected Kafka brokers [kafka:9092], got %v", cfg.Kafka.Brokers)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "local")
	os.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	os.Setenv("KAFKA_TOPIC", "custom.topic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Expected 2 Kafka brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "custom.topic" {
		t.Errorf("Expected Kafka topic custom.topic, got %s", cfg.Kafka.Topic)
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_ENV", "staging")

	if _, err := Load(); err == nil {
		t.Fatalf("Expected error for invalid APP_ENV")
	}
}
