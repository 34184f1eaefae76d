package config_test

import (
	"testing"
	"time"

	cfg "github.com/djglaser/spookymart-ecommerce/config"
)

// TestLoadWithPrefix_Defaults — default values with a clean environment.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("SPOOKY_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":3002" {
		t.Fatalf("HTTP.Addr: want :3002, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}

	// Catalog
	if c.Catalog.BaseURL != "http://localhost:3001" {
		t.Fatalf("Catalog.BaseURL: got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.Timeout != 5*time.Second {
		t.Fatalf("Catalog.Timeout: want 5s, got %v", c.Catalog.Timeout)
	}
	if c.Catalog.BatchConcurrency != 8 {
		t.Fatalf("Catalog.BatchConcurrency: want 8, got %d", c.Catalog.BatchConcurrency)
	}

	// Store
	if c.Store.Driver != "memory" || !c.Store.SeedDemo {
		t.Fatalf("Store defaults wrong: %+v", c.Store)
	}

	// Postgres
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Kafka: publisher disabled until brokers are configured
	if len(c.Kafka.Brokers) != 0 || c.Kafka.Topic != "order-events" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "spookymart-orders" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false")
	}
}

// Overridden environment.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "SPOOKY_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_CATALOG_BASE_URL", "http://catalog:3001")
	t.Setenv(p+"_CATALOG_TIMEOUT", "2s")
	t.Setenv(p+"_CATALOG_BATCH_CONCURRENCY", "3")
	t.Setenv(p+"_STORE_DRIVER", "postgres")
	t.Setenv(p+"_STORE_SEED_DEMO", "false")
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_TOPIC", "orders-test")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.Catalog.BaseURL != "http://catalog:3001" || c.Catalog.Timeout != 2*time.Second || c.Catalog.BatchConcurrency != 3 {
		t.Fatalf("Catalog overrides wrong: %+v", c.Catalog)
	}
	if c.Store.Driver != "postgres" || c.Store.SeedDemo {
		t.Fatalf("Store overrides wrong: %+v", c.Store)
	}
	if c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" || c.Postgres.MaxConns != 42 {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[0] != "k1:9092" || c.Kafka.Topic != "orders-test" {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger override wrong: %+v", c.Logger)
	}
}

func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "SPOOKY_TEST_BAD"
	t.Setenv(p+"_CATALOG_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
