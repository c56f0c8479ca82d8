package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	SessionSecret string
	SessionTTL    time.Duration

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string
	WebhookSecret    string
	GatewayTimeout   time.Duration

	SweepInterval    time.Duration
	WorkerPoolSize   int
	SweepBatchSize   int
	DispatchInterval time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultSessionSecret    = "change-me-in-production"
	defaultSessionTTL       = 24 * time.Hour
	defaultGatewayBaseURL   = "https://api.razorpay.com"
	defaultGatewayTimeout   = 10 * time.Second
	defaultSweepInterval    = 5 * time.Second
	defaultWorkerPoolSize   = 4
	defaultSweepBatchSize   = 32
	defaultDispatchInterval = time.Second
	defaultKafkaTopic       = "payment-events"
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		SessionSecret:    getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:       getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		GatewayBaseURL:   getString(lookup, "GATEWAY_BASE_URL", defaultGatewayBaseURL),
		GatewayKeyID:     getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret: getString(lookup, "GATEWAY_KEY_SECRET", ""),
		WebhookSecret:    getString(lookup, "GATEWAY_WEBHOOK_SECRET", ""),
		GatewayTimeout:   getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		SweepInterval:    getDuration(lookup, "ENTITLEMENT_SWEEP_INTERVAL", defaultSweepInterval),
		WorkerPoolSize:   getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		SweepBatchSize:   getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		DispatchInterval: getDuration(lookup, "EVENT_DISPATCH_INTERVAL", defaultDispatchInterval),
		KafkaTopic:       getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}
	brokers := getString(lookup, "KAFKA_BROKERS", "")

	fs := flag.NewFlagSet("dailyos-payments", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr       = cfg.SessionTTL.String()
		gatewayTimeoutStr   = cfg.GatewayTimeout.String()
		sweepIntervalStr    = cfg.SweepInterval.String()
		dispatchIntervalStr = cfg.DispatchInterval.String()
		shutdownTimeoutStr  = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Lifetime of issued session tokens")
	fs.StringVar(&cfg.GatewayBaseURL, "g", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayKeyID, "gateway-key-id", cfg.GatewayKeyID, "Payment gateway key id")
	fs.StringVar(&cfg.GatewayKeySecret, "gateway-key-secret", cfg.GatewayKeySecret, "Payment gateway key secret")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Payment gateway webhook secret")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout for outbound gateway calls")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between pending entitlement sweeps")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent entitlement workers")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orders per sweep")
	fs.StringVar(&dispatchIntervalStr, "dispatch-interval", dispatchIntervalStr, "Interval between event outbox relays")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for payment events")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.DispatchInterval, err = time.ParseDuration(dispatchIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid dispatch interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secrets := []struct {
		env    string
		target *string
	}{
		{"SESSION_SECRET_FILE", &cfg.SessionSecret},
		{"GATEWAY_KEY_SECRET_FILE", &cfg.GatewayKeySecret},
		{"GATEWAY_WEBHOOK_SECRET_FILE", &cfg.WebhookSecret},
	}
	for _, s := range secrets {
		if err := readSecretFile(lookup, s.env, s.target); err != nil {
			return nil, err
		}
	}

	cfg.KafkaBrokers = splitList(brokers)

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.DispatchInterval <= 0 {
		cfg.DispatchInterval = defaultDispatchInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = defaultKafkaTopic
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayKeyID == "" || cfg.GatewayKeySecret == "" {
		return nil, fmt.Errorf("gateway key id and secret must be provided")
	}

	if u, err := url.Parse(cfg.GatewayBaseURL); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("gateway base URL must be absolute: %q", cfg.GatewayBaseURL)
	}

	return cfg, nil
}

func readSecretFile(lookup envLookup, key string, target *string) error {
	path, ok := lookup(key)
	if !ok || path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	*target = strings.TrimSpace(string(content))
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
