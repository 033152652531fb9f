package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pgpkg "github.com/bibbank/agricredit/pkg/postgres"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Port     int
	MaxConns int32
}

// PoolConfig converts the settings into the shared pool configuration.
func (d DatabaseConfig) PoolConfig() pgpkg.Config {
	return pgpkg.Config{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Database: d.Name,
		SSLMode:  d.SSLMode,
		MaxConns: d.MaxConns,
	}
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
	TLS      bool
}

type LogConfig struct {
	Level  string
	Format string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both a certificate and a key were configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type Config struct {
	ServiceName    string
	StoreBackend   string
	OTLPEndpoint   string
	Kafka          KafkaConfig
	Log            LogConfig
	TLS            TLSConfig
	Redis          RedisConfig
	DB             DatabaseConfig
	GRPCPort       int
	HTTPPort       int
	RateLimitRPS   float64
	RateLimitBurst int
	GRPCReflection bool
	OTLPInsecure   bool
}

// Validate reports the first configuration error.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DB.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORE_BACKEND=%s", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	return nil
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		ServiceName:  getEnv("SERVICE_NAME", "agricredit"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		GRPCPort:     getEnvInt("GRPC_PORT", 9090),
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "agricredit"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "agricredit"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", 0),
		},
		Kafka: KafkaConfig{
			Brokers:  splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:    getEnv("KAFKA_TOPIC", "agricredit-events"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "agricredit"),
			TLS:      getEnvBool("KAFKA_TLS", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
