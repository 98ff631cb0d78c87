package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string
	ConsumerGroup string
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	TLS           bool
}

type AuthConfig struct {
	JWTSecret     string
	JWTPublicKey  string // path to RSA public key PEM; overrides secret when set
	SkipAuth      bool   // local development only
}

type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort      int
	MetricsPort   int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Auth          AuthConfig
	TLS           TLSConfig
	MigrationsDir string
	LogLevel      string
	LogFormat     string
	ServiceName   string

	// MissedPaymentFee is the flat per-missed-period deduction applied
	// to lease deposit refunds, in major currency units.
	MissedPaymentFee int64
}

func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if !c.Auth.SkipAuth && c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		return fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY is required unless AUTH_SKIP=true")
	}
	return nil
}

func Load() Config {
	return Config{
		GRPCPort:    getEnvInt("GRPC_PORT", 9095),
		MetricsPort: getEnvInt("METRICS_PORT", 8095),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "agrofin"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "agrofin_financing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			EventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "financing-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "financing-service"),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			TLS:           getEnvBool("KAFKA_TLS", false),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTPublicKey: getEnv("JWT_PUBLIC_KEY", ""),
			SkipAuth:     getEnvBool("AUTH_SKIP", false),
		},
		TLS: TLSConfig{
			Enabled:  getEnvBool("TLS_ENABLED", false),
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "file://./migrations"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		ServiceName:      "financing-service",
		MissedPaymentFee: int64(getEnvInt("MISSED_PAYMENT_FEE", 200)),
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
