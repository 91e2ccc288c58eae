package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Tipos de append log soportados.
const (
	SinkKinesis = "kinesis"
	SinkKafka   = "kafka"
	SinkMemory  = "memory"
	SinkFile    = "file"
)

// DefaultLedgerTTL es cuánto se recuerda un event id entregado.
const DefaultLedgerTTL = 24 * time.Hour

type Config struct {
	LogLevel string

	// Extracción
	DomainMarker string
	KeyAttribute string

	// Routing
	StreamName       string
	TestStreamName   string
	TestEmailDomains []string
	RoutingAttribute string
	RoutingFile      string

	// Append log
	Sink            string
	AWSRegion       string
	KinesisEndpoint string
	KafkaBrokers    []string
	KafkaGroupID    string
	FileSinkDir     string

	// Ledger de entregas (idempotencia)
	LedgerEnabled bool
	LedgerTTL     time.Duration
	RedisAddr     string

	HTTPPort string
}

// LoadConfig lee la configuración del entorno. Si existe un fichero .env en el
// directorio de trabajo se carga antes, sin pisar variables ya definidas.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DomainMarker: getEnv("DOMAIN_MARKER", "medicaid_detail"),
		KeyAttribute: getEnv("KEY_ATTRIBUTE", "uuid"),

		StreamName:       getEnv("STREAM_NAME", "turbocaid-applications"),
		TestStreamName:   getEnv("TEST_STREAM_NAME", "turbocaid-applications-test"),
		TestEmailDomains: splitList(getEnv("TEST_EMAIL_DOMAINS", "example.com,test.com")),
		RoutingAttribute: getEnv("ROUTING_ATTRIBUTE", "email"),
		RoutingFile:      getEnv("ROUTING_FILE", ""),

		Sink:            strings.ToLower(getEnv("SINK", SinkKinesis)),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		KinesisEndpoint: getEnv("KINESIS_ENDPOINT", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "detailstream-tail"),
		FileSinkDir:     getEnv("FILE_SINK_DIR", "./out"),

		LedgerEnabled: getEnvBool("LEDGER_ENABLED", false),
		LedgerTTL:     getEnvDuration("LEDGER_TTL", DefaultLedgerTTL),
		RedisAddr:     getEnv("REDIS_ADDR", ""),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
		// Una duración cero o negativa no es un TTL válido.
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
