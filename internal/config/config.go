package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	InstanceID string

	// Slot store: sqlite | postgres | redis
	StoreDriver string
	DBDSN       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Storage-change broker: memory | redis | kafka
	Broker       string
	KafkaBrokers []string
	KafkaTopic   string

	FlushInterval time.Duration
	SessionIdle   time.Duration
	SweepInterval time.Duration
	SeedFile      string

	LogLevel  string
	PrettyLog bool
	LogFile   string

	TemplatesDir string
	StaticDir    string
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:       getenv("PORT", "8080"),
		InstanceID: getenv("INSTANCE_ID", uuid.NewString()),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "sqlite")),
		DBDSN:       getenv("DB_DSN", "revivedgoods.db"), // sqlite file in project root

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		Broker:       strings.ToLower(getenv("BROKER", "memory")),
		KafkaBrokers: splitAndTrim(getenv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "revived-goods.state"),

		FlushInterval: mustDuration("FLUSH_INTERVAL", 2*time.Second),
		SessionIdle:   mustDuration("SESSION_IDLE", 30*time.Minute),
		SweepInterval: mustDuration("SWEEP_INTERVAL", time.Minute),
		SeedFile:      getenv("SEED_FILE", ""),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),
		LogFile:   getenv("LOG_FILE", ""),

		TemplatesDir: getenv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getenv("STATIC_DIR", "./web/static"),
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
