package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreDB     = "db"
)

type Config struct {
	ServerPort     int
	DatabaseURL    string
	DatabaseDriver string
	LogLevel       string

	CORSOrigins []string
	BodyLimit   string

	SessionStore      string
	SessionTTL        time.Duration
	SessionSigningKey []byte
	CookieSecure      bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	AuthRateLimit float64
	AuthRateBurst int

	CSRFEnabled      bool
	AllowAdminSignup bool

	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		ServerPort:     EnvIntDefault("SERVER_PORT", 5000),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseDriver: EnvDefault("DB_DRIVER", "pgx"),
		LogLevel:       EnvDefault("LOG_LEVEL", "info"),

		CORSOrigins: csvDefault("CORS_ORIGINS", []string{"http://localhost:5173"}),
		BodyLimit:   EnvDefault("BODY_LIMIT", "50M"),

		SessionStore:      EnvDefault("SESSION_STORE", SessionStoreMemory),
		SessionTTL:        EnvDurationDefault("SESSION_TTL", 24*time.Hour),
		SessionSigningKey: []byte(os.Getenv("SESSION_SIGNING_KEY")),
		CookieSecure:      EnvBoolDefault("COOKIE_SECURE", false),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       EnvIntDefault("REDIS_DB", 0),
		RedisPrefix:   EnvDefault("REDIS_PREFIX", "session"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		AuthRateLimit: EnvFloatDefault("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: EnvIntDefault("AUTH_RATE_BURST", 10),

		CSRFEnabled:      EnvBoolDefault("CSRF_ENABLED", false),
		AllowAdminSignup: EnvBoolDefault("ALLOW_ADMIN_SIGNUP", true),

		DefaultAdminEmail:    EnvDefault("DEFAULT_ADMIN_EMAIL", "admin@admin.com"),
		DefaultAdminPassword: EnvDefault("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

func csvDefault(key string, def []string) []string {
	if v := CSV(os.Getenv(key)); len(v) > 0 {
		return v
	}
	return def
}
