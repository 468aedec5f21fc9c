package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/Skotchmaster/shop_admin/pkg/config"
)

type Config struct {
	ServiceName    string
	Port           string
	LogLevel       string
	DatabaseURL    string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	AuthRequired   bool
	LoginRateLimit float64
	AllowedOrigins []string
	KafkaBrokers   []string
	KafkaTopic     string
	ESURL          string
	ESUser         string
	ESPassword     string
	ESIndex        string
}

func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
}

// Load reads the API service configuration. DATABASE_URL and JWT_SECRET are
// required; Kafka and Elasticsearch stay disabled when unset.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		ServiceName:    pkgconfig.EnvDefault("SERVICE_NAME", "shop-api"),
		Port:           pkgconfig.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:       pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		DatabaseURL:    pkgconfig.EnvDefault("DATABASE_URL", ""),
		JWTSecret:      []byte(pkgconfig.EnvDefault("JWT_SECRET", "")),
		AccessTokenTTL: pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", 12*time.Hour),
		AuthRequired:   pkgconfig.EnvBoolDefault("API_AUTH_REQUIRED", true),
		LoginRateLimit: pkgconfig.EnvFloatDefault("LOGIN_RATE_LIMIT", 5),
		AllowedOrigins: pkgconfig.CSV(pkgconfig.EnvDefault("CORS_ORIGINS", "*")),
		KafkaBrokers:   pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:     pkgconfig.EnvDefault("KAFKA_TOPIC", "admin_events"),
		ESURL:          pkgconfig.EnvDefault("ES_URL", ""),
		ESUser:         pkgconfig.EnvDefault("ES_USER", ""),
		ESPassword:     pkgconfig.EnvDefault("ES_PASSWORD", ""),
		ESIndex:        pkgconfig.EnvDefault("ES_INDEX", "products"),
	}

	if err := pkgconfig.RequireNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := pkgconfig.RequireNonEmpty(string(cfg.JWTSecret), "JWT_SECRET"); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ConsoleConfig struct {
	Port         string
	LogLevel     string
	APIURL       string
	RedisAddr    string
	RedisDB      int
	SessionTTL   time.Duration
	CookieSecure bool
	APITimeout   time.Duration
}

func LoadConsole() (*ConsoleConfig, error) {
	loadDotEnv()

	cfg := &ConsoleConfig{
		Port:         pkgconfig.EnvDefault("CONSOLE_PORT", "8501"),
		LogLevel:     pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		APIURL:       pkgconfig.EnvDefault("API_URL", "http://localhost:8080"),
		RedisAddr:    pkgconfig.EnvDefault("REDIS_ADDR", ""),
		RedisDB:      pkgconfig.EnvIntDefault("REDIS_DB", 0),
		SessionTTL:   pkgconfig.EnvDurationDefault("SESSION_TTL", 12*time.Hour),
		CookieSecure: pkgconfig.EnvBoolDefault("COOKIE_SECURE", false),
		APITimeout:   pkgconfig.EnvDurationDefault("API_TIMEOUT", 10*time.Second),
	}
	if err := pkgconfig.RequireNonEmpty(cfg.APIURL, "API_URL"); err != nil {
		return nil, err
	}
	return cfg, nil
}
