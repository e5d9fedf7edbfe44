package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	SecretKey         string        `mapstructure:"SECRET_KEY"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address
	// is always the client IP.
	TrustedProxies    []string      `mapstructure:"TRUSTED_PROXIES"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	StatsCacheTTL time.Duration `mapstructure:"STATS_CACHE_TTL"`
}

var AppConfig Config

// DefaultCORSOrigins are the front-ends allowed to send the token cookie.
var DefaultCORSOrigins = []string{
	"https://burly-voyage.surge.sh",
	"http://localhost:5173",
	"https://b10-a11.web.app",
	"https://b10-a11.firebaseapp.com",
}

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("SECRET_KEY is required")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "service_review")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("TOKEN_TTL", 365*24*time.Hour)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ORIGINS", DefaultCORSOrigins)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("STATS_CACHE_TTL", 5*time.Minute)
}

// Load reads configuration from an optional config.yaml and the environment.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// List values from the environment arrive as comma separated strings.
	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))
	cfg.TrustedProxies = splitList(strings.Join(cfg.TrustedProxies, ","))

	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecret
	}
	return cfg, nil
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

// LoadConfig populates AppConfig and exits when the configuration is unusable.
func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
