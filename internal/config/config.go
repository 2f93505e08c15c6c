package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del cliente y de la API de desarrollo.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://techtest.youapp.ai"`
	APITokenHeader string        `env:"API_TOKEN_HEADER" envDefault:"x-access-token"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"warn"`

	SessionBackend     string `env:"SESSION_BACKEND" envDefault:"file"`
	SessionFile        string `env:"SESSION_FILE" envDefault:".youapp/session.json"`
	SessionSQLitePath  string `env:"SESSION_SQLITE_PATH" envDefault:".youapp/session.db"`
	SessionRedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"youapp:session:"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`

	HTTPPort                string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL             string   `env:"DATABASE_URL"`
	JWTSecret               string   `env:"JWT_SECRET"`
	JWTTTLMinutes           int      `env:"JWT_TTL_MINUTES" envDefault:"1440"`
	CORSAllowedOrigins      []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LoginRateLimitPerMinute int      `env:"LOGIN_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
