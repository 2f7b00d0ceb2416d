package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration. Every field has a sensible local-dev default
// so the service boots with an empty environment.
type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	DBUser string `env:"DB_USER" envDefault:"root"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" envDefault:"127.0.0.1:3306"`
	DBName string `env:"DB_NAME" envDefault:"travelog"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	DiaryCacheTTL   time.Duration `env:"DIARY_CACHE_TTL" envDefault:"10m"`
	DiaryCacheSweep time.Duration `env:"DIARY_CACHE_SWEEP" envDefault:"1m"`

	// Design-platform integration (diary export). Left empty the export
	// endpoint responds 503.
	DesignBaseURL      string `env:"DESIGN_BASE_URL"`
	DesignClientID     string `env:"DESIGN_CLIENT_ID"`
	DesignClientSecret string `env:"DESIGN_CLIENT_SECRET"`
}

func LoadEnv() Env {
	var e Env
	if err := env.Parse(&e); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}
	return e
}
