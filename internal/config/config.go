package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvTesting collapses the artificial response delay to zero so automated
// tests stay fast. Functional behavior is otherwise identical.
const EnvTesting = "testing"

type Config struct {
	HTTPAddr string
	Env      string

	DBDriver string
	DBDSN    string

	AuthSecret   string
	TokenTTL     time.Duration
	RespondDelay time.Duration

	CORSOrigins []string
	LogLevel    string
}

// Load reads a .env file when present, then the environment. All timing
// knobs live here; nothing downstream reads ambient globals.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("AUTH_HMAC_SECRET", "supersecret-dev-key")
	viper.SetDefault("TOKEN_TTL", "8h")
	viper.SetDefault("RESPOND_DELAY", "500ms")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using environment only")
	}

	cfg := &Config{
		HTTPAddr:     viper.GetString("HTTP_ADDR"),
		Env:          viper.GetString("APP_ENV"),
		DBDriver:     viper.GetString("DB_DRIVER"),
		DBDSN:        viper.GetString("DB_DSN"),
		AuthSecret:   viper.GetString("AUTH_HMAC_SECRET"),
		TokenTTL:     viper.GetDuration("TOKEN_TTL"),
		RespondDelay: viper.GetDuration("RESPOND_DELAY"),
		CORSOrigins:  splitCSV(viper.GetString("CORS_ORIGINS")),
		LogLevel:     viper.GetString("LOG_LEVEL"),
	}
	if cfg.Env == EnvTesting {
		cfg.RespondDelay = 0
	}
	return cfg, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
