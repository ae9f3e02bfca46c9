// Package config loads service settings from .env, an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// App is the name used for the config file and env prefix.
const App = "talent-pipeline"

type Config struct {
	Debug    bool     `mapstructure:"debug"`
	JSON     bool     `mapstructure:"json"`
	HTTP     HTTP     `mapstructure:"http"`
	Database Database `mapstructure:"database"`
	Events   Events   `mapstructure:"events"`
	Auth     Auth     `mapstructure:"auth"`
	API      API      `mapstructure:"api"`
}

type HTTP struct {
	Addr string `mapstructure:"addr"`
	// IntakeRate limits public submissions per client IP per second; 0 disables it.
	IntakeRate  float64 `mapstructure:"intake-rate"`
	IntakeBurst int     `mapstructure:"intake-burst"`
}

type Database struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Seed         bool   `mapstructure:"seed"`
	MaxOpenConns int    `mapstructure:"max-open-conns"`
}

// Events configures the RabbitMQ event stream. An empty URL disables it.
type Events struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

// API is where the board and move commands reach a running server.
type API struct {
	URL   string `mapstructure:"url"`
	Email string `mapstructure:"email"`
}

type Auth struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.intake-rate", 2.0)
	v.SetDefault("http.intake-burst", 10)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.seed", false)
	v.SetDefault("database.max-open-conns", 0)
	v.SetDefault("events.url", "")
	v.SetDefault("events.queue", "candidate_events")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.ttl", 12*time.Hour)
	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("api.email", "recruiter@example.com")

	v.SetEnvPrefix("TALENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Legacy unprefixed names.
	_ = v.BindEnv("database.dsn", "TALENT_DATABASE_DSN", "DB_DSN")
	_ = v.BindEnv("events.url", "TALENT_EVENTS_URL", "RABBITMQ_URL")
	_ = v.BindEnv("auth.secret", "TALENT_AUTH_SECRET", "JWT_SECRET")
}

// Load reads .env (when present) and the config file, then decodes v.
// A missing config file is not an error unless file was given explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings needed to serve requests.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "postgresql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %s", c.Database.Driver)
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required (set JWT_SECRET)")
	}
	if c.HTTP.IntakeRate < 0 {
		return errors.New("http.intake-rate must not be negative")
	}
	if c.Auth.TTL <= 0 {
		return errors.New("auth.ttl must be positive")
	}
	return nil
}
