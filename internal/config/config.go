package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matchledger/footstats/internal/platform/logging"
)

// Config stores runtime configuration for the ingestion pipeline. Values come
// from an optional YAML file; POSTGRES_* environment variables override the
// database section so credentials stay out of the file.
type Config struct {
	Database Database `yaml:"database"`
	Source   Source   `yaml:"source"`
	Leagues  []string `yaml:"leagues" validate:"required,min=1,dive,required"`
	Seasons  Seasons  `yaml:"seasons"`
	LogLevel logging.Level
}

type Database struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	Name     string `yaml:"database" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Schema   string `yaml:"schema" validate:"required"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_connections" validate:"gte=0"`
}

type Source struct {
	BaseURL         string        `yaml:"base_url" validate:"required,url"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	CacheTTL        time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	RequestInterval time.Duration `yaml:"request_interval" validate:"gte=0"`
}

type Seasons struct {
	StartYear int `yaml:"start_year" validate:"required,gte=1990"`
	EndYear   int `yaml:"end_year" validate:"required,gtefield=StartYear"`
}

func defaults() Config {
	return Config{
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			Name:     "football_stats",
			User:     "postgres",
			Schema:   "football",
			SSLMode:  "disable",
			MaxConns: 5,
		},
		Source: Source{
			BaseURL:         "http://localhost:8017",
			Timeout:         30 * time.Second,
			CacheTTL:        6 * time.Hour,
			RequestInterval: 2 * time.Second,
		},
		Leagues: []string{"EPL"},
		Seasons: Seasons{
			StartYear: 2017,
			EndYear:   2024,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that order. A missing file is not an error; a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	cfg.Database.Host = getEnv("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Name = getEnv("POSTGRES_DB", cfg.Database.Name)
	cfg.Database.User = getEnv("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.SSLMode = getEnv("POSTGRES_SSLMODE", cfg.Database.SSLMode)

	port, err := getEnvAsInt("POSTGRES_PORT", cfg.Database.Port)
	if err != nil {
		return fmt.Errorf("parse POSTGRES_PORT: %w", err)
	}
	cfg.Database.Port = port

	cfg.Source.BaseURL = getEnv("FBREF_BASE_URL", cfg.Source.BaseURL)

	return nil
}

// URL renders a lib/pq connection string. The schema rides along as
// search_path so queries can use bare table names.
func (d Database) URL() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	q.Set("search_path", d.Schema+",public")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: q.Encode(),
	}

	return u.String()
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
