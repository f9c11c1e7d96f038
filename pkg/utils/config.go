package utils

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string

	// TrustProxy honours X-Forwarded-For and X-Real-IP for the client
	// address. Enable only behind a proxy that overwrites them.
	TrustProxy bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	// Collation used for case-insensitive identifier matching. Empty means
	// LOWER() comparison.
	Collation string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
	Idle    time.Duration
}

var collationPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// LoadConfig reads the env file at path (if present) and the process
// environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "stempede-store")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_IDLE", "10m")
	v.SetDefault("TRUST_PROXY", false)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	collation := strings.TrimSpace(v.GetString("DB_COLLATION"))
	if collation != "" && !collationPattern.MatchString(collation) {
		return nil, errors.New("DB_COLLATION contains invalid characters")
	}

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),

			TrustProxy: v.GetBool("TRUST_PROXY"),
		},
		Database: DatabaseConfig{
			Driver:    strings.ToLower(v.GetString("DB_DRIVER")),
			Host:      v.GetString("DB_HOST"),
			Port:      v.GetString("DB_PORT"),
			Name:      v.GetString("DB_NAME"),
			User:      v.GetString("DB_USER"),
			Password:  v.GetString("DB_PASS"),
			MaxConns:  v.GetInt32("DB_MAX_CONNS"),
			Collation: collation,
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
			Idle:    v.GetDuration("RATE_LIMIT_IDLE"),
		},
	}

	return config, nil
}
