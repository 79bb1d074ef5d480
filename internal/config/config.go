package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
}

// StorageConfig selects the persistence backend. Driver is "file" (default)
// or "postgres".
type StorageConfig struct {
	Driver  string
	DataDir string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig is optional: an empty Addr disables the task cache and the
// auth rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
	Window time.Duration
}

// DefaultSessionWindow is the fixed interval after login during which a
// session stays valid. Activity does not extend it.
const DefaultSessionWindow = 10 * time.Minute

func Load() *Config {
	return &Config{
		AppName: getEnv("APP_NAME", "tasktracker"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),

		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "file"),
			DataDir: getEnv("DATA_DIR", "data"),
		},

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},

		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			Window: getDurationEnv("SESSION_WINDOW", DefaultSessionWindow),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).WithError(err).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}
