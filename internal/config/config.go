package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/config"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/database"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
)

// Config holds all configuration for the chat API service.
type Config struct {
	Server    ServerConfig
	Database  database.Config
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       log.Config
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	APIKey string
}

// RateLimitConfig holds fixed-window rate limit configuration.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	TTL     time.Duration
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	v, err := config.Load(config.GetEnv("CONFIG_PATH", "./configs"), config.GetEnv("CONFIG_NAME", "config"))
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: database.Config{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			FilePath:        v.GetString("database.file_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime_minutes"),
		},
		Auth: AuthConfig{
			APIKey: v.GetString("auth.api_key"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("rate_limit.enabled"),
			Limit:   v.GetInt("rate_limit.limit"),
			TTL:     v.GetDuration("rate_limit.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: log.Config{
			Level:       v.GetString("log.level"),
			Pretty:      v.GetBool("log.pretty"),
			ServiceName: v.GetString("log.service_name"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "rag_chat")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.file_path", "rag_chat.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)

	v.SetDefault("auth.api_key", "")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.ttl", time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "chat-api")
}
