package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address         string        `yaml:"address"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Bridge struct {
		Address         string        `yaml:"address"`
		PingInterval    time.Duration `yaml:"ping_interval"`
		PongTimeout     time.Duration `yaml:"pong_timeout"`
		EventsPerSecond float64       `yaml:"events_per_second"`
		EventBurst      int           `yaml:"event_burst"`
		NotifyPerSecond float64       `yaml:"notify_per_second"`
	} `yaml:"bridge"`

	Persistence struct {
		Profile string `yaml:"profile"`
	} `yaml:"persistence"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	Export struct {
		Directory string `yaml:"directory"`
	} `yaml:"export"`

	Polling struct {
		StatsInterval time.Duration `yaml:"stats_interval"`
	} `yaml:"polling"`

	Discovery struct {
		ReconnectAttempts int           `yaml:"reconnect_attempts"`
		ReconnectBackoff  time.Duration `yaml:"reconnect_backoff"`
	} `yaml:"discovery"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Auth struct {
		JWTSecret      string        `yaml:"jwt_secret"`
		AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	} `yaml:"auth"`
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	// Server
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be > 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}

	// Bridge
	if c.Bridge.Address == "" {
		return fmt.Errorf("bridge.address must not be empty")
	}
	if c.Bridge.PingInterval <= 0 {
		return fmt.Errorf("bridge.ping_interval must be > 0")
	}
	if c.Bridge.PongTimeout <= 0 {
		return fmt.Errorf("bridge.pong_timeout must be > 0")
	}
	if c.Bridge.EventsPerSecond <= 0 {
		return fmt.Errorf("bridge.events_per_second must be > 0")
	}
	if c.Bridge.EventBurst <= 0 {
		return fmt.Errorf("bridge.event_burst must be > 0")
	}
	if c.Bridge.NotifyPerSecond <= 0 {
		return fmt.Errorf("bridge.notify_per_second must be > 0")
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address must not be empty when redis.enabled=true")
		}
		if c.Redis.PoolSize <= 0 {
			return fmt.Errorf("redis.pool_size must be > 0 when redis.enabled=true")
		}
	}

	// Export
	if c.Export.Directory == "" {
		return fmt.Errorf("export.directory must not be empty")
	}

	// Polling
	if c.Polling.StatsInterval <= 0 {
		return fmt.Errorf("polling.stats_interval must be > 0")
	}

	// Discovery
	if c.Discovery.ReconnectAttempts < 0 {
		return fmt.Errorf("discovery.reconnect_attempts must be >= 0")
	}
	if c.Discovery.ReconnectBackoff <= 0 {
		return fmt.Errorf("discovery.reconnect_backoff must be > 0")
	}

	// Monitoring
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort <= 0 {
		return fmt.Errorf("monitoring.prometheus_port must be > 0 when prometheus_enabled=true")
	}

	// Logging
	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level must not be empty")
	}

	// Auth
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}

	return nil
}

// Load reads configuration from YAML file, applies defaults and env overrides.
func Load(configPath string) (*Config, error) {
	// If file does not exist, fall back to defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns configuration with sane defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Address = ":7420"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 10 * time.Second

	cfg.Bridge.Address = ":7421"
	cfg.Bridge.PingInterval = 30 * time.Second
	cfg.Bridge.PongTimeout = 60 * time.Second
	cfg.Bridge.EventsPerSecond = 100
	cfg.Bridge.EventBurst = 200
	cfg.Bridge.NotifyPerSecond = 30

	cfg.Persistence.Profile = "default"

	cfg.Redis.Enabled = false
	cfg.Redis.Address = "localhost:6379"
	cfg.Redis.DB = 0
	cfg.Redis.PoolSize = 5

	cfg.Export.Directory = "exports"

	cfg.Polling.StatsInterval = 30 * time.Second

	cfg.Discovery.ReconnectAttempts = 3
	cfg.Discovery.ReconnectBackoff = 2 * time.Second

	cfg.Monitoring.PrometheusEnabled = true
	cfg.Monitoring.PrometheusPort = 9120

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	cfg.Auth.JWTSecret = "change-me-in-production"
	cfg.Auth.AccessTokenTTL = 12 * time.Hour

	return cfg
}

func (c *Config) applyEnvOverrides() {
	// Apply environment variable overrides
	if addr := os.Getenv("CASTDECK_SERVER_ADDRESS"); addr != "" {
		c.Server.Address = addr
	}
	if addr := os.Getenv("CASTDECK_BRIDGE_ADDRESS"); addr != "" {
		c.Bridge.Address = addr
	}
	if addr := os.Getenv("CASTDECK_REDIS_ADDRESS"); addr != "" {
		c.Redis.Address = addr
	}
	if level := os.Getenv("CASTDECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if secret := os.Getenv("CASTDECK_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
}
