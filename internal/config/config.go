package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8090"`
}

type Remote struct {
	BaseURL        string        `yaml:"BASE_URL" env:"REMOTE_BASE_URL" env-default:"http://localhost:8080"`
	ProbeTimeout   time.Duration `yaml:"PROBE_TIMEOUT" env:"REMOTE_PROBE_TIMEOUT" env-default:"3s"`
	RequestTimeout time.Duration `yaml:"REQUEST_TIMEOUT" env:"REMOTE_REQUEST_TIMEOUT" env-default:"10s"`
}

// Offline selects where the offline product list lives. Driver is one of
// file, sqlite or postgres.
type Offline struct {
	Driver string `yaml:"DRIVER" env:"OFFLINE_DRIVER" env-default:"file"`
	Dir    string `yaml:"DIR" env:"OFFLINE_DIR" env-default:".inventory"`
	DSN    string `yaml:"DSN" env:"OFFLINE_DSN"`
	Key    string `yaml:"KEY" env:"OFFLINE_KEY" env-default:"inventory_offline_products"`
}

type CacheConfig struct {
	Backend    string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	StaleTime  time.Duration `yaml:"stale_time" env:"CACHE_STALE_TIME" env-default:"30s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"10m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type OtelConfig struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"inventory-client"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel     string       `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer   HTTPServer   `yaml:"http_server"`
	Remote       Remote       `yaml:"remote"`
	Offline      Offline      `yaml:"offline"`
	Cache        CacheConfig  `yaml:"cache"`
	RedisConnect RedisConnect `yaml:"redis"`
	Otel         OtelConfig   `yaml:"otel"`
}

// Load reads configPath, falling back to CONFIG_PATH. Without either, only
// defaults and environment variables are used.
func Load(configPath string) (*Config, error) {

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath == "" {
		return LoadFromEnv()
	}

	return LoadConfigFromPath(configPath)
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func LoadFromEnv() (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.Remote.BaseURL); err != nil {
		return fmt.Errorf("remote.BASE_URL is invalid: %w", err)
	}

	switch c.Offline.Driver {
	case "file":
	case "sqlite", "postgres":
		if c.Offline.DSN == "" {
			return fmt.Errorf("offline.DSN is required for driver %q", c.Offline.Driver)
		}
	default:
		return fmt.Errorf("offline.DRIVER %q is not supported", c.Offline.Driver)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend %q is not supported", c.Cache.Backend)
	}

	if c.Offline.Key == "" {
		return errors.New("offline.KEY cannot be empty")
	}

	return nil
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
