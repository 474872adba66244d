package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int    `yaml:"port" env:"SERVER_PORT" validate:"gt=0,lte=65535"`
	Env  string `yaml:"env" env:"ENV"`
}

type OmnicasaConfig struct {
	Username      string        `yaml:"username" env:"OMNICASA_USERNAME" validate:"required"`
	Password      string        `yaml:"password" env:"OMNICASA_PASSWORD" validate:"required"`
	Language      string        `yaml:"language" env:"OMNICASA_LANGUAGE"`
	APIVersion    string        `yaml:"api_version" env:"OMNICASA_API_VERSION"`
	BaseURL       string        `yaml:"base_url" env:"OMNICASA_BASE_URL" validate:"omitempty,url"`
	Timeout       time.Duration `yaml:"timeout" env:"OMNICASA_TIMEOUT" validate:"gte=0"`
	RetryAttempts int           `yaml:"retry_attempts" env:"OMNICASA_RETRY_ATTEMPTS" validate:"gte=1,lte=10"`
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" env:"CACHE_ENABLED"`
	Driver    string        `yaml:"driver" env:"CACHE_DRIVER" validate:"oneof=file redis mysql memory"`
	Directory string        `yaml:"directory" env:"CACHE_DIRECTORY"`
	Namespace string        `yaml:"namespace" env:"CACHE_NAMESPACE" validate:"required"`
	TTL       time.Duration `yaml:"ttl" env:"CACHE_TTL" validate:"gte=0"`
}

type RedisConfig struct {
	Host        string `yaml:"host" env:"REDIS_HOST" validate:"required,hostname|ip"`
	Port        int    `yaml:"port" env:"REDIS_PORT" validate:"required,gt=0,lte=65535"`
	Password    string `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int    `yaml:"db" env:"REDIS_DB" validate:"gte=0"`
	TLSEnabled  bool   `yaml:"tls_enabled" env:"REDIS_TLS_ENABLED"`
	TLSCertFile string `yaml:"tls_cert_file" env:"REDIS_TLS_CERT_FILE"`
	TLSKeyFile  string `yaml:"tls_key_file" env:"REDIS_TLS_KEY_FILE"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn" env:"MYSQL_DSN"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info error DEBUG INFO ERROR"`
	File        string `yaml:"file" env:"LOG_FILE"`
	RequestFile string `yaml:"request_file" env:"OMNICASA_LOG_FILE"`
	MaxSizeMB   int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" validate:"gte=0"`
	MaxBackups  int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" validate:"gte=0"`
	MaxAgeDays  int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" validate:"gte=0"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" validate:"gte=0"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM" validate:"gte=0"`
	Burst             int `yaml:"burst" env:"RATE_LIMIT_BURST" validate:"gte=0"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Omnicasa  OmnicasaConfig  `yaml:"omnicasa"`
	Cache     CacheConfig     `yaml:"cache"`
	Redis     RedisConfig     `yaml:"redis"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Logging   LoggingConfig   `yaml:"logging"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Default returns the configuration used for any value the file and environment leave unset.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Omnicasa: OmnicasaConfig{
			Language:      "nl",
			APIVersion:    "1.12",
			RetryAttempts: 1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Driver:    "file",
			Namespace: "omnicasa_cache",
			TTL:       3600 * time.Second,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 7,
			MaxAgeDays: 7,
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 100,
			Burst:             10,
		},
	}
}

// LoadConfig reads the YAML file at path, applies environment overrides and validates the result.
// A missing file is not an error; defaults and the environment are used instead.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %v", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// override every section with the environment variables named in its env tags
func applyEnv(cfg *Config) error {
	sections := []interface{}{
		&cfg.Server, &cfg.Omnicasa, &cfg.Cache, &cfg.Redis,
		&cfg.MySQL, &cfg.Logging, &cfg.JWT, &cfg.RateLimit,
	}
	for _, s := range sections {
		if err := env.Parse(s); err != nil {
			return fmt.Errorf("failed to parse environment: %v", err)
		}
	}
	return nil
}

// Validate checks field constraints and the rules that span sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	if c.Cache.Driver == "mysql" && c.MySQL.DSN == "" {
		return fmt.Errorf("MYSQL_DSN is required when the cache driver is mysql")
	}
	if c.Redis.TLSEnabled && c.Redis.TLSCertFile != "" {
		if _, err := os.Stat(c.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", c.Redis.TLSCertFile)
		}
	}
	return nil
}
