// Package config loads service configuration from a yaml file and/or
// environment variables, env taking precedence over the file.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// BackendConfig points at the shop REST API every page talks to.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"15s"`
}

type SessionConfig struct {
	DSN        string        `yaml:"dsn" env:"SESSION_DB_DSN" env-required:"true"`
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"cms_session"`
	Secure     bool          `yaml:"secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"12h"`
}

type StorageConfig struct {
	Driver          string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"local"`
	LocalDir        string `yaml:"local_dir" env:"LOCAL_UPLOAD_DIR" env-default:"./storage/uploads"`
	LocalURLPrefix  string `yaml:"local_url_prefix" env:"LOCAL_UPLOAD_URL_PREFIX" env-default:"/uploads"`
	S3Region        string `yaml:"s3_region" env:"S3_REGION"`
	S3Bucket        string `yaml:"s3_bucket" env:"S3_BUCKET"`
	S3Prefix        string `yaml:"s3_prefix" env:"S3_PREFIX" env-default:"uploads"`
	S3PublicBaseURL string `yaml:"s3_public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads config by priority: explicit path, CONFIG_PATH, env only.
// Env variables always overlay values read from the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	return &cfg, nil
}
