// config - источник загрузки конфигурации консоли администратора.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Файл .env (если есть) подгружается в окружение бинарями до вызова Load.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Backend    BackendConfig    `yaml:"backend"`
	TokenStore TokenStoreConfig `yaml:"token_store"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// TimeoutConfig — дедлайны входящих запросов к консоли.
// Upload применяется к multipart-загрузкам (картинки товаров) вместо Service.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE"        env-default:"15s"`
	Upload  time.Duration `yaml:"upload"  env:"UPLOAD_TIMEOUT" env-default:"2m"`
}

// HTTPConfig — локальный HTTP-сервер консоли.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50095"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// BackendConfig — REST-бэкенд платформы и протокол обновления токенов.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"BACKEND_BASE_URL"`
	RefreshPath    string        `yaml:"refresh_path"    env:"BACKEND_REFRESH_PATH"    env-default:"/admin/auth/refresh"`
	ExpiredCode    string        `yaml:"expired_code"    env:"BACKEND_EXPIRED_CODE"    env-default:"AD1009"`
	LoginPath      string        `yaml:"login_path"      env:"BACKEND_LOGIN_PATH"      env-default:"/login"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" env:"BACKEND_REFRESH_TIMEOUT" env-default:"10s"`
	// RequestTimeout — 0 означает «без таймаута на уровне шлюза».
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BACKEND_REQUEST_TIMEOUT" env-default:"0s"`
	UserAgent      string        `yaml:"user_agent"      env:"BACKEND_USER_AGENT"      env-default:"events-admin-console"`
}

// TokenStoreConfig — где хранится пара токенов администратора.
type TokenStoreConfig struct {
	Driver   string      `yaml:"driver"    env:"TOKEN_STORE_DRIVER" env-default:"memory"`
	FilePath string      `yaml:"file_path" env:"TOKEN_STORE_FILE"   env-default:".admin-console/session.json"`
	Redis    RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"     env-default:"127.0.0.1:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Key      string        `yaml:"key"      env:"REDIS_KEY"      env-default:"admin-console:session"`
	TTL      time.Duration `yaml:"ttl"      env:"REDIS_TTL"      env-default:"0s"`
}

// StoreConfig переводит секцию token_store в параметры фабрики tokenstore.New.
func (t TokenStoreConfig) StoreConfig() tokenstore.Config {
	return tokenstore.Config{
		Driver:   t.Driver,
		FilePath: t.FilePath,
		Redis: &tokenstore.RedisConfig{
			Addr:     t.Redis.Addr,
			Password: t.Redis.Password,
			DB:       t.Redis.DB,
			Key:      t.Redis.Key,
			TTL:      t.Redis.TTL,
		},
	}
}

// ErrNoBaseURL — не задан адрес бэкенда.
var ErrNoBaseURL = errors.New("backend.base_url is required")

// Validate проверяет то, без чего консоль не может работать.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return ErrNoBaseURL
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute url", c.Backend.BaseURL)
	}

	return nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return validated(&cfg)
	}

	// 1) --config
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
