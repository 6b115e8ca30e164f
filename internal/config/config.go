// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
//
// ENV всегда накладываются поверх значений из YAML.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Auth     AuthConfig    `yaml:"auth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host     string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// AuthConfig содержит параметры выпуска/проверки токенов и хранилища отзыва.
// JWTSecret должен быть не короче 32 байт, иначе сервис не стартует.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer        string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"pokedex-api"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"REVOCATION_SWEEP_INTERVAL" env-default:"5m"`
	Shards        int           `yaml:"shards" env:"REVOCATION_SHARDS" env-default:"32"`
}

// DBConfig — подключение к MongoDB. Имя БД берётся из пути URI.
type DBConfig struct {
	URL     string        `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"DATABASE_TIMEOUT" env-default:"10s"`
}

// RedisConfig — кэш ответов каталога. Пустой URL отключает кэш.
type RedisConfig struct {
	URL string        `yaml:"url" env:"REDIS_URL"`
	TTL time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"1h"`
}

// CatalogConfig — клиент внешнего каталога (PokeAPI).
type CatalogConfig struct {
	BaseURL       string        `yaml:"base_url" env:"CATALOG_BASE_URL" env-default:"https://pokeapi.co/api/v2/"`
	Timeout       time.Duration `yaml:"timeout" env:"CATALOG_TIMEOUT" env-default:"10s"`
	MaxConcurrent int           `yaml:"max_concurrent" env:"CATALOG_MAX_CONCURRENT" env-default:"6"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	switch {
	case path != "":
		return readFile(path)
	case os.Getenv("CONFIG_PATH") != "":
		return readFile(os.Getenv("CONFIG_PATH"))
	}

	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readFile читает YAML и накладывает ENV поверх.
func readFile(p string) (*Config, error) {
	if _, err := os.Stat(p); err != nil {
		return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
	}

	var cfg Config
	// cleanenv.ReadConfig сам накладывает ENV после разбора файла.
	if err := cleanenv.ReadConfig(p, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", p, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %q: %w", p, err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля. env-required в cleanenv смотрит
// только на наличие переменной, пустое значение он пропускает.
func validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}

	if strings.TrimSpace(cfg.DB.URL) == "" {
		errs = append(errs, errors.New("db.url (DATABASE_URL) is required"))
	}

	return errors.Join(errs...)
}
