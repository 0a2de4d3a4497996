package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
	Wizard     WizardConfig     `toml:"wizard"`
	Stripe     StripeConfig     `toml:"stripe"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int     `toml:"http_port"`
	ReadTimeout     int     `toml:"read_timeout"`
	WriteTimeout    int     `toml:"write_timeout"`
	IdleTimeout     int     `toml:"idle_timeout"`
	ShutdownTimeout int     `toml:"shutdown_timeout"`
	RateLimit       float64 `toml:"rate_limit"` // запросов в секунду на клиента, 0 = без ограничения
	RateBurst       int     `toml:"rate_burst"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"` // накатывать миграции при старте
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки кэша сущностей
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
	TTL       int    `toml:"ttl"` // время жизни сущностей в кэше, секунды
}

// BookingAPIConfig настройки REST API бэкенда
type BookingAPIConfig struct {
	URL       string  `toml:"url"`
	Timeout   int     `toml:"timeout"`
	RateLimit float64 `toml:"rate_limit"` // запросов в секунду, 0 = без ограничения
	RateBurst int     `toml:"rate_burst"`
}

// WizardConfig настройки мастера бронирования
type WizardConfig struct {
	SessionTTL     int `toml:"session_ttl"`     // секунды без активности до удаления сессии
	SettingsTTL    int `toml:"settings_ttl"`    // секунды кэширования настроек бэкенда
	ExpiryInterval int `toml:"expiry_interval"` // период очистки сессий, секунды

	Category   string `toml:"category"`
	ServiceID  int64  `toml:"service_id"`
	LocationID int64  `toml:"location_id"`
	EmployeeID int64  `toml:"employee_id"`

	ShowCategory bool `toml:"show_category"`
	ShowService  bool `toml:"show_service"`
	ShowLocation bool `toml:"show_location"`
	ShowEmployee bool `toml:"show_employee"`
}

// StripeConfig настройки Stripe. Пустой ключ отключает шлюз.
type StripeConfig struct {
	SecretKey string `toml:"secret_key"`
}

// Load загружает .env (если есть), затем TOML файл и переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoad, err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_booking_wizard",
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			KeyPrefix: "wizard:",
			TTL:       300,
		},
		BookingAPI: BookingAPIConfig{Timeout: 5},
		Wizard: WizardConfig{
			SessionTTL:     3600,
			SettingsTTL:    60,
			ExpiryInterval: 60,
			ShowCategory:   true,
			ShowService:    true,
			ShowLocation:   true,
			ShowEmployee:   true,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DATABASE_PORT=%q", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("BOOKING_API_URL"); v != "" {
		c.BookingAPI.URL = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Stripe.SecretKey = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.RateLimit < 0 || c.BookingAPI.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level=%q", ErrInvalidConfig, c.Logs.Level)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}

	if c.BookingAPI.URL == "" {
		return fmt.Errorf("%w: booking_api.url is required", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.BookingAPI.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: booking_api.url=%q", ErrInvalidConfig, c.BookingAPI.URL)
	}
	if c.BookingAPI.Timeout <= 0 {
		return fmt.Errorf("%w: booking_api.timeout must be positive", ErrInvalidConfig)
	}

	if c.Wizard.SessionTTL <= 0 || c.Wizard.ExpiryInterval <= 0 {
		return fmt.Errorf("%w: wizard.session_ttl and wizard.expiry_interval must be positive", ErrInvalidConfig)
	}
	if c.Wizard.SettingsTTL < 0 || c.Redis.TTL < 0 {
		return fmt.Errorf("%w: ttl must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Seconds переводит значение конфигурации в time.Duration
func Seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}
