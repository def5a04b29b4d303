package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Business BusinessConfig `toml:"business"`
	Pricing  PricingConfig  `toml:"pricing"`
	Stripe   StripeConfig   `toml:"stripe"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig параметры площадки.
// Timezone - фиксированная таймзона бизнеса, в которой интерпретируются
// все даты и времена бронирований независимо от таймзоны сервера.
type BusinessConfig struct {
	VenueName  string `toml:"venue_name"`
	Timezone   string `toml:"timezone"`
	AdminEmail string `toml:"admin_email"`
	ManageURL  string `toml:"manage_url"` // базовый URL страницы self-service управления бронированием

	// Текущая редакция договора аренды; снимок текста фиксируется на
	// бронировании в момент акцепта
	ContractVersion string `toml:"contract_version"`
	ContractText    string `toml:"contract_text"`
}

// PricingConfig тарифы аренды (все суммы в центах)
type PricingConfig struct {
	WeekdayHourlyRateCents    int64 `toml:"weekday_hourly_rate_cents"`
	WeekendHourlyRateCents    int64 `toml:"weekend_hourly_rate_cents"`
	ExtraSetupHourlyRateCents int64 `toml:"extra_setup_hourly_rate_cents"`
	DepositCents              int64 `toml:"deposit_cents"`
}

// StripeConfig настройки Stripe Checkout
type StripeConfig struct {
	SecretKey  string `toml:"secret_key"`
	SuccessURL string `toml:"success_url"`
	CancelURL  string `toml:"cancel_url"`
	Currency   string `toml:"currency"`
}

// SMTPConfig настройки исходящей почты.
// При пустом Host отправка заменяется логированием (mock-режим для dev).
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	FromName string `toml:"from_name"`
}

// AdminConfig настройки админского API
type AdminConfig struct {
	APIKey string `toml:"api_key"`
}

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Business.Timezone == "" {
		return fmt.Errorf("config: business.timezone is required")
	}
	if c.Pricing.WeekdayHourlyRateCents <= 0 || c.Pricing.WeekendHourlyRateCents <= 0 {
		return fmt.Errorf("config: pricing hourly rates must be positive")
	}
	if c.Pricing.DepositCents < 0 || c.Pricing.ExtraSetupHourlyRateCents < 0 {
		return fmt.Errorf("config: pricing amounts must not be negative")
	}
	return nil
}
