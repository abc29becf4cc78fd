package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/looklab/LookLab-BookingService/internal/domain"
	"github.com/looklab/LookLab-BookingService/pkg/types"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Razorpay RazorpayConfig `toml:"razorpay"`
	Auth     AuthConfig     `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN собирает строку подключения к Postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры салона: рабочие часы, сетка слотов и ёмкость
type BookingConfig struct {
	OpenTime            string `toml:"open_time"`  // "10:00"
	CloseTime           string `toml:"close_time"` // "20:00"
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	SlotCapacity        int    `toml:"slot_capacity"`
	Currency            string `toml:"currency"`
}

type RazorpayConfig struct {
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	BaseURL   string `toml:"base_url"`
	Timeout   int    `toml:"timeout"` // seconds
}

type AuthConfig struct {
	// StaffKey значение заголовка X-Staff-Key для административных маршрутов
	StaffKey string `toml:"staff_key"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Booking: BookingConfig{
			OpenTime:            "10:00",
			CloseTime:           "20:00",
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			SlotCapacity:        domain.DefaultSlotCapacity,
			Currency:            domain.DefaultCurrency,
		},
		Razorpay: RazorpayConfig{
			BaseURL: "https://api.razorpay.com",
			Timeout: 10,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Booking.SlotCapacity < domain.MinSlotCapacity || c.Booking.SlotCapacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: slot_capacity must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	if c.Booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	openTime, err := types.NewTimeStringFromString(c.Booking.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open_time: %v", ErrInvalidConfig, err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Booking.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close_time: %v", ErrInvalidConfig, err)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: open_time must be before close_time", ErrInvalidConfig)
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("%w: razorpay key_id and key_secret are required", ErrInvalidConfig)
	}
	if c.Auth.StaffKey == "" {
		return fmt.Errorf("%w: auth staff_key is required", ErrInvalidConfig)
	}
	return nil
}
