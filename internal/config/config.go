package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrParseConfig возвращается при ошибке разбора TOML/YAML
	ErrParseConfig = errors.New("config: failed to parse config file")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: validation failed")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" yaml:"server"`
	Database    DatabaseConfig    `toml:"database" yaml:"database"`
	DynamoDB    DynamoDBConfig    `toml:"dynamodb" yaml:"dynamodb"`
	Logs        LogsConfig        `toml:"logs" yaml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics" yaml:"metrics"`
	Auth        AuthConfig        `toml:"auth" yaml:"auth"`
	MercadoPago MercadoPagoConfig `toml:"mercadopago" yaml:"mercadopago"`
	RateLimit   RateLimitConfig   `toml:"rate_limit" yaml:"rate_limit"`
	Cache       CacheConfig       `toml:"cache" yaml:"cache"`
	Booking     BookingConfig     `toml:"booking" yaml:"booking"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" yaml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    int `toml:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     int `toml:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}

// DatabaseConfig PostgreSQL: каталог, сотрудники, записи
type DatabaseConfig struct {
	Host            string `toml:"host" yaml:"host" validate:"required"`
	Port            int    `toml:"port" yaml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" yaml:"user" validate:"required"`
	Password        string `toml:"password" yaml:"password"`
	DBName          string `toml:"dbname" yaml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" yaml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" yaml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" yaml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" yaml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN строка подключения lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// DynamoDBConfig документное хранилище: пакеты, клиенты, долги, платежи
type DynamoDBConfig struct {
	Region          string       `toml:"region" yaml:"region" validate:"required"`
	Endpoint        string       `toml:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string       `toml:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string       `toml:"secret_access_key" yaml:"secret_access_key"`
	Tables          TablesConfig `toml:"tables" yaml:"tables"`
}

// TablesConfig имена таблиц
type TablesConfig struct {
	ClientPackages  string `toml:"client_packages" yaml:"client_packages" validate:"required"`
	PendingServices string `toml:"pending_services" yaml:"pending_services" validate:"required"`
	Clients         string `toml:"clients" yaml:"clients" validate:"required"`
	Transactions    string `toml:"transactions" yaml:"transactions" validate:"required"`
	Subscriptions   string `toml:"subscriptions" yaml:"subscriptions" validate:"required"`
}

type LogsConfig struct {
	File  string `toml:"file" yaml:"file"`
	Level string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	Path        string `toml:"path" yaml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" yaml:"service_name" validate:"required_if=Enabled true"`
}

// AuthConfig секрет подписи JWT (HS256)
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" yaml:"jwt_secret" validate:"required,min=16"`
}

// MercadoPagoConfig платежный провайдер
// В mock-режиме платежи не запрашиваются у провайдера
type MercadoPagoConfig struct {
	AccessToken string `toml:"access_token" yaml:"access_token" validate:"required_unless=MockMode true"`
	MockMode    bool   `toml:"mock_mode" yaml:"mock_mode"`
}

// RateLimitConfig ограничение запросов к документному хранилищу
// PerSecond = 0 отключает ограничение
type RateLimitConfig struct {
	PerSecond float64 `toml:"per_second" yaml:"per_second" validate:"min=0"`
	Burst     int     `toml:"burst" yaml:"burst" validate:"min=0"`
}

// CacheConfig кэш отображаемого имени салона
type CacheConfig struct {
	NameTTL int `toml:"name_ttl" yaml:"name_ttl" validate:"min=0"` // секунды
}

// BookingConfig окно записи [SlotWindowStart, SlotWindowEnd) и лимиты черновиков
// DraftTTL в минутах простоя, 0 означает значение по умолчанию
type BookingConfig struct {
	SlotWindowStart string `toml:"slot_window_start" yaml:"slot_window_start" validate:"required,datetime=15:04"`
	SlotWindowEnd   string `toml:"slot_window_end" yaml:"slot_window_end" validate:"required,datetime=15:04"`
	DraftTTL        int    `toml:"draft_ttl" yaml:"draft_ttl" validate:"min=0"`
	MaxDrafts       int    `toml:"max_drafts" yaml:"max_drafts" validate:"min=0"`
}

// DraftIdleTTL время простоя, после которого черновик закрывается
func (c BookingConfig) DraftIdleTTL() time.Duration {
	return time.Duration(c.DraftTTL) * time.Minute
}

// Window окно записи, начало строго раньше конца
func (c BookingConfig) Window() (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(c.SlotWindowStart)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: slot_window_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.SlotWindowEnd)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: slot_window_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: slot window %s-%s is empty", ErrInvalidConfig, start, end)
	}
	return start, end, nil
}

// Переменные окружения, перекрывающие секреты из файла
const (
	EnvDBPassword        = "DB_PASSWORD"
	EnvJWTSecret         = "JWT_SECRET"
	EnvMercadoPagoToken  = "MP_ACCESS_TOKEN"
	EnvMercadoPagoMock   = "MP_MOCK_MODE"
	EnvDynamoAccessKeyID = "DYNAMODB_ACCESS_KEY_ID"
	EnvDynamoSecretKey   = "DYNAMODB_SECRET_ACCESS_KEY"
	EnvDynamoEndpoint    = "DYNAMODB_ENDPOINT"
	EnvHTTPPort          = "HTTP_PORT"
)

// Load читает конфигурацию из TOML или YAML файла (по расширению),
// подгружает .env и применяет переменные окружения, затем валидирует
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
		}
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}
	cfg.applyEnv()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, _, err := cfg.Booking.Window(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
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
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon_booking",
		},
		Cache: CacheConfig{NameTTL: 300},
		Booking: BookingConfig{
			SlotWindowStart: "08:00",
			SlotWindowEnd:   "20:00",
			DraftTTL:        120,
			MaxDrafts:       10000,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvMercadoPagoToken); v != "" {
		c.MercadoPago.AccessToken = v
	}
	if v := os.Getenv(EnvMercadoPagoMock); v != "" {
		if mock, err := strconv.ParseBool(v); err == nil {
			c.MercadoPago.MockMode = mock
		}
	}
	if v := os.Getenv(EnvDynamoAccessKeyID); v != "" {
		c.DynamoDB.AccessKeyID = v
	}
	if v := os.Getenv(EnvDynamoSecretKey); v != "" {
		c.DynamoDB.SecretAccessKey = v
	}
	if v := os.Getenv(EnvDynamoEndpoint); v != "" {
		c.DynamoDB.Endpoint = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}
