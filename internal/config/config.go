package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	Auth     AuthConfig     // Настройки извлечения claim'а идентичности
	Audit    AuditConfig    // Настройки аудит-колонок
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	RequestTimeout  time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"rat"`
	Password    string `envconfig:"DB_PASSWORD" default:"rat_pass"`
	Name        string `envconfig:"DB_NAME" default:"rat"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int32  `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// AuthConfig содержит настройки проверки JWT и доверенного заголовка шлюза
type AuthConfig struct {
	JWTSecret      string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	TokenTTLHours  int    `envconfig:"AUTH_TOKEN_TTL_HOURS" default:"24"`
	IdentityHeader string `envconfig:"AUTH_IDENTITY_HEADER"` // Пустое значение отключает заголовок
}

// AuditConfig содержит настройки аудита
type AuditConfig struct {
	// SystemOperatorID записывается как operator_id для участников, созданных при первом обращении
	SystemOperatorID int `envconfig:"AUDIT_SYSTEM_OPERATOR_ID" default:"1"`
}

// GetTokenTTL возвращает срок действия токена как time.Duration
func (a AuthConfig) GetTokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load читает конфигурацию из переменных окружения.
// Если рядом есть файл .env, его значения подгружаются первыми, но не перекрывают окружение
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
