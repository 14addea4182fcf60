package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// PayrollConfig holds settings for the payroll engine and time ledger.
// Fields can be overridden from the TOML file named by PAYROLL_CONFIG_FILE.
type PayrollConfig struct {
	Workers               int    `toml:"workers"`
	Timezone              string `toml:"timezone"`
	CountWeekendsAsAbsent bool   `toml:"count_weekends_as_absent"`
	AutoGenerate          bool   `toml:"auto_generate"`
	ConfigFile            string `toml:"-"`
}

// Location resolves the configured timezone, falling back to UTC.
func (p PayrollConfig) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		slog.Warn("invalid payroll timezone, using UTC", "timezone", p.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func Load() (*Config, error) {
	// .env is optional; the CLI usually runs with a plain environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	workers, err := strconv.Atoi(getEnv("PAYROLL_WORKERS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKERS: %w", err)
	}
	countWeekends, err := strconv.ParseBool(getEnv("PAYROLL_COUNT_WEEKENDS_AS_ABSENT", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_COUNT_WEEKENDS_AS_ABSENT: %w", err)
	}
	autoGenerate, err := strconv.ParseBool(getEnv("PAYROLL_AUTO_GENERATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_AUTO_GENERATE: %w", err)
	}

	config.Payroll = PayrollConfig{
		Workers:               workers,
		Timezone:              getEnv("PAYROLL_TIMEZONE", "Asia/Manila"),
		CountWeekendsAsAbsent: countWeekends,
		AutoGenerate:          autoGenerate,
		ConfigFile:            getEnv("PAYROLL_CONFIG_FILE", ""),
	}

	if config.Payroll.ConfigFile != "" {
		if err := config.Payroll.applyFile(config.Payroll.ConfigFile); err != nil {
			return nil, err
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyFile overlays the [payroll] table of a TOML file onto p.
// Keys missing from the file keep their environment values.
func (p *PayrollConfig) applyFile(path string) error {
	var file struct {
		Payroll PayrollConfig `toml:"payroll"`
	}
	file.Payroll = *p

	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("failed to read payroll config file %s: %w", path, err)
	}

	file.Payroll.ConfigFile = path
	*p = file.Payroll
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.Workers < 1 {
		return fmt.Errorf("PAYROLL_WORKERS must be at least 1")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.Payroll.Timezone); err != nil {
		return fmt.Errorf("invalid PAYROLL_TIMEZONE: %w", err)
	}
	return nil
}

// ValidateAPI adds the checks only the HTTP server needs.
func (c *Config) ValidateAPI() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string with credentials escaped.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
