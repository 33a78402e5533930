package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/leaguehub/internal/store"
)

const defaultJWTSecret = "supersecret"

type AppConfig struct {
	Env                    string `env:"APP_ENV"                  envDefault:"development"`
	Port                   string `env:"PORT"                     envDefault:"8088"`
	FrontendURL            string `env:"FRONTEND_URL"             envDefault:"http://localhost:3000"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"30"`
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER"   envDefault:"postgres"`
	Host     string `env:"DB_HOST"     envDefault:"localhost"`
	Port     string `env:"DB_PORT"     envDefault:"5432"`
	User     string `env:"DB_USER"     envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	Name     string `env:"DB_NAME"     envDefault:"leaguehub"`
	SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	Path     string `env:"DB_PATH"     envDefault:"leaguehub.db"`
}

type JWTConfig struct {
	AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"         envDefault:"supersecret"`
	AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"60"`
}

// RedisConfig enables the cross-instance change relay when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	Channel  string `env:"REDIS_CHANNEL"  envDefault:"leaguehub:changes"`
}

// BackupConfig enables scheduled workbook backups when Cron is set.
type BackupConfig struct {
	Cron string `env:"BACKUP_CRON"`
	Dir  string `env:"BACKUP_DIR" envDefault:"./backups"`
}

// AdminConfig seeds the first admin account when both fields are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	Redis  RedisConfig
	Backup BackupConfig
	Admin  AdminConfig

	envFile bool
}

// Global DB instance, set by Initialize.
var DB *gorm.DB

var (
	appConfig *Config
	once      sync.Once
)

// Load reads .env when present, then the environment. It does not log, so
// the caller can set up the logger from the result first.
func Load() (*Config, error) {
	cfg := &Config{envFile: godotenv.Load() == nil}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogWarnings reports missing .env and insecure defaults.
func (c *Config) LogWarnings() {
	if !c.envFile {
		log.Info().Msg("No .env file found, relying on system environment variables")
	}

	if c.JWT.AccessTokenSecret == defaultJWTSecret && !c.IsDevelopment() {
		log.Warn().Msg("Using the default JWT secret. Set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if c.DB.Driver == store.DriverPostgres && c.DB.Password == "password" && c.App.Env == "production" {
		log.Warn().Msg("Using the default DB password in production. Set DB_PASSWORD.")
	}
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case store.DriverPostgres:
	case store.DriverSqlite:
		if c.DB.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWT.AccessTokenExpiryMinutes <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRY_MINUTES must be positive")
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// DSN is the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == store.DriverSqlite {
		return c.DB.Path + "?_busy_timeout=5000&_foreign_keys=on"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode,
	)
}

// ConnectDB opens the configured database and sets DB.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormDB, err := store.Open(cfg.DB.Driver, cfg.DSN(), cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	DB = gormDB
	log.Info().Str("driver", cfg.DB.Driver).Msg("Connected to database")
	return gormDB, nil
}

// Initialize loads the configuration and connects to the database once.
// onLoad, when set, runs between the two so logging can be configured
// before anything is logged.
func Initialize(onLoad func(*Config)) error {
	var initErr error
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			initErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = cfg
		if onLoad != nil {
			onLoad(cfg)
		}
		cfg.LogWarnings()

		if _, err := ConnectDB(cfg); err != nil {
			initErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
		}
	})
	return initErr
}

// GetConfig returns the configuration loaded by Initialize.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal().Msg("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
