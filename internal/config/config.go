package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Location  *time.Location
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Cache     CacheConfig
	Events    EventsConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// CacheConfig controls memoized report totals. A zero TTL disables the cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// EventsConfig holds the AMQP publisher settings. An empty URL disables publishing.
type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// AuthConfig holds login behaviour switches
type AuthConfig struct {
	// PINPrecheck verifies the profile pin before the account secret
	PINPrecheck bool
}

// RateLimitConfig holds requests per minute per IP. Zero disables the limiter.
type RateLimitConfig struct {
	Max     int
	AuthMax int
}

// SeedConfig describes the owner account created at startup when absent
type SeedConfig struct {
	OwnerEmail    string
	OwnerPIN      string
	OwnerLastName string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Africa/Abidjan"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	// Build config based on APP_MODE
	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Location:  loc,
		Database:  loadDatabaseConfig(appMode),
		JWT:       loadJWTConfig(appMode),
		Cookie:    loadCookieConfig(appMode),
		Cache:     loadCacheConfig(),
		Events:    loadEventsConfig(),
		Auth:      AuthConfig{PINPrecheck: getBool("AUTH_PIN_PRECHECK", false)},
		RateLimit: RateLimitConfig{Max: getInt("RATE_LIMIT_MAX", 100), AuthMax: getInt("AUTH_RATE_LIMIT_MAX", 10)},
		Seed: SeedConfig{
			OwnerEmail:    getEnv("SEED_OWNER_EMAIL", ""),
			OwnerPIN:      getEnv("SEED_OWNER_PIN", ""),
			OwnerLastName: getEnv("SEED_OWNER_LAST_NAME", "Propriétaire"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s, TZ: %s]", appMode, config.Database.Driver, loc)
	return config, nil
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("sqlite driver requires DB_PATH"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q (mysql, postgres or sqlite)", c.Database.Driver))
	}

	if c.JWT.Secret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT secrets must not be empty"))
	}
	if c.JWT.Secret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ"))
	}
	if c.IsProd() && (c.JWT.Secret == defaultJWTSecret || c.JWT.RefreshSecret == defaultRefreshSecret) {
		errs = append(errs, errors.New("default JWT secrets are not allowed in prod"))
	}
	if c.JWT.AccessTokenMins <= 0 || c.JWT.RefreshTokenDays <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_MINUTES and REFRESH_TOKEN_DAYS must be positive"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must not be negative"))
	}
	if c.Events.AMQPURL != "" && c.Events.Exchange == "" {
		errs = append(errs, errors.New("EVENTS_EXCHANGE is required when AMQP_URL is set"))
	}
	if (c.Seed.OwnerEmail == "") != (c.Seed.OwnerPIN == "") {
		errs = append(errs, errors.New("SEED_OWNER_EMAIL and SEED_OWNER_PIN must be set together"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

const (
	defaultJWTSecret     = "default_secret"
	defaultRefreshSecret = "default_refresh_secret"
)

// modePrefix returns the env prefix for mode-specific keys
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))

	defaultPort := "3306"
	if driver == DriverPostgres {
		defaultPort = "5432"
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "papatacos"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
		Path:     getEnv(prefix+"DB_PATH", "papatacos.db"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", defaultRefreshSecret),
		AccessTokenMins:  getInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getInt("REFRESH_TOKEN_DAYS", 7),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	return CookieConfig{
		Secure:   getBool(modePrefix(mode)+"COOKIE_SECURE", false),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        time.Duration(getInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		MaxEntries: getInt("CACHE_MAX_ENTRIES", 512),
	}
}

func loadEventsConfig() EventsConfig {
	return EventsConfig{
		AMQPURL:  getEnv("AMQP_URL", ""),
		Exchange: getEnv("EVENTS_EXCHANGE", "papatacos.events"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Capacitor app origins
		return "capacitor://localhost,http://localhost"
	}
	return origins
}
