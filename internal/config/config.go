package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Documents DocumentsConfig
	PDF       PDFConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// DatabaseConfig holds the relational catalog connection settings.
// Driver selects "postgres" for deployments and "sqlite" for local
// single-user installations (the catalog originated as a SQLite file).
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
}

// DocumentsConfig locates the static PDF collateral that gets appended
// to generated offers.
type DocumentsConfig struct {
	// DatasheetBaseDir is the root directory for product datasheet PDFs;
	// product records store paths relative to it
	DatasheetBaseDir string
	// CompanyDocsBaseDir is the root directory for company document PDFs
	CompanyDocsBaseDir string
}

// PDFConfig holds generation-time defaults for the offer document engine
type PDFConfig struct {
	// TextsPath optionally points to a JSON file overriding the built-in
	// German display texts
	TextsPath string
}

type AuthConfig struct {
	// JWTSecret signs and validates bearer tokens (HS256)
	JWTSecret string
	// TokenTTL is the lifetime of issued tokens in seconds
	TokenTTL int
	// AdminAPIKey is exchanged for a token at /auth/token
	AdminAPIKey string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistPaths    []string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	// OfferCleanupSchedule is a cron expression for the generated-offer
	// retention sweep
	OfferCleanupSchedule string
	// OfferRetentionDays is how long generated offer PDFs are kept
	OfferRetentionDays int
}

// ConnectionString builds a PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TokenTTLDuration returns the token lifetime as duration
func (a *AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Second
}

// RetentionDuration returns the offer retention window as duration
func (j *JobsConfig) RetentionDuration() time.Duration {
	return time.Duration(j.OfferRetentionDays) * 24 * time.Hour
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Auth.AdminAPIKey == "" {
		cfg.Auth.AdminAPIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Storage.CloudConnectionString == "" {
		cfg.Storage.CloudConnectionString = v.GetString("STORAGE_CONNECTION_STRING")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Sunline Offer API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "offerdb")
	v.SetDefault("database.user", "offer_user")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlitepath", "./data/app_data.db")
	v.SetDefault("database.maxopenconns", 10)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 300)

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localbasepath", "./data/storage")
	v.SetDefault("storage.cloudcontainer", "offers")

	// Document collateral defaults
	v.SetDefault("documents.datasheetbasedir", "./data/product_datasheets")
	v.SetDefault("documents.companydocsbasedir", "./data/company_docs")

	// Auth defaults
	v.SetDefault("auth.tokenttl", 3600)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readtimeout", 15)
	v.SetDefault("server.writetimeout", 60)
	v.SetDefault("server.requesttimeout", 120)

	// CORS defaults
	v.SetDefault("cors.allowedorigins", []string{"*"})
	v.SetDefault("cors.allowedmethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedheaders", []string{"Accept", "Authorization", "Content-Type"})
	v.SetDefault("cors.exposedheaders", []string{"Content-Disposition"})
	v.SetDefault("cors.allowcredentials", false)
	v.SetDefault("cors.maxage", 300)

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requestsperminute", 60)
	v.SetDefault("ratelimit.whitelistpaths", []string{"/health"})

	// Job defaults
	v.SetDefault("jobs.offercleanupschedule", "0 0 3 * * *")
	v.SetDefault("jobs.offerretentiondays", 90)
}
