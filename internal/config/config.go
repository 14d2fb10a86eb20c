package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the binaries
const EnvPrefix = "CRM"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`     // Queries slower than this are logged at warn level
}

// RLSConfig holds row level security session settings
type RLSConfig struct {
	// SessionRole is the database role assumed for requests made on behalf of a user
	SessionRole string `mapstructure:"session_role"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	// DuplicateWindow is the stream's message id deduplication window
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string          `mapstructure:"host"`
	Port           int             `mapstructure:"port"`
	ReadTimeout    int             `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int             `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int             `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds the per-user request limit. RequestsPerMinute of 0
// disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Burst             int    `mapstructure:"burst"`
	RedisKeyPrefix    string `mapstructure:"redis_key_prefix"`
	// LocalFallback limits in process while Redis is unreachable
	LocalFallback bool `mapstructure:"local_fallback"`
	// RedisRetryAfter is how long to stay on the local limiter after a Redis error
	RedisRetryAfter time.Duration `mapstructure:"redis_retry_after"`
}

// AuthConfig holds authentication configuration. JWTPublicKey selects RS256
// verification; otherwise JWTSecret is used with HS256.
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	Issuer       string `mapstructure:"issuer"`
	Audience     string `mapstructure:"audience"`
}

// RBACConfig holds permission evaluation settings
type RBACConfig struct {
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	MaxDelegationDepth int           `mapstructure:"max_delegation_depth"`
	// AdminRoles bypass permission checks entirely
	AdminRoles []string `mapstructure:"admin_roles"`
}

// DocumentsConfig holds document storage configuration
type DocumentsConfig struct {
	StorageRoot string `mapstructure:"storage_root"`
	MaxSize     int64  `mapstructure:"max_size"`
	// AllowedTypes lists accepted MIME types; empty accepts everything
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// AuditRelayConfig holds the audit relay loop settings
type AuditRelayConfig struct {
	BatchSize      int           `mapstructure:"batch_size"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
	MaxElapsedTime time.Duration `mapstructure:"max_elapsed_time"`
	Worker         WorkerConfig  `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RLS       RLSConfig       `mapstructure:"rls"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RBAC      RBACConfig      `mapstructure:"rbac"`
	Documents DocumentsConfig `mapstructure:"documents"`
}

// MigrateConfig holds configuration for the migrate command
type MigrateConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:"database"`
	// SeedFile overrides the embedded RBAC catalog
	SeedFile string `mapstructure:"seed_file"`
}

// AuditRelayServiceConfig holds configuration for the audit relay binary
type AuditRelayServiceConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	AuditRelay AuditRelayConfig `mapstructure:"audit_relay"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit.requests_per_minute", 600)
	v.SetDefault("server.rate_limit.redis_key_prefix", "ff:crm:ratelimit:")
	v.SetDefault("server.rate_limit.local_fallback", true)
	v.SetDefault("server.rate_limit.redis_retry_after", "30s")
	v.SetDefault("rls.session_role", "authenticated")
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("rbac.cache_ttl", "5m")
	v.SetDefault("rbac.max_delegation_depth", 3)
	v.SetDefault("rbac.admin_roles", []string{"super_admin"})
	v.SetDefault("documents.storage_root", "data/documents")
	v.SetDefault("documents.max_size", 25*1024*1024) // 25MB

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTPublicKey == "" && cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_public_key or auth.jwt_secret is required")
	}
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadMigrateConfig loads configuration for the migrate command
func LoadMigrateConfig(configFile string, envPath string) (*MigrateConfig, error) {
	v := configureViper("migrate", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 2)
	v.SetDefault("database.max_idle_conns", 1)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg MigrateConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAuditRelayConfig loads configuration for the audit relay
func LoadAuditRelayConfig(configFile string, envPath string) (*AuditRelayServiceConfig, error) {
	v := configureViper("audit-relay", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CRM_AUDIT")
	v.SetDefault("nats.subject_prefix", "audit")
	v.SetDefault("nats.connection_name", "crm-audit-relay")
	v.SetDefault("nats.duplicate_window", "2m")
	v.SetDefault("audit_relay.batch_size", 200)
	v.SetDefault("audit_relay.poll_interval", "2s")
	v.SetDefault("audit_relay.publish_timeout", "5s")
	v.SetDefault("audit_relay.max_elapsed_time", "1m")
	v.SetDefault("audit_relay.worker.pool_size", 16)
	v.SetDefault("audit_relay.worker.queue_size", 1024)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg AuditRelayServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.slow_threshold", "500ms")
}

// readConfig reads the config file. A missing file is not an error; the
// environment alone may configure the binary.
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/, cmd/migrate/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"seed_file",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.slow_threshold",
		// RLS
		"rls.session_role",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		"server.rate_limit.requests_per_minute",
		"server.rate_limit.burst",
		"server.rate_limit.redis_key_prefix",
		"server.rate_limit.local_fallback",
		"server.rate_limit.redis_retry_after",
		// Auth
		"auth.jwt_public_key",
		"auth.jwt_secret",
		"auth.issuer",
		"auth.audience",
		// RBAC
		"rbac.cache_ttl",
		"rbac.max_delegation_depth",
		"rbac.admin_roles",
		// Documents
		"documents.storage_root",
		"documents.max_size",
		"documents.allowed_types",
		// Audit relay
		"audit_relay.batch_size",
		"audit_relay.poll_interval",
		"audit_relay.publish_timeout",
		"audit_relay.max_elapsed_time",
		"audit_relay.worker.pool_size",
		"audit_relay.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string, or an empty
// string when no replica is configured. If ReadPort is not set, Port is used.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
