package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  allowed_origins: ["https://crm.example.com"]
  rate_limit:
    requests_per_minute: 120
database:
  host: localhost
  port: 5433
  read_host: replica
  user: crm
  password: secret
  dbname: crm
  sslmode: require
rls:
  session_role: crm_user
auth:
  jwt_secret: "hs-secret"
  issuer: "https://auth.example.com"
redis:
  addr: "localhost:6379"
  db: 2
rbac:
  cache_ttl: 30s
  max_delegation_depth: 5
  admin_roles: [super_admin, admin]
documents:
  storage_root: /var/lib/crm
  max_size: 1048576
  allowed_types: [application/pdf]
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, []string{"https://crm.example.com"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, 120, cfg.Server.RateLimit.RequestsPerMinute)
				assert.True(t, cfg.Server.RateLimit.LocalFallback)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "replica", cfg.Database.ReadHost)
				assert.Equal(t, "crm_user", cfg.RLS.SessionRole)
				assert.Equal(t, "hs-secret", cfg.Auth.JWTSecret)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, 30*time.Second, cfg.RBAC.CacheTTL)
				assert.Equal(t, 5, cfg.RBAC.MaxDelegationDepth)
				assert.Equal(t, []string{"super_admin", "admin"}, cfg.RBAC.AdminRoles)
				assert.Equal(t, "/var/lib/crm", cfg.Documents.StorageRoot)
				assert.Equal(t, int64(1048576), cfg.Documents.MaxSize)
				assert.Equal(t, []string{"application/pdf"}, cfg.Documents.AllowedTypes)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: crm
auth:
  jwt_public_key: "-----BEGIN PUBLIC KEY-----"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 500*time.Millisecond, cfg.Database.SlowThreshold)
				assert.Equal(t, "authenticated", cfg.RLS.SessionRole)
				assert.Equal(t, "authenticated", cfg.Auth.Audience)
				assert.Equal(t, 5*time.Minute, cfg.RBAC.CacheTTL)
				assert.Equal(t, 3, cfg.RBAC.MaxDelegationDepth)
				assert.Equal(t, []string{"super_admin"}, cfg.RBAC.AdminRoles)
				assert.Equal(t, int64(25*1024*1024), cfg.Documents.MaxSize)
			},
		},
		{
			name: "missing signing key",
			configFile: `
database:
  host: localhost
  dbname: crm
`,
			expectError: true,
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: crm
auth:
  jwt_secret: "hs-secret"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
database:
  host: localhost
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadMigrateConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db
  user: owner
  dbname: crm
seed_file: db/seed/rbac.yaml
`)

	cfg, err := LoadMigrateConfig(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 2, cfg.Database.MaxOpenConns)
	assert.Equal(t, 1, cfg.Database.MaxIdleConns)
	assert.Equal(t, "db/seed/rbac.yaml", cfg.SeedFile)
}

func TestLoadAuditRelayConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: db
  dbname: crm
nats:
  url: "nats://localhost:4222"
`)

		cfg, err := LoadAuditRelayConfig(path, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "CRM_AUDIT", cfg.NATS.StreamName)
		assert.Equal(t, "audit", cfg.NATS.SubjectPrefix)
		assert.Equal(t, 2*time.Minute, cfg.NATS.DuplicateWindow)
		assert.Equal(t, 200, cfg.AuditRelay.BatchSize)
		assert.Equal(t, 2*time.Second, cfg.AuditRelay.PollInterval)
		assert.Equal(t, 16, cfg.AuditRelay.Worker.WorkerPoolSize)
	})

	t.Run("nats url is required", func(t *testing.T) {
		path := writeConfig(t, `
database:
  host: db
  dbname: crm
`)

		cfg, err := LoadAuditRelayConfig(path, t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
		readDSN  string
	}{
		{
			name: "primary only",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "crm",
				Password: "p@ssw0rd!",
				DBName:   "crm",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=crm password=p@ssw0rd! dbname=crm sslmode=disable",
			readDSN:  "",
		},
		{
			name: "replica falls back to primary port",
			config: DatabaseConfig{
				Host:     "primary",
				Port:     5432,
				ReadHost: "replica",
				User:     "crm",
				Password: "pass",
				DBName:   "crm",
				SSLMode:  "require",
			},
			expected: "host=primary port=5432 user=crm password=pass dbname=crm sslmode=require",
			readDSN:  "host=replica port=5432 user=crm password=pass dbname=crm sslmode=require",
		},
		{
			name: "replica with its own port",
			config: DatabaseConfig{
				Host:     "primary",
				Port:     5432,
				ReadHost: "replica",
				ReadPort: 6432,
				User:     "crm",
				Password: "pass",
				DBName:   "crm",
				SSLMode:  "disable",
			},
			expected: "host=primary port=5432 user=crm password=pass dbname=crm sslmode=disable",
			readDSN:  "host=replica port=6432 user=crm password=pass dbname=crm sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
			assert.Equal(t, tt.readDSN, tt.config.ReadDSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// Viper reads variables with the CRM_ prefix
	envContent := `CRM_DEBUG=true
CRM_DATABASE_HOST=env-host
CRM_DATABASE_PORT=6543
CRM_DATABASE_DBNAME=env-db
CRM_AUTH_JWT_SECRET=env-secret
CRM_RBAC_CACHE_TTL=1m
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, key := range []string{"CRM_DEBUG", "CRM_DATABASE_HOST", "CRM_DATABASE_PORT", "CRM_DATABASE_DBNAME", "CRM_AUTH_JWT_SECRET", "CRM_RBAC_CACHE_TTL"} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// .env values override the config file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Minute, cfg.RBAC.CacheTTL)
}
