package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every config variable so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACCOUNTS_CONFIG", "")
	for key := range defaults {
		t.Setenv(strings.ToUpper(key), "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	require.Equal(t, "HS256", cfg.JWTAlgo)
	require.Equal(t, 30*time.Minute, cfg.AccessTTL())
	require.Equal(t, 30*24*time.Hour, cfg.RefreshTTL())
	require.False(t, cfg.IssueRefreshTokens)
	require.Equal(t, "*", cfg.CORSOrigins)
	require.Equal(t, 8000, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, DriverCSV, cfg.StoreDriver)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, UsersLocal, cfg.UsersBackend)
	require.Equal(t, "Customers", cfg.DynamoDBTable)
	require.Equal(t, "us-east-1", cfg.AWSRegion)
	require.Empty(t, cfg.AvatarDir)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("ISSUE_REFRESH_TOKENS", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "3s")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("USERS_BACKEND", "dynamodb")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL())
	require.True(t, cfg.IssueRefreshTokens)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 3*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, UsersDynamoDB, cfg.UsersBackend)
	require.Equal(t, "https://a.example, https://b.example", cfg.CORSOrigins)
}

func TestLoadConfigFileThenEnvironment(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"jwt_secret: from-file\n"+
			"port: 7000\n"+
			"data_dir: /var/lib/accounts\n"+
			"avatar_dir: /srv/dbz\n",
	), 0o600))
	t.Setenv("ACCOUNTS_CONFIG", path)
	t.Setenv("PORT", "7001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "from-file", cfg.JWTSecret)
	require.Equal(t, 7001, cfg.Port)
	require.Equal(t, "/var/lib/accounts", cfg.DataDir)
	require.Equal(t, "/srv/dbz", cfg.AvatarDir)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCOUNTS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWTSecret:                "x",
			AccessTokenExpireMinutes: 30,
			Port:                     8000,
			StoreDriver:              DriverCSV,
			UsersBackend:             UsersLocal,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"empty secret":    func(c *Config) { c.JWTSecret = "" },
		"zero ttl":        func(c *Config) { c.AccessTokenExpireMinutes = 0 },
		"bad port":        func(c *Config) { c.Port = 70000 },
		"unknown driver":  func(c *Config) { c.StoreDriver = "postgres" },
		"unknown backend": func(c *Config) { c.UsersBackend = "ldap" },
		"refresh no ttl": func(c *Config) {
			c.IssueRefreshTokens = true
			c.RefreshTokenExpireMinutes = 0
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
