package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/dynamo"
)

// DefaultJWTSecret is the placeholder signing secret. Startup warns when it
// is still in use.
const DefaultJWTSecret = "change-me-in-env"

// Store drivers and users backends.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"

	UsersLocal    = "local"
	UsersDynamoDB = "dynamodb"
)

// Config keys are the lower-cased environment variable names, so a YAML file
// uses the same names as the environment (jwt_secret, store_driver, ...).
type Config struct {
	JWTSecret                 string `koanf:"jwt_secret"`
	JWTAlgo                   string `koanf:"jwt_algo"`
	AccessTokenExpireMinutes  int    `koanf:"access_token_expire_minutes"`
	RefreshTokenExpireMinutes int    `koanf:"refresh_token_expire_minutes"`
	IssueRefreshTokens        bool   `koanf:"issue_refresh_tokens"`

	CORSOrigins string `koanf:"cors_origins"` // comma separated, "*" for any
	Port        int    `koanf:"port"`

	Env                 string        `koanf:"env"`        // dev, staging, prod
	LogLevel            string        `koanf:"log_level"`  // debug, info, warn, error
	LogFormat           string        `koanf:"log_format"` // json, text
	ShutdownGracePeriod time.Duration `koanf:"shutdown_grace_period"`

	StoreDriver  string `koanf:"store_driver"` // csv, sqlite
	DataDir      string `koanf:"data_dir"`
	DatabaseFile string `koanf:"database_file"`

	UsersBackend       string `koanf:"users_backend"` // local, dynamodb
	DynamoDBTable      string `koanf:"dynamodb_table"`
	DynamoDBEndpoint   string `koanf:"dynamodb_endpoint"`
	AWSRegion          string `koanf:"aws_region"`
	AWSAccessKeyID     string `koanf:"aws_access_key_id"`
	AWSSecretAccessKey string `koanf:"aws_secret_access_key"`

	AvatarDir     string `koanf:"avatar_dir"`
	AdminPassword string `koanf:"admin_password"`
}

var defaults = map[string]any{
	"jwt_secret":                   DefaultJWTSecret,
	"jwt_algo":                     "HS256",
	"access_token_expire_minutes":  30,
	"refresh_token_expire_minutes": 30 * 24 * 60,
	"issue_refresh_tokens":         false,
	"cors_origins":                 "*",
	"port":                         8000,
	"env":                          "dev",
	"log_level":                    "info",
	"log_format":                   "json",
	"shutdown_grace_period":        "10s",
	"store_driver":                 DriverCSV,
	"data_dir":                     "data",
	"database_file":                "accounts.db",
	"users_backend":                UsersLocal,
	"dynamodb_table":               dynamo.DefaultTable,
	"dynamodb_endpoint":            "",
	"aws_region":                   dynamo.DefaultRegion,
	"aws_access_key_id":            "",
	"aws_secret_access_key":        "",
	"avatar_dir":                   "",
	"admin_password":               "",
}

// LoadConfig layers defaults, the YAML file named by ACCOUNTS_CONFIG, a
// best-effort .env file and finally the process environment.
func LoadConfig() (Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return Config{}, fmt.Errorf("config: default %s: %w", key, err)
		}
	}

	if path := os.Getenv("ACCOUNTS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Only known keys are taken from the environment, and empty values keep
	// whatever the earlier layers set.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		if _, known := defaults[key]; !known || value == "" {
			return "", nil
		}
		return key, value
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.IssueRefreshTokens && c.RefreshTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	switch c.StoreDriver {
	case DriverCSV, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q: want %s or %s", c.StoreDriver, DriverCSV, DriverSQLite))
	}
	switch c.UsersBackend {
	case UsersLocal, UsersDynamoDB:
	default:
		errs = append(errs, fmt.Errorf("USERS_BACKEND %q: want %s or %s", c.UsersBackend, UsersLocal, UsersDynamoDB))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireMinutes) * time.Minute
}
