package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver string
		Path   string
		URI    string
		Name   string
	}
	Auth struct {
		JWTSecret        string
		TokenTTLMinutes  int
		BCryptCost       int
		OwnerUpdatesOnly bool
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level string
	}
}

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Load reads configuration from environment variables and optional config files.
// Variables from a .env file in the working directory never override the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("BLOGLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3003")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/bloglist.db")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "bloglist")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 60)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("auth.ownerupdatesonly", false)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "bloglist-snapshots")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")

	// plain names used by existing deployments
	_ = v.BindEnv("auth.jwtsecret", "BLOGLIST_AUTH_JWTSECRET", "SECRET")
	_ = v.BindEnv("database.uri", "BLOGLIST_DATABASE_URI", "MONGODB_URI")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth jwt secret is required")
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required")
		}
	case DriverMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("database uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("auth token ttl must not be negative")
	}
	return nil
}
