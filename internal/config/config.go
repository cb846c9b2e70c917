package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Env       string `mapstructure:"env"`
	PublicURL string `mapstructure:"public_url"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type AuthConfig struct {
	CookieName        string `mapstructure:"cookie_name"`
	SessionTTLHours   int    `mapstructure:"session_ttl_hours"`
	BcryptCost        int    `mapstructure:"bcrypt_cost"`
	PreviewSecret     string `mapstructure:"preview_secret"`
	PreviewTTLMinutes int    `mapstructure:"preview_ttl_minutes"`
}

type StorageConfig struct {
	Bucket        string `mapstructure:"bucket"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxUploadMB   int64  `mapstructure:"max_upload_mb"`
}

type AWSConfig struct {
	Profile string `mapstructure:"profile"`
}

type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration from .env, environment variables (BLOG_ prefix,
// e.g. BLOG_DATABASE_DRIVER) and an optional config.yaml in the working dir.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.env", EnvDevelopment)
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/blog.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("auth.cookie_name", "admin_session")
	v.SetDefault("auth.session_ttl_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.preview_secret", "")
	v.SetDefault("auth.preview_ttl_minutes", 60)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.key_prefix", "uploads")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.max_upload_mb", 5)
	v.SetDefault("aws.profile", "")
	v.SetDefault("seed.admin_email", "")
	v.SetDefault("seed.admin_password", "")
	v.SetDefault("seed.admin_name", "Administrator")
	v.SetDefault("log.level", "info")
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Server.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("server.env must be one of development, production, test (got %q)", c.Server.Env)
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres (got %q)", c.Database.Driver)
	}
	if c.Auth.SessionTTLHours <= 0 {
		return fmt.Errorf("auth.session_ttl_hours must be positive")
	}
	if c.IsProduction() && strings.TrimSpace(c.Auth.PreviewSecret) == "" {
		return fmt.Errorf("auth.preview_secret is required in production")
	}
	if c.Storage.MaxUploadMB <= 0 {
		return fmt.Errorf("storage.max_upload_mb must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTLHours) * time.Hour
}

func (c Config) PreviewTTL() time.Duration {
	return time.Duration(c.Auth.PreviewTTLMinutes) * time.Minute
}

func (c Config) MaxUploadBytes() int64 {
	return c.Storage.MaxUploadMB << 20
}
