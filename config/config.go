package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Username UsernameConfig `mapstructure:"username"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty disables redis
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// UsernameConfig is the injected policy for the username lifecycle: the
// reserved route-like tokens and the format bounds are data, not code.
type UsernameConfig struct {
	MinLen            int      `mapstructure:"min_len"`
	MaxLen            int      `mapstructure:"max_len"`
	Reserved          []string `mapstructure:"reserved"`
	DefaultVisibility string   `mapstructure:"default_visibility"`
}

// LimitsConfig throttles the unauthenticated live-typing endpoints.
type LimitsConfig struct {
	PublicRPS   int `mapstructure:"public_rps"`
	PublicBurst int `mapstructure:"public_burst"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"` // empty disables tracing
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("SHELFMARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// config file is optional, env + defaults are enough to boot
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "shelfmark.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("username.min_len", 3)
	v.SetDefault("username.max_len", 24)
	v.SetDefault("username.default_visibility", "followers_only")
	v.SetDefault("username.reserved", []string{
		"app", "api", "u", "b", "books", "setup", "settings",
		"auth", "login", "logout", "signup", "signin",
		"www", "admin", "root", "support", "help",
	})
	v.SetDefault("limits.public_rps", 10)
	v.SetDefault("limits.public_burst", 20)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tracing.otlp_endpoint", "")
}
