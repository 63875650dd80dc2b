// Package config loads runtime settings from defaults, an optional file and
// FIGURESTORE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

const envPrefix = "FIGURESTORE"

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendFile     = "file"
)

const appName = "figurestore"

type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Cart     CartConfig     `mapstructure:"cart"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Currency string         `mapstructure:"currency"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
}

type CatalogConfig struct {
	Backend string `mapstructure:"backend"`
}

type SnapshotConfig struct {
	Backend string `mapstructure:"backend"`
	// Dir is used by the file backend; empty means the user cache directory.
	Dir string `mapstructure:"dir"`
}

type CartConfig struct {
	Key string `mapstructure:"key"`
}

type CheckoutConfig struct {
	Latency time.Duration `mapstructure:"latency"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AMQPConfig enables checkout notifications when URL is set.
type AMQPConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.backend", BackendMemory)
	v.SetDefault("snapshot.backend", BackendFile)
	v.SetDefault("snapshot.dir", "")
	v.SetDefault("cart.key", "cart")
	v.SetDefault("checkout.latency", 300*time.Millisecond)
	v.SetDefault("currency", "USD")
	v.SetDefault("log.level", "info")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "figurestore")
	v.SetDefault("amqp.routing_key", "checkout.completed")
}

// Load reads the configuration. path may be empty.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("v.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains([]string{BackendMemory, BackendPostgres}, c.Catalog.Backend) {
		return fmt.Errorf("catalog.backend[%s] is not supported", c.Catalog.Backend)
	}
	if !slices.Contains([]string{BackendFile, BackendMemory, BackendPostgres, BackendRedis}, c.Snapshot.Backend) {
		return fmt.Errorf("snapshot.backend[%s] is not supported", c.Snapshot.Backend)
	}
	if c.usesPostgres() && c.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is empty")
	}
	if c.Cart.Key == "" {
		return fmt.Errorf("cart.key is empty")
	}
	if c.Checkout.Latency < 0 {
		return fmt.Errorf("checkout.latency is negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl is negative")
	}
	if _, err := c.CurrencyUnit(); err != nil {
		return err
	}

	return nil
}

func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}
	return unit, nil
}

// SnapshotDir is where the file backend keeps carts.
func (c Config) SnapshotDir() (string, error) {
	if c.Snapshot.Dir != "" {
		return c.Snapshot.Dir, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("os.UserCacheDir: %w", err)
	}

	return filepath.Join(cacheDir, appName, "carts"), nil
}

func (c Config) usesPostgres() bool {
	return c.Catalog.Backend == BackendPostgres || c.Snapshot.Backend == BackendPostgres
}
