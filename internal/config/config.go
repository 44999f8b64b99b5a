package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/util"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the card game server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr"`
	Store  struct {
		Driver         string `yaml:"driver"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
		SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"store"`
	Lock struct {
		Driver     string        `yaml:"driver"`
		RetryDelay time.Duration `yaml:"retryDelay" envconfig:"retry_delay"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"lock"`
	Redis struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
	} `yaml:"redis"`
	JWT struct {
		Secret   string `yaml:"secret"`
		Audience string `yaml:"audience"`
	} `yaml:"jwt"`
	Watchdog struct {
		Interval    time.Duration `yaml:"interval"`
		TurnTimeout time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
	} `yaml:"watchdog"`
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Log             struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// EnvPrefix prefixes every environment override, e.g. CGA_STORE_DRIVER
const EnvPrefix = "cga"

// store drivers
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// lock drivers
// LockRedis serializes session mutations across processes, but connections and
// broadcasts stay in the process that accepted them, so every player of a session
// has to be routed to the same process
const (
	LockLocal = "local"
	LockRedis = "redis"
)

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.Store.Driver = StorePostgres
	cfg.Store.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.Store.SQLitePath = "cga.db"
	cfg.Store.MigrationsPath = "./sql"
	cfg.Lock.Driver = LockLocal
	cfg.Lock.RetryDelay = 100 * time.Millisecond
	cfg.Lock.TTL = 10 * time.Second
	cfg.Redis.Addr = "localhost:6379"
	cfg.JWT.Audience = "PP-CGA-BE"
	cfg.Watchdog.Interval = 5 * time.Second
	cfg.Watchdog.TurnTimeout = 45 * time.Second
	cfg.Log.Level = "info"
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("CGA_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
