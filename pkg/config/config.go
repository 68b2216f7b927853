package config

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// Storage backends
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	Store       string
	DataDir     string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string

	LogLevel string
	LogFile  string

	Currency string
}

// Flags declares every setting with its environment variable and default
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Usage:   "storage backend: file, sqlite or redis",
			Value:   StoreFile,
			Sources: cli.EnvVars("SHOPCART_STORE"),
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "directory holding catalog.json and cart.json",
			Value:   ".",
			Sources: cli.EnvVars("SHOPCART_DATA_DIR"),
		},
		&cli.StringFlag{
			Name:    "sqlite-path",
			Usage:   "database file for the sqlite store",
			Value:   "shopcart.db",
			Sources: cli.EnvVars("SHOPCART_SQLITE_PATH"),
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "address of the redis store",
			Value:   "localhost:6379",
			Sources: cli.EnvVars("SHOPCART_REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:    "redis-prefix",
			Usage:   "key prefix for the redis store",
			Value:   "shopcart",
			Sources: cli.EnvVars("SHOPCART_REDIS_PREFIX"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Value:   "warn",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs to this file instead of stderr",
			Sources: cli.EnvVars("LOG_FILE"),
		},
		&cli.StringFlag{
			Name:    "currency",
			Usage:   "symbol printed in front of prices",
			Value:   "₹",
			Sources: cli.EnvVars("SHOPCART_CURRENCY"),
		},
	}
}

// FromCommand reads the parsed flags of cmd
func FromCommand(cmd *cli.Command) (Config, error) {
	cfg := Config{
		Store:       strings.ToLower(strings.TrimSpace(cmd.String("store"))),
		DataDir:     cmd.String("data-dir"),
		SQLitePath:  cmd.String("sqlite-path"),
		RedisAddr:   cmd.String("redis-addr"),
		RedisPrefix: cmd.String("redis-prefix"),
		LogLevel:    cmd.String("log-level"),
		LogFile:     cmd.String("log-file"),
		Currency:    cmd.String("currency"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q: want %s, %s or %s", c.Store, StoreFile, StoreSQLite, StoreRedis)
	}
	if c.Store == StoreFile && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	return nil
}
