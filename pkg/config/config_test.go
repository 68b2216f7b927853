package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()

	var (
		cfg    Config
		cfgErr error
	)
	cmd := &cli.Command{
		Name:  "shopcart",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = FromCommand(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"shopcart"}, args...)))
	return cfg, cfgErr
}

func TestFromCommand_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "shopcart.db", cfg.SQLitePath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "shopcart", cfg.RedisPrefix)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, "₹", cfg.Currency)
}

func TestFromCommand_EnvAndFlags(t *testing.T) {
	t.Setenv("SHOPCART_STORE", "SQLite")
	t.Setenv("SHOPCART_DATA_DIR", "/tmp/shop")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := parse(t, "--currency", "$", "--sqlite-path", "/tmp/shop.db")
	require.NoError(t, err)

	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/shop", cfg.DataDir)
	assert.Equal(t, "/tmp/shop.db", cfg.SQLitePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "$", cfg.Currency)
}

func TestFromCommand_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SHOPCART_STORE", "sqlite")

	cfg, err := parse(t, "--store", "redis")
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store)
}

func TestValidate(t *testing.T) {
	_, err := parse(t, "--store", "mongo")
	assert.ErrorContains(t, err, `unknown store "mongo"`)

	_, err = parse(t, "--data-dir", " ")
	assert.ErrorContains(t, err, "data dir")

	err = Config{Store: StoreRedis}.Validate()
	assert.NoError(t, err)
}
