package config_test

import (
	"testing"

	"fizzybot/internal/config"
	"fizzybot/internal/model"

	"github.com/stretchr/testify/assert"
)

func setValidEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:test-token")
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1001, 2002")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "3307")
	t.Setenv("DATABASE_USERNAME", "fizzy")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_NAME", "fizzy_production")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "10")
	t.Setenv("FIZZY_ACCOUNT_ID", model.NewID().String())
	t.Setenv("FIZZY_USER_ID", model.NewID().String())
	t.Setenv("FIZZY_DEFAULT_BOARD_ID", model.NewID().String())
	t.Setenv("FIZZY_BASE_URL", "https://fizzy.example.com/")
}

func TestLoad_ValidEnvironment(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "123456:test-token", cfg.BotToken)
	assert.Equal(t, []int64{1001, 2002}, cfg.AllowedUserIDs)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, "https://fizzy.example.com", cfg.BaseURL, "trailing slash is stripped")
}

func TestLoad_MissingToken(t *testing.T) {
	setValidEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_EmptyAllowList(t *testing.T) {
	setValidEnv(t)
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", " , ")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_ALLOWED_USER_IDS")
}

func TestLoad_MalformedUserID(t *testing.T) {
	setValidEnv(t)
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1001,bob")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bob")
}

func TestLoad_InvalidAccountID(t *testing.T) {
	setValidEnv(t)
	t.Setenv("FIZZY_ACCOUNT_ID", "not-a-card-id")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FIZZY_ACCOUNT_ID")
}

func TestLoad_BadMaxConnections(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DATABASE_MAX_CONNECTIONS", "0")

	_, err := config.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_MAX_CONNECTIONS")
}

func TestDSN(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t,
		"fizzy:secret@tcp(db.internal:3307)/fizzy_production?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DSN())
}

func TestIsUserAllowed(t *testing.T) {
	setValidEnv(t)

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.True(t, cfg.IsUserAllowed(1001))
	assert.True(t, cfg.IsUserAllowed(2002))
	assert.False(t, cfg.IsUserAllowed(666))
}
