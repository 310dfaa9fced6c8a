package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"fizzybot/internal/model"
)

// Config carries everything the bot needs from the environment. The
// database and the account identifiers belong to an existing installation;
// nothing here is created by the bot itself.
type Config struct {
	BotToken       string
	AllowedUserIDs []int64

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int

	AccountID      model.ID
	UserID         model.ID
	DefaultBoardID model.ID
	BaseURL        string

	ServerPort string
}

// Load reads the environment, optionally seeded from a .env file, and
// validates every required variable before anything connects.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using system environment variables")
	}

	cfg := &Config{
		DBHost:     getEnv("DATABASE_HOST", "localhost"),
		DBPort:     getEnv("DATABASE_PORT", "3306"),
		DBPassword: os.Getenv("DATABASE_PASSWORD"),
		BaseURL:    strings.TrimRight(getEnv("FIZZY_BASE_URL", ""), "/"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
	}

	var err error
	if cfg.BotToken, err = requireEnv("TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.DBUser, err = requireEnv("DATABASE_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.DBName, err = requireEnv("DATABASE_NAME"); err != nil {
		return nil, err
	}

	if cfg.AllowedUserIDs, err = parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS")); err != nil {
		return nil, err
	}

	if cfg.AccountID, err = requireID("FIZZY_ACCOUNT_ID"); err != nil {
		return nil, err
	}
	if cfg.UserID, err = requireID("FIZZY_USER_ID"); err != nil {
		return nil, err
	}
	if cfg.DefaultBoardID, err = requireID("FIZZY_DEFAULT_BOARD_ID"); err != nil {
		return nil, err
	}

	maxConns := getEnv("DATABASE_MAX_CONNECTIONS", "5")
	if cfg.DBMaxConns, err = strconv.Atoi(maxConns); err != nil || cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNECTIONS must be a positive integer, got %q", maxConns)
	}

	return cfg, nil
}

// DSN builds the MySQL connection string for the shared database.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// IsUserAllowed reports whether the Telegram user may talk to the bot.
func (c *Config) IsUserAllowed(userID int64) bool {
	for _, id := range c.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func parseUserIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS is required")
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS contains invalid entry %q", p)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS is required")
	}
	return ids, nil
}

func requireEnv(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%s is required", key)
}

func requireID(key string) (model.ID, error) {
	raw, err := requireEnv(key)
	if err != nil {
		return "", err
	}
	id, err := model.ParseID(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return id, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
