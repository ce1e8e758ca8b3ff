package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDataDir    = "."
	defaultStoreFile  = "markethub.db"
	defaultReplyDelay = 1000 * time.Millisecond
)

type Config struct {
	AppEnv         string
	DataDir        string
	StoreFile      string
	ChatReplyDelay time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         os.Getenv("APP_ENV"),
		DataDir:        os.Getenv("DATA_DIR"),
		StoreFile:      os.Getenv("STORE_FILE"),
		ChatReplyDelay: defaultReplyDelay,
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.StoreFile == "" {
		cfg.StoreFile = defaultStoreFile
	}

	if v := os.Getenv("CHAT_REPLY_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.ChatReplyDelay = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}
