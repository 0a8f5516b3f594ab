package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server's environment configuration.
type Config struct {
	Port     string
	DBPath   string
	SeedPath string
	LogLevel string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getenv("PORT", "8080"),
		DBPath:   getenv("DB_PATH", "salesreport.db"),
		SeedPath: getenv("SEED_PATH", "testdata/dataset.json"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewLogger builds the process logger at the configured level.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
