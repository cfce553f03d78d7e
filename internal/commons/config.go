package commons

import (
	"os"

	"github.com/joho/godotenv"

	"vitrine/internal/config"
)

// LoadConfig loads an optional .env file into the environment before
// reading configuration. A missing .env is not an error; a present but
// unreadable one is.
func LoadConfig() (*config.Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	return config.Load()
}
