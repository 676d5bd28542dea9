package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/auction"
)

type Config struct {
	Addr        string
	Auction     auction.Settings
	SoloDataDir string
}

// Load reads .env if present, then the environment, falling back to
// defaults that match the stock auction rules.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	defaults := auction.DefaultSettings()
	return Config{
		Addr: getEnv("ADDR", ":8080"),
		Auction: auction.Settings{
			StartingPurse: getEnvAsInt("STARTING_PURSE", defaults.StartingPurse),
			TimerSeconds:  getEnvAsInt("ROUND_SECONDS", defaults.TimerSeconds),
			MinIncrement:  getEnvAsInt("MIN_INCREMENT", defaults.MinIncrement),
		},
		SoloDataDir: getEnv("SOLO_DATA_DIR", "data"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
