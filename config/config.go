package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Rewards  RewardsConfig
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RewardsConfig holds tunables for the reward pipeline.
type RewardsConfig struct {
	DuplicateWindow  time.Duration // lookback/lookahead around receipt_date for dedup
	StreakWindowDays int           // trailing window for consecutive-day scans
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "ezpoints:ezpoints@tcp(localhost:3306)/ezpoints?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		Rewards: RewardsConfig{
			DuplicateWindow:  30 * time.Minute,
			StreakWindowDays: 30,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
