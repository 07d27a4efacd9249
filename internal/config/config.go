package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/pkg/errors"
)

type Config struct {
	Port            string
	BoardHeight     int
	BoardWidth      int
	Player1Color    string
	Player2Color    string
	EndGameDelay    time.Duration
	FinishedGameTTL time.Duration
	ActiveGameTTL   time.Duration
	CleanupInterval time.Duration
	AllowedOrigins  []string
	FrontendURL     string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Board defaults for games created without explicit dimensions
	boardHeight := GetEnvAsInt("BOARD_HEIGHT", domain.DefaultRows)
	boardWidth := GetEnvAsInt("BOARD_WIDTH", domain.DefaultColumns)
	player1Color := GetEnv("PLAYER1_COLOR", "#e53935")
	player2Color := GetEnv("PLAYER2_COLOR", "#fdd835")

	endGameDelayMs := GetEnvAsInt("END_GAME_DELAY_MS", 1000)
	finishedGameTTLMin := GetEnvAsInt("FINISHED_GAME_TTL_MINUTES", 60)
	activeGameTTLHours := GetEnvAsInt("ACTIVE_GAME_TTL_HOURS", 24)
	cleanupIntervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:            port,
		BoardHeight:     boardHeight,
		BoardWidth:      boardWidth,
		Player1Color:    player1Color,
		Player2Color:    player2Color,
		EndGameDelay:    time.Duration(endGameDelayMs) * time.Millisecond,
		FinishedGameTTL: time.Duration(finishedGameTTLMin) * time.Minute,
		ActiveGameTTL:   time.Duration(activeGameTTLHours) * time.Hour,
		CleanupInterval: time.Duration(cleanupIntervalMin) * time.Minute,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.BoardHeight < domain.MinDimension || c.BoardWidth < domain.MinDimension {
		return errors.Wrapf(domain.ErrInvalidConfig, "BOARD_HEIGHT=%d BOARD_WIDTH=%d, both must be at least %d",
			c.BoardHeight, c.BoardWidth, domain.MinDimension)
	}
	if c.EndGameDelay < 0 {
		return errors.Wrapf(domain.ErrInvalidConfig, "END_GAME_DELAY_MS must not be negative, got %v", c.EndGameDelay)
	}
	if c.CleanupInterval <= 0 {
		return errors.Wrapf(domain.ErrInvalidConfig, "CLEANUP_INTERVAL_MINUTES must be positive, got %v", c.CleanupInterval)
	}
	return nil
}

func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
