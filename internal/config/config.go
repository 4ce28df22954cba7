package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"wasdash/internal/constants"
	"wasdash/internal/models"
	"wasdash/internal/security"
)

var (
	ErrMissingDBPath = models.ConfigError{Message: "missing database path"}
)

func LoadConfig(path string) (*models.Config, error) {
	// Validate config file path to prevent directory traversal
	if err := security.ValidateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	file, err := os.ReadFile(path) // #nosec G304 - Path validated by security.ValidateFilePath above
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(&config)

	return &config, nil
}

func validate(c *models.Config) error {
	if c.Database.Path == "" {
		return ErrMissingDBPath
	}

	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = constants.DefaultReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = constants.DefaultWriteTimeoutSec
	}
	if c.Server.IdleTimeoutSec <= 0 {
		c.Server.IdleTimeoutSec = constants.DefaultIdleTimeoutSec
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}
	if c.Server.CleanupIntervalHours <= 0 {
		c.Server.CleanupIntervalHours = constants.DefaultCleanupIntervalHours
	}

	if c.Analysis.ConversationGapHours < 0 {
		return models.ConfigError{Message: "conversationGapHours must not be negative"}
	}
	if c.Analysis.ConversationGapHours == 0 {
		c.Analysis.ConversationGapHours = constants.DefaultConversationGapHours
	}

	if c.RetentionDays < 0 {
		c.RetentionDays = constants.DefaultRetentionDays
	}

	return nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if path := os.Getenv("WASDASH_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if port := os.Getenv("WASDASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
	if level := os.Getenv("WASDASH_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}
