package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"hvac-serwis-server/pkg/logger"

	"go.uber.org/zap"
)

// Config holds all configuration settings
type Config struct {
	Server struct {
		Port int    `json:"port"`
		Host string `json:"host"`
	} `json:"server"`
	Database struct {
		DSN string `json:"dsn"`
	} `json:"database"`
	JWT struct {
		Secret      string        `json:"secret"`
		TokenExpiry time.Duration `json:"token_expiry"`
	} `json:"jwt"`
	Auth struct {
		Operator     string `json:"operator"`
		PasswordHash string `json:"password_hash"` // bcrypt
	} `json:"auth"`
	SMSGateway struct {
		BaseURL        string `json:"base_url"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"sms_gateway"`
	Logging struct {
		Level string `json:"level"`
		Path  string `json:"path"`
	} `json:"logging"`
	Seed struct {
		Enable bool   `json:"enable"`
		File   string `json:"file"` // JSON export from the previous office tooling
	} `json:"seed"`
}

// LoadConfig loads configuration from a JSON file, then applies overrides
// from the environment (an optional .env file is read first).
func LoadConfig(path string) (*Config, error) {
	// Validate path to prevent directory traversal
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("config path must be absolute")
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config file error: %w", err)
	}
	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("config path is not a regular file")
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("Failed to close config file", zap.Error(closeErr))
		}
	}()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides lets deployments override secrets and endpoints
// without editing the config file.
func applyEnvOverrides(config *Config) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	if v := os.Getenv("SERWIS_JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}
	if v := os.Getenv("SERWIS_SMS_GATEWAY_URL"); v != "" {
		config.SMSGateway.BaseURL = v
	}
	if v := os.Getenv("SERWIS_OPERATOR_PASSWORD_HASH"); v != "" {
		config.Auth.PasswordHash = v
	}
	if v := os.Getenv("SERWIS_DB_DSN"); v != "" {
		config.Database.DSN = v
	}
	if v := os.Getenv("SERWIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		} else {
			logger.Warn("Ignoring invalid SERWIS_PORT value", zap.String("value", v))
		}
	}
}

// GatewayTimeout returns the configured gateway timeout as a duration.
func (c *Config) GatewayTimeout() time.Duration {
	if c.SMSGateway.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.SMSGateway.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.Server.Port = 8080
	config.Server.Host = "localhost"
	config.Database.DSN = "file:serwis.db?cache=shared&mode=rwc"
	config.JWT.Secret = "your-secret-key" // This should be changed in production
	config.JWT.TokenExpiry = 24 * time.Hour
	config.Auth.Operator = "serwisant"
	config.SMSGateway.BaseURL = "http://localhost:9090"
	config.SMSGateway.TimeoutSeconds = 15
	config.Logging.Level = "info"
	config.Logging.Path = "server.log"
	return config
}
