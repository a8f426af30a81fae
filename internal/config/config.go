// Package config provides YAML-based configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/job-intake/backend/internal/upload"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Upload  UploadConfig  `yaml:"upload"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            int    `yaml:"port"`
	BindAddress     string `yaml:"bindAddress"`
	EnableCORS      bool   `yaml:"enableCors"`
	AllowOrigins    string `yaml:"allowOrigins"`
	ReadTimeout     int    `yaml:"readTimeoutSeconds"`
	WriteTimeout    int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout     int    `yaml:"idleTimeoutSeconds"`
	ShutdownTimeout int    `yaml:"shutdownTimeoutSeconds"`
	BodyLimit       Size   `yaml:"bodyLimit"`
}

// UploadConfig contains per-part limits for submissions
type UploadConfig struct {
	MaxFileSize  Size `yaml:"maxFileSize"`
	MaxFieldSize Size `yaml:"maxFieldSize"`
}

// StorageConfig contains staging area settings
type StorageConfig struct {
	UploadsDirectory       string `yaml:"uploadsDirectory"`
	StagingTTLMinutes      int    `yaml:"stagingTtlMinutes"`
	CleanupIntervalMinutes int    `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level                string `yaml:"level"`
	Format               string `yaml:"format"`
	EnableRequestLogging bool   `yaml:"enableRequestLogging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:            4000,
			BindAddress:     "0.0.0.0",
			EnableCORS:      true,
			AllowOrigins:    "*",
			ReadTimeout:     120,
			WriteTimeout:    120,
			IdleTimeout:     120,
			ShutdownTimeout: 10,
			BodyLimit:       160 << 20,
		},
		Upload: UploadConfig{
			MaxFileSize:  50 << 20,
			MaxFieldSize: 1 << 20,
		},
		Storage: StorageConfig{
			UploadsDirectory:       "uploads",
			StagingTTLMinutes:      60,
			CleanupIntervalMinutes: 5,
		},
		Logging: LoggingConfig{
			Level:                "info",
			Format:               "json",
			EnableRequestLogging: true,
		},
	}
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file. Keys missing from the file
// keep their default values. If the file does not exist it is created with
// the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to a YAML file
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Job application intake configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		c.Storage.UploadsDirectory = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.UploadsDirectory) {
		c.Storage.UploadsDirectory = filepath.Join(configDir, c.Storage.UploadsDirectory)
	}
}

// Validate checks that the configuration is usable.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	for name, v := range map[string]Size{
		"server.bodyLimit":    c.Server.BodyLimit,
		"upload.maxFileSize":  c.Upload.MaxFileSize,
		"upload.maxFieldSize": c.Upload.MaxFieldSize,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.Storage.UploadsDirectory == "" {
		errs = append(errs, errors.New("storage.uploadsDirectory is required"))
	}
	if c.Storage.StagingTTLMinutes <= 0 {
		errs = append(errs, errors.New("storage.stagingTtlMinutes must be positive"))
	}
	if c.Storage.CleanupIntervalMinutes <= 0 {
		errs = append(errs, errors.New("storage.cleanupIntervalMinutes must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UploadLimits returns the per-part limits for the submission processor.
func (c *AppConfig) UploadLimits() upload.Limits {
	limits := upload.DefaultLimits()
	limits.MaxFileSize = int64(c.Upload.MaxFileSize)
	limits.MaxFieldSize = int64(c.Upload.MaxFieldSize)
	return limits
}

// AllowedOrigins splits the comma-separated origin list.
func (c *AppConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// GetUploadDir returns the absolute staging directory path
func (c *AppConfig) GetUploadDir() string {
	return c.Storage.UploadsDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// StagingTTL returns how long staged files are kept.
func (c *AppConfig) StagingTTL() time.Duration {
	return time.Duration(c.Storage.StagingTTLMinutes) * time.Minute
}

// CleanupInterval returns how often the staging janitor runs.
func (c *AppConfig) CleanupInterval() time.Duration {
	return time.Duration(c.Storage.CleanupIntervalMinutes) * time.Minute
}
