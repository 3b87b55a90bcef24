// Package config provides XML-based configuration management for the vault server and CLI.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"SoulfileVault" yaml:"-"`

	// Server configuration
	Server ServerConfig `xml:"Server" yaml:"server"`

	// Storage configuration
	Storage StorageConfig `xml:"Storage" yaml:"storage"`

	// Image compression settings
	Compression CompressionConfig `xml:"Compression" yaml:"compression"`

	// Processing configuration
	Processing ProcessingConfig `xml:"Processing" yaml:"processing"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced" yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port" yaml:"port"`
	BindAddress  string `xml:"BindAddress" yaml:"bind_address"`
	EnableCORS   bool   `xml:"EnableCORS" yaml:"enable_cors"`
	AllowOrigins string `xml:"AllowOrigins" yaml:"allow_origins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds" yaml:"read_timeout_seconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds" yaml:"write_timeout_seconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds" yaml:"idle_timeout_seconds"`
	BodyLimit    string `xml:"BodyLimit" yaml:"body_limit"`
}

// StorageConfig contains metadata and artifact storage settings
type StorageConfig struct {
	DataDirectory     string `xml:"DataDirectory" yaml:"data_directory"`
	ArtifactDirectory string `xml:"ArtifactDirectory" yaml:"artifact_directory"`
	DatabaseDriver    string `xml:"DatabaseDriver" yaml:"database_driver"` // "sqlite" or "duckdb"
	DatabasePath      string `xml:"DatabasePath" yaml:"database_path"`
	SymbolsFile       string `xml:"SymbolsFile" yaml:"symbols_file"`
}

// CompressionConfig controls image re-encoding
type CompressionConfig struct {
	Quality      int  `xml:"Quality" yaml:"quality"`
	Optimize     bool `xml:"Optimize" yaml:"optimize"`
	SniffContent bool `xml:"SniffContent" yaml:"sniff_content"`
}

// ProcessingConfig contains response processing settings
type ProcessingConfig struct {
	EnableGzip bool `xml:"EnableGzip" yaml:"enable_gzip"`
	GzipLevel  int  `xml:"GzipLevel" yaml:"gzip_level"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel" yaml:"log_level"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging" yaml:"enable_request_logging"`
	DuckDBThreads        int    `xml:"DuckDBThreads" yaml:"duckdb_threads"`
	DuckDBMemoryLimit    string `xml:"DuckDBMemoryLimit" yaml:"duckdb_memory_limit"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "2G",
		},
		Storage: StorageConfig{
			DataDirectory:     ".",
			ArtifactDirectory: ".",
			DatabaseDriver:    "sqlite",
			DatabasePath:      "soulfile.db",
			SymbolsFile:       "symbols.csv",
		},
		Compression: CompressionConfig{
			Quality:      85,
			Optimize:     true,
			SniffContent: true,
		},
		Processing: ProcessingConfig{
			EnableGzip: true,
			GzipLevel:  5,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
			DuckDBThreads:        4,
			DuckDBMemoryLimit:    "1GB",
		},
	}
}

// LoadConfig loads configuration from an XML file, or YAML when the path ends in .yaml/.yml.
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset fields keep their defaults
	config := DefaultConfig()
	if isYAML(configPath) {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to an XML or YAML file depending on its extension
func (c *AppConfig) Save(configPath string) error {
	var content []byte
	if isYAML(configPath) {
		output, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		content = append([]byte("# Soulfile Vault configuration\n# This file is auto-generated on first run\n\n"), output...)
	} else {
		output, err := xml.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		header := []byte(xml.Header + "\n<!-- Soulfile Vault Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
		content = append(header, output...)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	// PORT override
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// DATA_DIR override
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		c.Storage.DataDirectory = dataDir
	}

	if driver := os.Getenv("VAULT_DB_DRIVER"); driver != "" {
		c.Storage.DatabaseDriver = driver
	}
}

// resolvePaths anchors the data directory at the config file location; the database and
// symbols files are anchored at the data directory. The artifact directory is left as-is
// so the default "." keeps compressed files in the working directory.
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.DataDirectory) {
		c.Storage.DataDirectory = filepath.Join(configDir, c.Storage.DataDirectory)
	}
	if !filepath.IsAbs(c.Storage.DatabasePath) {
		c.Storage.DatabasePath = filepath.Join(c.Storage.DataDirectory, c.Storage.DatabasePath)
	}
	if !filepath.IsAbs(c.Storage.SymbolsFile) {
		c.Storage.SymbolsFile = filepath.Join(c.Storage.DataDirectory, c.Storage.SymbolsFile)
	}
}

// GetDataDir returns the absolute data directory path
func (c *AppConfig) GetDataDir() string {
	return c.Storage.DataDirectory
}

// GetArtifactDir returns the directory compressed images are written to
func (c *AppConfig) GetArtifactDir() string {
	return c.Storage.ArtifactDirectory
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		c.Storage.DataDirectory,
		c.Storage.ArtifactDirectory,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
