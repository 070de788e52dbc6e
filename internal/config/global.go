// internal/config/global.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/modforge/launchmeta/internal/config/validate"
	"github.com/modforge/launchmeta/internal/utils/security"
	"github.com/modforge/launchmeta/internal/utils/slice"
)

// GlobalConfig holds tool-level configuration parameters
type GlobalConfig struct {
	// Core tool settings
	Workers   int    `yaml:"workers" json:"workers" env:"LAUNCHMETA_WORKERS"`         // Number of concurrent export workers (1-100, default: 8)
	OutputDir string `yaml:"output_dir" json:"output_dir" env:"LAUNCHMETA_OUTPUT_DIR"` // Directory where fetched and composed metadata is written (default: ./output)
	TempDir   string `yaml:"temp_dir" json:"temp_dir" env:"LAUNCHMETA_TEMP_DIR"`       // Temporary directory for partially written documents (empty = system default)

	// Metadata sources
	ManifestURL string            `yaml:"manifest_url" json:"manifest_url" env:"LAUNCHMETA_MANIFEST_URL"` // Version manifest URL (empty = upstream default)
	Mirrors     []string          `yaml:"mirrors" json:"mirrors" env:"LAUNCHMETA_MIRRORS"`                // Ordered library mirror prefixes, tried first to last
	Loaders     map[string]string `yaml:"loaders" json:"loaders"`                                         // Mod loader name -> loader manifest URL

	// Outbound identification
	Branding BrandingConfig `yaml:"branding" json:"branding"` // Identification sent as the User-Agent header

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"` // Logging behavior settings
}

// BrandingConfig identifies the party running the tool on outbound requests
type BrandingConfig struct {
	Name    string `yaml:"name" json:"name" env:"LAUNCHMETA_BRAND_NAME"`          // Application or organization name
	Contact string `yaml:"contact" json:"contact" env:"LAUNCHMETA_BRAND_CONTACT"` // Contact address included in the header
}

// LoggingConfig controls basic logging behavior
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"LAUNCHMETA_LOG_LEVEL"`                  // Log verbosity level: debug, info (default), warn, error
	File  string `yaml:"file,omitempty" json:"file,omitempty" env:"LAUNCHMETA_LOG_FILE"` // Optional log file path for teeing output to disk
}

// Global singleton variables
var (
	globalInstance *GlobalConfig
	globalMutex    sync.RWMutex
	once           sync.Once
)

// SetGlobal sets the global config instance (call once at startup in main.go)
func SetGlobal(config *GlobalConfig) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalInstance = config
}

// Global returns the global config instance
func Global() *GlobalConfig {
	once.Do(func() {
		globalMutex.Lock()
		defer globalMutex.Unlock()
		if globalInstance == nil {
			globalInstance = DefaultGlobalConfig()
		}
	})

	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalInstance
}

// DefaultGlobalConfig returns a GlobalConfig with sensible defaults
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Workers:   8,
		OutputDir: "./output",
		TempDir:   "",

		ManifestURL: "",
		Mirrors: []string{
			"https://libraries.minecraft.net/",
			"https://maven.fabricmc.net/",
		},
		Loaders: map[string]string{
			"fabric": "https://launcher-meta.modrinth.com/fabric/v0/manifest.json",
			"forge":  "https://launcher-meta.modrinth.com/forge/v0/manifest.json",
		},

		Branding: BrandingConfig{
			Name:    "unbranded",
			Contact: "unbranded",
		},

		Logging: LoggingConfig{
			Level: "info",
			File:  "launchmeta.log",
		},
	}
}

// LoadGlobalConfig loads configuration from the specified path, then applies
// LAUNCHMETA_* environment overrides on top of the file values
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	config := DefaultGlobalConfig()

	if configPath == "" {
		return finishLoad(config)
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return finishLoad(config) // fall back to defaults
		}
		if errors.Is(err, os.ErrPermission) {
			return finishLoad(config)
		}
		return nil, fmt.Errorf("accessing config file %s: %w", configPath, err)
	}

	// Load config file values with symlink protection
	data, err := security.SafeReadFile(configPath, security.RejectSymlinks)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	return finishLoad(config)
}

// finishLoad applies env overrides, schema-validates and sanity-checks the
// assembled configuration.
func finishLoad(config *GlobalConfig) (*GlobalConfig, error) {
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	// Convert to JSON for schema validation
	jsonData, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("converting config to JSON for validation: %w", err)
	}
	if err := validate.ValidateConfigJSON(jsonData); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// SaveGlobalConfig saves the configuration to the specified path
func (gc *GlobalConfig) SaveGlobalConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	jsonData, err := json.Marshal(gc)
	if err != nil {
		return fmt.Errorf("converting config to JSON for validation: %w", err)
	}
	if err := validate.ValidateConfigJSON(jsonData); err != nil {
		return fmt.Errorf("config validation failed before save: %w", err)
	}

	data, err := yaml.Marshal(gc)
	if err != nil {
		return fmt.Errorf("marshaling config to YAML: %w", err)
	}

	// Use safe write to prevent symlink attacks
	if err := security.SafeWriteFile(configPath, data, 0600, security.RejectSymlinks); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SaveGlobalConfigWithComments saves the configuration with descriptive
// comments. Used by the CLI config init command to create a user-friendly
// starting file.
func (gc *GlobalConfig) SaveGlobalConfigWithComments(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is empty")
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	jsonData, err := json.Marshal(gc)
	if err != nil {
		return fmt.Errorf("converting config to JSON for validation: %w", err)
	}
	if err := validate.ValidateConfigJSON(jsonData); err != nil {
		return fmt.Errorf("config validation failed before save: %w", err)
	}

	commented := gc.renderCommentedYAML()

	if err := security.SafeWriteFile(configPath, []byte(commented), 0600, security.RejectSymlinks); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// renderCommentedYAML builds a YAML representation of the config with rich comments.
func (gc *GlobalConfig) renderCommentedYAML() string {
	var b strings.Builder

	b.WriteString("# launchmeta - Global Configuration\n")
	b.WriteString("# Tool-level settings that apply to every fetch and compose operation.\n\n")

	b.WriteString("# Core tool settings\n")
	fmt.Fprintf(&b, "workers: %d\n", gc.Workers)
	b.WriteString("# Number of concurrent export workers (1-100, default: 8)\n")
	b.WriteString("# Higher values speed up bulk metadata downloads but open more connections\n\n")

	fmt.Fprintf(&b, "output_dir: %q\n", gc.OutputDir)
	b.WriteString("# Directory where fetched and composed metadata documents are written (default: ./output)\n\n")

	fmt.Fprintf(&b, "temp_dir: %q\n", gc.TempDir)
	b.WriteString("# Temporary directory for partially written documents\n")
	b.WriteString("# Empty value uses the system default (/tmp on Linux)\n\n")

	b.WriteString("# Metadata sources\n")
	fmt.Fprintf(&b, "manifest_url: %q\n", gc.ManifestURL)
	b.WriteString("# Version manifest URL; empty uses the upstream default\n\n")

	b.WriteString("mirrors:\n")
	for _, mirror := range gc.Mirrors {
		fmt.Fprintf(&b, "  - %q\n", mirror)
	}
	b.WriteString("# Ordered library mirror prefixes; earlier mirrors are preferred\n")
	b.WriteString("# A mirror prefix is concatenated with the library path as-is, so keep the trailing slash\n\n")

	b.WriteString("loaders:\n")
	for _, name := range sortedLoaderNames(gc.Loaders) {
		fmt.Fprintf(&b, "  %s: %q\n", name, gc.Loaders[name])
	}
	b.WriteString("# Mod loader manifest URLs consulted by the compose command\n\n")

	b.WriteString("# Outbound identification\n")
	b.WriteString("branding:\n")
	fmt.Fprintf(&b, "  name: %q\n", gc.Branding.Name)
	fmt.Fprintf(&b, "  contact: %q\n", gc.Branding.Contact)
	b.WriteString("# Sent as the User-Agent header on every request; set these so upstream\n")
	b.WriteString("# mirror operators can reach you\n\n")

	b.WriteString("# Logging configuration\n")
	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  level: %q\n", gc.Logging.Level)
	b.WriteString("  # Log verbosity level (default: info)\n")
	b.WriteString("  # - debug: Most verbose, shows every fetch attempt\n")
	b.WriteString("  # - info:  Normal output, shows progress and important events\n")
	b.WriteString("  # - warn:  Only warnings and errors\n")
	b.WriteString("  # - error: Only errors\n")
	if gc.Logging.File != "" {
		fmt.Fprintf(&b, "  file: %q\n", gc.Logging.File)
		b.WriteString("  # Tee logs to this file in addition to stderr (overwritten on each run)\n")
	}

	return b.String()
}

// Validate checks the configuration for consistency and applies constraints
// Note: This should NOT set defaults - that's done in DefaultGlobalConfig()
func (gc *GlobalConfig) Validate() error {
	if gc.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", gc.Workers)
	}
	if gc.Workers > 100 {
		return fmt.Errorf("workers cannot exceed 100, got %d", gc.Workers)
	}

	if gc.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	for i, mirror := range gc.Mirrors {
		if strings.TrimSpace(mirror) == "" {
			return fmt.Errorf("mirror %d is empty", i)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slice.Contains(validLevels, gc.Logging.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			gc.Logging.Level, strings.Join(validLevels, ", "))
	}

	gc.Logging.File = strings.TrimSpace(gc.Logging.File)

	return nil
}

// GetConfigPaths returns the standard configuration file paths to check
func GetConfigPaths() []string {
	homeDir, _ := os.UserHomeDir()

	paths := []string{
		"launchmeta.yml",   // Primary config location (working directory)
		".launchmeta.yml",  // Hidden file in current directory
		"launchmeta.yaml",  // Alternative extension
		".launchmeta.yaml", // Hidden file alternative
	}

	if homeDir != "" {
		paths = append(paths,
			filepath.Join(homeDir, ".launchmeta", "config.yml"),
			filepath.Join(homeDir, ".launchmeta", "config.yaml"),
			filepath.Join(homeDir, ".config", "launchmeta", "config.yml"),
			filepath.Join(homeDir, ".config", "launchmeta", "config.yaml"),
		)
	}

	// System-wide config paths
	paths = append(paths,
		"/etc/launchmeta/config.yml",
		"/etc/launchmeta/config.yaml",
	)

	return paths
}

// FindConfigFile searches for a configuration file in standard locations
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Convenience functions that can be used anywhere in the codebase
func Workers() int {
	return Global().Workers
}

func OutputDir() (string, error) {
	outputDir, err := filepath.Abs(Global().OutputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	return outputDir, nil
}

func TempDir() string {
	tempDir := Global().TempDir
	if tempDir == "" {
		return os.TempDir()
	}
	return tempDir
}

func ManifestURL() string {
	return Global().ManifestURL
}

func Mirrors() []string {
	return Global().Mirrors
}

// LoaderManifestURL returns the manifest URL configured for a loader name.
func LoaderManifestURL(name string) (string, bool) {
	url, ok := Global().Loaders[name]
	return url, ok
}

func LogLevel() string {
	return Global().Logging.Level
}

func IsDebugMode() bool {
	return Global().Logging.Level == "debug"
}

// EnsureOutputDir creates the output directory when it does not exist.
func EnsureOutputDir() error {
	outputDir, err := OutputDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(outputDir, 0755)
}

func sortedLoaderNames(loaders map[string]string) []string {
	names := slice.Keys(loaders)
	sort.Strings(names)
	return names
}
