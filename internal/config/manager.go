package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"informal-cli/internal/interfaces"
)

// Supported values for the enumerated configuration keys
var (
	ValidBackends = map[string]bool{
		"line":   true,
		"survey": true,
		"tui":    true,
	}
	ValidFormats = map[string]bool{
		"yaml": true,
		"json": true,
		"env":  true,
	}
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("INFORMAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "line")
	v.SetDefault("target", "stdout")
	v.SetDefault("format", "yaml")
	v.SetDefault("type_error_message", "")
	v.SetDefault("validator_error_message", "")
	v.SetDefault("color", true)
	v.SetDefault("forms_location", "~/.config/informal/forms")
}

// DefaultPath returns the configuration file used when none is given
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "informal", "config.toml"), nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Config file doesn't exist, use defaults
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	// Apply flag overrides (highest precedence)
	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	if str, ok := m.stringFlag("backend"); ok {
		config.Backend = str
	}

	if str, ok := m.stringFlag("target"); ok {
		config.Target = str
	}

	if str, ok := m.stringFlag("format"); ok {
		config.Format = str
	}

	if str, ok := m.stringFlag("type_error_message"); ok {
		config.TypeErrorMessage = str
	}

	if str, ok := m.stringFlag("validator_error_message"); ok {
		config.ValidatorErrorMessage = str
	}

	if str, ok := m.stringFlag("forms_location"); ok {
		config.FormsLocation = expandPath(str)
	}

	if val, exists := m.flags["color"]; exists && val != nil {
		if b, ok := val.(bool); ok {
			config.Color = b
		}
	}
}

// stringFlag returns a non-empty string flag value
func (m *Manager) stringFlag(key string) (string, bool) {
	val, exists := m.flags[key]
	if !exists || val == nil {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if !ValidBackends[config.Backend] {
		return fmt.Errorf("invalid backend: %s (must be 'line', 'survey' or 'tui')", config.Backend)
	}

	if !ValidFormats[config.Format] {
		return fmt.Errorf("invalid format: %s (must be 'yaml', 'json' or 'env')", config.Format)
	}

	if err := ValidateTarget(config.Target); err != nil {
		return err
	}

	return nil
}

// ValidateTarget checks an output target
func ValidateTarget(target string) error {
	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	// Also allow file: prefix
	if !validTargets[target] && !(strings.HasPrefix(target, "file:") && len(target) > len("file:")) {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", target)
	}
	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		Backend:               m.v.GetString("backend"),
		Target:                m.v.GetString("target"),
		Format:                m.v.GetString("format"),
		TypeErrorMessage:      m.v.GetString("type_error_message"),
		ValidatorErrorMessage: m.v.GetString("validator_error_message"),
		Color:                 m.v.GetBool("color"),
		FormsLocation:         expandPath(m.v.GetString("forms_location")),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
