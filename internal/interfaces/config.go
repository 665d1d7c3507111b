package interfaces

// Config represents the application configuration
type Config struct {
	Backend               string `toml:"backend"`
	Target                string `toml:"target"`
	Format                string `toml:"format"`
	TypeErrorMessage      string `toml:"type_error_message"`
	ValidatorErrorMessage string `toml:"validator_error_message"`
	Color                 bool   `toml:"color"`
	FormsLocation         string `toml:"forms_location"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// SetFlag records a command line value that overrides all other sources
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
