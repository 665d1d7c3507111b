// Package form runs a sequence of typed questions described in YAML.
package form

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Error categories for form definitions
var (
	ErrFormNotFound = errors.New("form not found")
	ErrFormInvalid  = errors.New("invalid form")
)

// Form is a titled list of questions asked in order
type Form struct {
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions"`
}

// Question describes one prompt of a form
type Question struct {
	Name           string      `yaml:"name"`
	Prompt         string      `yaml:"prompt"`
	Prefix         string      `yaml:"prefix"`
	Suffix         string      `yaml:"suffix"`
	Type           string      `yaml:"type"`
	Default        interface{} `yaml:"default"`
	Min            interface{} `yaml:"min"`
	Max            interface{} `yaml:"max"`
	Pattern        string      `yaml:"pattern"`
	OneOf          []string    `yaml:"one_of"`
	TypeError      string      `yaml:"type_error"`
	ValidatorError string      `yaml:"validator_error"`
	Secret         bool        `yaml:"secret"`
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads and validates a form file
func Load(path string) (*Form, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %s: %w", path, err)
	}

	f, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a form definition
func Parse(content []byte) (*Form, error) {
	var f Form
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormInvalid, err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks question names and compiles every question once so that
// bad types, bounds, patterns and defaults are reported before any input is
// read.
func (f *Form) Validate() error {
	if len(f.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrFormInvalid)
	}

	seen := make(map[string]bool)
	for i, q := range f.Questions {
		if !namePattern.MatchString(q.Name) {
			return fmt.Errorf("%w: question %d has invalid name %q", ErrFormInvalid, i+1, q.Name)
		}
		if seen[q.Name] {
			return fmt.Errorf("%w: duplicate question name %q", ErrFormInvalid, q.Name)
		}
		seen[q.Name] = true

		if _, err := Compile(q); err != nil {
			return err
		}
	}
	return nil
}

// Discover finds a form by path, or by name (case-insensitive stem match)
// inside location
func Discover(location, nameOrPath string) (string, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, nil
	}
	if filepath.IsAbs(nameOrPath) || strings.Contains(nameOrPath, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrFormNotFound, nameOrPath)
	}

	entries, err := os.ReadDir(location)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFormNotFound, nameOrPath)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		ext := filepath.Ext(filename)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		if strings.EqualFold(strings.TrimSuffix(filename, ext), nameOrPath) {
			return filepath.Join(location, filename), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrFormNotFound, nameOrPath)
}
