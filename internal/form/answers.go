package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatEnv  = "env"
)

// Answers holds resolved values in the order they were asked
type Answers struct {
	names  []string
	values map[string]interface{}
}

// NewAnswers creates an empty answer set
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]interface{})}
}

// Set records value under name, keeping the position of an earlier answer
func (a *Answers) Set(name string, value interface{}) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the answer stored under name
func (a *Answers) Get(name string) (interface{}, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Names returns answer names in insertion order
func (a *Answers) Names() []string {
	return append([]string(nil), a.names...)
}

// Map returns a copy of the answers, suitable as template data
func (a *Answers) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

// Encode renders the answers as yaml, json or env
func (a *Answers) Encode(format string) (string, error) {
	switch format {
	case FormatYAML, "":
		return a.encodeYAML()
	case FormatJSON:
		return a.encodeJSON()
	case FormatEnv:
		return a.encodeEnv()
	default:
		return "", fmt.Errorf("unsupported answer format %q", format)
	}
}

func (a *Answers) encodeYAML() (string, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range a.names {
		var value yaml.Node
		if err := value.Encode(a.values[name]); err != nil {
			return "", fmt.Errorf("failed to encode answer %s: %w", name, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	return buf.String(), nil
}

func (a *Answers) encodeJSON() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, name := range a.names {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(name)
		if err != nil {
			return "", fmt.Errorf("failed to encode answer name %s: %w", name, err)
		}
		value, err := json.Marshal(a.values[name])
		if err != nil {
			return "", fmt.Errorf("failed to encode answer %s: %w", name, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(a.names) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func (a *Answers) encodeEnv() (string, error) {
	env := make(map[string]string, len(a.values))
	for _, name := range a.names {
		env[EnvKey(name)] = FormatValue(a.values[name])
	}

	out, err := godotenv.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// EnvKey converts an answer name to an environment variable name. Names are
// already limited to letters, digits and underscores by Validate.
func EnvKey(name string) string {
	return strings.ToUpper(name)
}

// FormatValue renders a single answer as plain text
func FormatValue(v interface{}) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
