package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Processor renders prompt text as Go templates against collected answers
type Processor struct {
	funcs template.FuncMap
}

// NewProcessor creates a new prompt processor
func NewProcessor() *Processor {
	p := &Processor{}
	p.funcs = p.helpers()
	return p
}

// Render executes text with data. Text without template actions is returned
// unchanged.
func (p *Processor) Render(name, text string, data map[string]interface{}) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).
		Funcs(p.funcs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

// helpers merges sprig functions with the custom prompt helpers
func (p *Processor) helpers() template.FuncMap {
	// Start with sprig functions
	funcMap := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"truncate": truncateFunc,
		"yesno":    yesNoFunc,
	}

	for name, fn := range customFuncs {
		funcMap[name] = fn
	}

	return funcMap
}

// truncateFunc shortens text to length runes, ending with "..." when cut
func truncateFunc(length int, text string) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	if length <= 0 {
		return ""
	}

	if length <= 3 {
		return string(runes[:length])
	}

	return string(runes[:length-3]) + "..."
}

// yesNoFunc renders a confirmation answer as yes or no
func yesNoFunc(answer bool) string {
	if answer {
		return "yes"
	}
	return "no"
}
