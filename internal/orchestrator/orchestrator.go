package orchestrator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"informal-cli/internal/config"
	"informal-cli/internal/form"
	"informal-cli/internal/interfaces"
	"informal-cli/internal/template"
	"informal-cli/pkg/models"
)

// Orchestrator coordinates configuration, questions and output for the CLI
type Orchestrator struct {
	configManager interfaces.ConfigManager
	renderer      interfaces.PromptRenderer
	outputHandler interfaces.OutputHandler
	stderr        io.Writer
	logger        *zap.Logger
}

// New creates a new orchestrator with all required components
func New(logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		configManager: config.NewManager(),
		renderer:      template.NewProcessor(),
		outputHandler: NewOutputHandler(),
		stderr:        os.Stderr,
		logger:        logger,
	}
}

// LoadConfiguration loads and resolves configuration with precedence
// flags > env > file > defaults
func (o *Orchestrator) LoadConfiguration(common models.Common) (*interfaces.Config, error) {
	if common.ConfigPath != "" {
		if _, err := os.Stat(common.ConfigPath); os.IsNotExist(err) {
			return nil, NewValidationError("config_path", common.ConfigPath, "file does not exist")
		}
	}

	if common.Backend != "" {
		o.configManager.SetFlag("backend", common.Backend)
	}
	if common.Target != "" {
		o.configManager.SetFlag("target", common.Target)
	}
	if common.NoColor {
		o.configManager.SetFlag("color", false)
	}

	if _, err := o.configManager.Load(common.ConfigPath); err != nil {
		return nil, RecoverFromError(NewConfigurationError("failed to load configuration", err))
	}

	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, RecoverFromError(NewConfigurationError("failed to resolve configuration", err))
	}

	if err := o.configManager.Validate(cfg); err != nil {
		return nil, RecoverFromError(NewConfigurationError("invalid configuration", err))
	}

	o.logger.Debug("configuration loaded",
		zap.String("backend", cfg.Backend),
		zap.String("target", cfg.Target),
		zap.String("format", cfg.Format),
		zap.String("forms_location", cfg.FormsLocation),
	)
	return cfg, nil
}

// Ask resolves a single command line question and returns the answer as text
func (o *Orchestrator) Ask(request *models.AskRequest, cfg *interfaces.Config, resolvers interfaces.ResolverProvider) (string, error) {
	if request == nil {
		return "", NewValidationError("request", nil, "request cannot be nil")
	}

	q := questionFromRequest(request, cfg)
	value, err := o.runner(resolvers).Ask(q, map[string]interface{}{})
	if err != nil {
		if errors.Is(err, form.ErrFormInvalid) {
			return "", NewValidationError("question", request.Type, err.Error())
		}
		return "", NewInputError(err)
	}

	return form.FormatValue(value), nil
}

// Confirm asks a yes/no question. An empty answer selects the default.
func (o *Orchestrator) Confirm(request *models.ConfirmRequest, cfg *interfaces.Config, resolvers interfaces.ResolverProvider) (bool, error) {
	if request == nil {
		return false, NewValidationError("request", nil, "request cannot be nil")
	}

	q := form.Question{
		Name:           "confirm",
		Prompt:         request.Prompt,
		Type:           form.TypeConfirm,
		ValidatorError: firstNonEmpty(request.Message, cfg.ValidatorErrorMessage),
	}
	if request.DefaultYes {
		q.Default = "yes"
	}

	value, err := o.runner(resolvers).Ask(q, map[string]interface{}{})
	if err != nil {
		if errors.Is(err, form.ErrFormInvalid) {
			return false, NewValidationError("question", form.TypeConfirm, err.Error())
		}
		return false, NewInputError(err)
	}

	yes, _ := value.(bool)
	return yes, nil
}

// RunForm asks every question of a form and returns the encoded answers
func (o *Orchestrator) RunForm(request *models.FormRequest, cfg *interfaces.Config, resolvers interfaces.ResolverProvider) (string, error) {
	if request == nil || strings.TrimSpace(request.Path) == "" {
		return "", NewValidationError("form", "", "a form path or name is required")
	}

	format := firstNonEmpty(request.Format, cfg.Format)
	if !config.ValidFormats[format] {
		return "", NewValidationError("format", format, "unsupported answer format")
	}

	path, err := form.Discover(cfg.FormsLocation, request.Path)
	if err != nil {
		return "", RecoverFromError(NewFormError(request.Path, err))
	}

	f, err := form.Load(path)
	if err != nil {
		return "", NewFormError(request.Path, err)
	}
	applyMessageDefaults(f, cfg)

	o.logger.Debug("form loaded", zap.String("path", path), zap.Int("questions", len(f.Questions)))

	answers, err := o.runner(resolvers).Run(f)
	if err != nil {
		if errors.Is(err, form.ErrFormInvalid) {
			return "", NewFormError(request.Path, err)
		}
		return "", NewInputError(err)
	}

	encoded, err := answers.Encode(format)
	if err != nil {
		return "", NewOutputError(format, err)
	}
	return encoded, nil
}

// Output writes content to the configured target. A clipboard failure falls
// back to stdout.
func (o *Orchestrator) Output(content string, cfg *interfaces.Config) error {
	target := cfg.Target
	if target == "" {
		target = "stdout"
	}

	switch {
	case target == "clipboard":
		if err := o.outputHandler.WriteToClipboard(content); err != nil {
			outputErr := NewOutputError(target, err)
			if IsRecoverableError(outputErr) {
				fmt.Fprintf(o.stderr, "Warning: %s\nFalling back to stdout:\n\n", outputErr.Error())
				return o.outputHandler.WriteToStdout(content)
			}
			return RecoverFromError(outputErr)
		}
		fmt.Fprintln(o.stderr, "Answer copied to clipboard")

	case target == "stdout":
		if err := o.outputHandler.WriteToStdout(content); err != nil {
			return RecoverFromError(NewOutputError(target, err))
		}

	case strings.HasPrefix(target, "file:"):
		filePath := strings.TrimPrefix(target, "file:")
		if err := o.outputHandler.WriteToFile(content, filePath); err != nil {
			return RecoverFromError(NewOutputError(target, err))
		}
		fmt.Fprintf(o.stderr, "Answer written to %s\n", filePath)

	default:
		return RecoverFromError(NewValidationError("target", target, "unsupported output target"))
	}

	return nil
}

func (o *Orchestrator) runner(resolvers interfaces.ResolverProvider) *form.Runner {
	return form.NewRunner(o.renderer, resolvers, o.stderr, o.logger)
}

// questionFromRequest maps command line flags onto a form question. Messages
// fall back to the configured defaults.
func questionFromRequest(request *models.AskRequest, cfg *interfaces.Config) form.Question {
	q := form.Question{
		Name:           "answer",
		Prompt:         request.Prompt,
		Prefix:         request.Prefix,
		Suffix:         request.Suffix,
		Type:           request.Type,
		Pattern:        request.Pattern,
		OneOf:          request.OneOf,
		TypeError:      firstNonEmpty(request.TypeError, cfg.TypeErrorMessage),
		ValidatorError: firstNonEmpty(request.ValidatorError, cfg.ValidatorErrorMessage),
		Secret:         request.Secret,
	}
	if request.HasDefault {
		q.Default = request.Default
	}
	if request.Min != "" {
		q.Min = request.Min
	}
	if request.Max != "" {
		q.Max = request.Max
	}
	return q
}

func applyMessageDefaults(f *form.Form, cfg *interfaces.Config) {
	for i := range f.Questions {
		q := &f.Questions[i]
		q.TypeError = firstNonEmpty(q.TypeError, cfg.TypeErrorMessage)
		q.ValidatorError = firstNonEmpty(q.ValidatorError, cfg.ValidatorErrorMessage)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
