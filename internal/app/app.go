package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"informal-cli/internal/form"
	"informal-cli/internal/interactive"
	"informal-cli/internal/interfaces"
	"informal-cli/internal/orchestrator"
	"informal-cli/pkg/models"
)

// ErrDeclined is returned by Confirm with ExitCode set when the answer is no
var ErrDeclined = errors.New("declined")

type session struct {
	orch     *orchestrator.Orchestrator
	cfg      *interfaces.Config
	prompter *interactive.Prompter
	logger   *zap.Logger
}

// start loads configuration and binds the configured backend to the terminal.
// Prompts go to stderr so that answers on stdout can be captured.
func start(common models.Common) (*session, error) {
	logger := newLogger(common.Verbose)
	orch := orchestrator.New(logger)

	cfg, err := orch.LoadConfiguration(common)
	if err != nil {
		return nil, err
	}

	prompter, err := interactive.NewPrompter(cfg.Backend, os.Stdin, os.Stderr, cfg.Color, logger)
	if err != nil {
		return nil, orchestrator.NewConfigurationError("failed to set up input backend", err)
	}

	return &session{orch: orch, cfg: cfg, prompter: prompter, logger: logger}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// Ask resolves one typed question and writes the answer to the target
func Ask(request *models.AskRequest) error {
	s, err := start(request.Common)
	if err != nil {
		return err
	}
	defer s.close()

	answer, err := s.orch.Ask(request, s.cfg, s.prompter)
	if err != nil {
		return err
	}
	return s.orch.Output(answer, s.cfg)
}

// Confirm asks a yes/no question. With ExitCode set nothing is written and a
// no answer is reported as ErrDeclined; otherwise yes or no is written.
func Confirm(request *models.ConfirmRequest) error {
	s, err := start(request.Common)
	if err != nil {
		return err
	}
	defer s.close()

	yes, err := s.orch.Confirm(request, s.cfg, s.prompter)
	if err != nil {
		return err
	}

	if request.ExitCode {
		if !yes {
			return ErrDeclined
		}
		return nil
	}

	answer := "no"
	if yes {
		answer = "yes"
	}
	return s.orch.Output(answer, s.cfg)
}

// RunForm asks every question of a form and writes the encoded answers
func RunForm(request *models.FormRequest) error {
	s, err := start(request.Common)
	if err != nil {
		return err
	}
	defer s.close()

	encoded, err := s.orch.RunForm(request, s.cfg, s.prompter)
	if err != nil {
		return err
	}
	return s.orch.Output(encoded, s.cfg)
}

// ListForms lists the forms available in the configured forms location
func ListForms(common models.Common, w io.Writer) error {
	logger := newLogger(common.Verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := orchestrator.New(logger).LoadConfiguration(common)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Forms location: %s\n\n", contractPath(cfg.FormsLocation))

	forms, err := listFormsInDir(cfg.FormsLocation)
	if err != nil {
		fmt.Fprintln(w, "Forms: (directory not found)")
		return nil
	}
	if len(forms) == 0 {
		fmt.Fprintln(w, "Forms: (none found)")
		return nil
	}

	fmt.Fprintln(w, "Forms:")
	for _, entry := range forms {
		fmt.Fprintf(w, "  - %s\n", entry)
	}
	return nil
}

// listFormsInDir lists the .yaml and .yml forms in dir, with their titles
func listFormsInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var forms []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		line := strings.TrimSuffix(name, ext)
		f, err := form.Load(filepath.Join(dir, name))
		switch {
		case err != nil:
			line += " (invalid)"
		case f.Title != "":
			line += " - " + f.Title
		}
		forms = append(forms, line)
	}

	sort.Strings(forms)
	return forms, nil
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	// Add trailing slash to home directory for proper matching
	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
