package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"
	"informal-cli/pkg/informal"
)

// Input backends
const (
	BackendLine   = "line"
	BackendSurvey = "survey"
	BackendTUI    = "tui"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C or Esc
var ErrCancelled = errors.New("input cancelled")

// Prompter provides resolvers bound to one input backend
type Prompter struct {
	backend string
	in      *os.File
	out     *os.File
	logger  *zap.Logger
	styles  styles

	line      *informal.ReaderSource
	resolvers map[bool]*informal.Resolver
}

type styles struct {
	prompt  lipgloss.Style
	message lipgloss.Style
	enabled bool
}

func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		prompt:  r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		message: r.NewStyle().Foreground(lipgloss.Color("9")),
		enabled: color,
	}
}

// Prompt styles prompt text, keeping surrounding whitespace unstyled
func (s styles) Prompt(text string) string {
	if !s.enabled {
		return text
	}
	trimmed := strings.TrimRight(text, " ")
	if trimmed == "" {
		return text
	}
	return s.prompt.Render(trimmed) + text[len(trimmed):]
}

// Message styles a validation or type error message
func (s styles) Message(text string) string {
	if !s.enabled {
		return text
	}
	return s.message.Render(text)
}

// NewPrompter creates a prompter reading from in. Prompts and messages are
// written to out so that answers written to stdout stay clean.
func NewPrompter(backend string, in, out *os.File, color bool, logger *zap.Logger) (*Prompter, error) {
	switch backend {
	case "":
		backend = BackendLine
	case BackendLine, BackendSurvey, BackendTUI:
	default:
		return nil, fmt.Errorf("unknown input backend %q", backend)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Prompter{
		backend:   backend,
		in:        in,
		out:       out,
		logger:    logger,
		styles:    newStyles(out, color),
		line:      informal.NewReaderSource(in, out),
		resolvers: make(map[bool]*informal.Resolver),
	}, nil
}

// Backend returns the name of the backend in use
func (p *Prompter) Backend() string {
	return p.backend
}

// Resolver returns a resolver for the configured backend. Secret resolvers
// do not echo typed input.
func (p *Prompter) Resolver(secret bool) *informal.Resolver {
	if r, ok := p.resolvers[secret]; ok {
		return r
	}

	source := p.source(secret)
	r := informal.NewResolver(source,
		informal.WithOutput(p.out),
		informal.WithMessageStyle(p.styles.Message),
		informal.WithLogger(p.logger.With(zap.String("backend", p.backend), zap.Bool("secret", secret))),
	)
	p.resolvers[secret] = r
	return r
}

func (p *Prompter) source(secret bool) informal.LineSource {
	switch p.backend {
	case BackendSurvey:
		return informal.LineSourceFunc(func(prompt string) (string, error) {
			return p.readSurvey(prompt, secret)
		})
	case BackendTUI:
		return informal.LineSourceFunc(func(prompt string) (string, error) {
			return p.readTUI(prompt, secret)
		})
	}

	if secret {
		return informal.LineSourceFunc(p.readSecret)
	}
	return informal.LineSourceFunc(p.readLine)
}

func (p *Prompter) readLine(prompt string) (string, error) {
	return p.line.ReadLine(p.styles.Prompt(prompt))
}

// readSecret reads without echo when input is a terminal and falls back to
// the shared line reader otherwise
func (p *Prompter) readSecret(prompt string) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		p.logger.Debug("input is not a terminal, reading secret as a plain line")
		return p.readLine(prompt)
	}

	if _, err := io.WriteString(p.out, p.styles.Prompt(prompt)); err != nil {
		return "", err
	}

	b, err := term.ReadPassword(fd)
	// ReadPassword swallows the newline typed by the user
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func (p *Prompter) readSurvey(prompt string, secret bool) (string, error) {
	message := strings.TrimSpace(prompt)

	var q survey.Prompt = &survey.Input{Message: message}
	if secret {
		q = &survey.Password{Message: message}
	}

	var answer string
	err := survey.AskOne(q, &answer, survey.WithStdio(p.in, p.out, p.out))
	if err != nil {
		return "", surveyError(err)
	}
	return answer + "\n", nil
}

func surveyError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
