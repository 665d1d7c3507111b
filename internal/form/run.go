package form

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"informal-cli/internal/interfaces"
)

// Runner asks the questions of a form
type Runner struct {
	renderer  interfaces.PromptRenderer
	resolvers interfaces.ResolverProvider
	out       io.Writer
	logger    *zap.Logger
}

// NewRunner creates a runner. The form title is written to out.
func NewRunner(renderer interfaces.PromptRenderer, resolvers interfaces.ResolverProvider, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		renderer:  renderer,
		resolvers: resolvers,
		out:       out,
		logger:    logger,
	}
}

// Ask compiles and resolves a single question. Its prompt is rendered with data.
func (r *Runner) Ask(q Question, data map[string]interface{}) (interface{}, error) {
	compiled, err := Compile(q)
	if err != nil {
		return nil, err
	}

	prompt, err := r.renderer.Render(q.Name, q.Prompt, data)
	if err != nil {
		return nil, fmt.Errorf("%w: question %q: %v", ErrFormInvalid, q.Name, err)
	}

	value, err := compiled.Ask(r.resolvers.Resolver(q.Secret), prompt)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("question", q.Name)}
	if !q.Secret {
		fields = append(fields, zap.Any("value", value))
	}
	r.logger.Debug("question answered", fields...)
	return value, nil
}

// Run asks every question in order. Each prompt can refer to earlier answers.
func (r *Runner) Run(f *Form) (*Answers, error) {
	if f.Title != "" && r.out != nil {
		if _, err := fmt.Fprintln(r.out, f.Title); err != nil {
			return nil, fmt.Errorf("failed to write form title: %w", err)
		}
	}

	r.logger.Debug("running form", zap.String("title", f.Title), zap.Int("questions", len(f.Questions)))

	answers := NewAnswers()
	for _, q := range f.Questions {
		value, err := r.Ask(q, answers.Map())
		if err != nil {
			return nil, err
		}
		answers.Set(q.Name, value)
	}
	return answers, nil
}
