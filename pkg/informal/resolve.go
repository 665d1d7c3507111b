package informal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Log messages and fields emitted by the resolver.
const (
	LogMsgAttempt      = "input attempt"
	LogMsgEmptyLine    = "empty input, asking again"
	LogMsgDefaultUsed  = "empty input, using default"
	LogMsgParseFailed  = "input could not be parsed"
	LogMsgRejected     = "input rejected by validator"
	LogMsgAccepted     = "input accepted"
	LogMsgReadFailed   = "line source failed"
	LogFieldPrompt     = "prompt"
	LogFieldAttempt    = "attempt"
	LogFieldValueType  = "type"
	LogFieldHasMessage = "has_message"
)

// Option configures a Resolver.
type Option func(*resolverConfig)

type resolverConfig struct {
	out    io.Writer
	logger *zap.Logger
	style  func(string) string
}

func defaultResolverConfig() *resolverConfig {
	return &resolverConfig{
		out:    os.Stdout,
		logger: nil,
		style:  nil,
	}
}

// WithOutput sets where error and validation messages are written.
// Default: os.Stdout
func WithOutput(w io.Writer) Option {
	return func(c *resolverConfig) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLogger sets the logger for the resolver.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *resolverConfig) {
		c.logger = logger
	}
}

// WithMessageStyle sets a function applied to every message before it is
// written, typically to add terminal colors.
func WithMessageStyle(fn func(string) string) Option {
	return func(c *resolverConfig) {
		c.style = fn
	}
}

// Resolver runs the read-parse-validate loop for Inputs against a LineSource.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	source LineSource
	out    io.Writer
	logger *zap.Logger
	style  func(string) string
}

// NewResolver creates a Resolver reading from source.
func NewResolver(source LineSource, opts ...Option) *Resolver {
	cfg := defaultResolverConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		source: source,
		out:    cfg.out,
		logger: logger,
		style:  cfg.style,
	}
}

// stdio is shared so that input buffered from os.Stdin survives across
// prompts.
var stdio = sync.OnceValue(func() *Resolver {
	return NewResolver(NewReaderSource(os.Stdin, os.Stdout))
})

// Stdio returns the process-wide Resolver bound to os.Stdin and os.Stdout.
func Stdio() *Resolver {
	return stdio()
}

// message writes msg as one full line.
func (r *Resolver) message(msg string) error {
	if r.style != nil {
		msg = r.style(msg)
	}
	if _, err := fmt.Fprintln(r.out, msg); err != nil {
		return writeError(err)
	}
	return nil
}

// TryGetFrom resolves the Input using r.
//
// The rendered prompt is shown before every read. Empty input returns the
// default when one is set and is otherwise ignored. Unparsable input prints
// the type error message, rejected input prints the validator error message
// (if any), and both are asked again. Only a failure of the line source or of
// the message writer ends resolution with an error.
func (in Input[T]) TryGetFrom(r *Resolver) (T, error) {
	var zero T

	parse := in.parser
	if parse == nil {
		if !Parsable[T]() {
			return zero, fmt.Errorf("%w: %T", ErrUnsupportedType, zero)
		}
		parse = ParseText[T]
	}

	prompt := in.Rendered()
	log := r.logger.With(
		zap.String(LogFieldPrompt, prompt),
		zap.String(LogFieldValueType, fmt.Sprintf("%T", zero)),
	)

	for attempt := 1; ; attempt++ {
		log.Debug(LogMsgAttempt, zap.Int(LogFieldAttempt, attempt))

		raw, err := r.source.ReadLine(prompt)
		if err != nil {
			log.Debug(LogMsgReadFailed, zap.Int(LogFieldAttempt, attempt), zap.Error(err))
			return zero, asInputError(err)
		}

		text := strings.TrimSpace(raw)
		if text == "" {
			if in.hasDef {
				log.Debug(LogMsgDefaultUsed, zap.Int(LogFieldAttempt, attempt))
				return in.def, nil
			}
			log.Debug(LogMsgEmptyLine, zap.Int(LogFieldAttempt, attempt))
			continue
		}

		value, err := parse(text)
		if err != nil {
			log.Debug(LogMsgParseFailed, zap.Int(LogFieldAttempt, attempt), zap.Error(err))
			if err := r.message(in.typeErrorMessage()); err != nil {
				return zero, err
			}
			continue
		}

		if in.predicate != nil && !in.predicate(value) {
			log.Debug(LogMsgRejected,
				zap.Int(LogFieldAttempt, attempt),
				zap.Bool(LogFieldHasMessage, in.validatorMessage != nil))
			if in.validatorMessage != nil {
				if err := r.message(*in.validatorMessage); err != nil {
					return zero, err
				}
			}
			continue
		}

		log.Debug(LogMsgAccepted, zap.Int(LogFieldAttempt, attempt))
		return value, nil
	}
}

// TryGet resolves the Input against standard input and output.
func (in Input[T]) TryGet() (T, error) {
	return in.TryGetFrom(Stdio())
}

// Get resolves the Input against standard input and output. It panics if
// standard input fails or is closed; use TryGet to handle that case.
func (in Input[T]) Get() T {
	return must(in.TryGet())
}

// TryMap resolves in using r and applies fn to the result. fn is only called
// when resolution succeeds.
func TryMap[T, U any](in Input[T], r *Resolver, fn func(T) U) (U, error) {
	value, err := in.TryGetFrom(r)
	if err != nil {
		var zero U
		return zero, err
	}
	return fn(value), nil
}

// Map resolves in against standard input and output and applies fn to the
// result. It panics on I/O failure like Get.
func Map[T, U any](in Input[T], fn func(T) U) U {
	return must(TryMap(in, Stdio(), fn))
}

func asInputError(err error) error {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return err
	}
	return readError(err)
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
