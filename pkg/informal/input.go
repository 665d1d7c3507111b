package informal

// DefaultTypeErrorMessage is printed when parsing fails and no type error
// message was configured.
const DefaultTypeErrorMessage = "Error: invalid input"

// Input describes one prompt: what to show, how to parse the answer and which
// answers to accept.
//
// Input is a value type. Every setter returns an updated copy, so a partially
// configured Input can be shared and extended without affecting other copies.
// Nothing is read or validated until one of the Get methods is called.
type Input[T any] struct {
	prompt    *string
	prefix    *string
	suffix    *string
	def       T
	hasDef    bool
	predicate func(T) bool
	parser    func(string) (T, error)

	typeMessage      *string
	validatorMessage *string
}

// New returns an empty Input.
func New[T any]() Input[T] {
	return Input[T]{}
}

// NewPrompt returns an Input that displays text before reading.
func NewPrompt[T any](text string) Input[T] {
	return New[T]().Prompt(text)
}

// Prompt sets the text displayed before waiting for user input.
func (in Input[T]) Prompt(text string) Input[T] {
	in.prompt = &text
	return in
}

// Prefix sets the text displayed before the prompt.
func (in Input[T]) Prefix(prefix string) Input[T] {
	in.prefix = &prefix
	return in
}

// Suffix sets the text displayed after the prompt.
func (in Input[T]) Suffix(suffix string) Input[T] {
	in.suffix = &suffix
	return in
}

// Default sets the value returned when the user enters an empty line.
// The default is returned as is: it is never parsed or validated.
func (in Input[T]) Default(value T) Input[T] {
	in.def = value
	in.hasDef = true
	return in
}

// Matches sets the acceptance test for parsed values. Values for which fn
// returns false are rejected and the user is asked again.
func (in Input[T]) Matches(fn func(T) bool) Input[T] {
	in.predicate = fn
	return in
}

// ParseWith replaces the textual conversion used for T.
func (in Input[T]) ParseWith(fn func(string) (T, error)) Input[T] {
	in.parser = fn
	return in
}

// TypeErrorMessage sets the message printed when the input cannot be
// converted to T.
func (in Input[T]) TypeErrorMessage(message string) Input[T] {
	in.typeMessage = &message
	return in
}

// ValidatorErrorMessage sets the message printed when the Matches condition
// does not hold. Without it rejected values are re-prompted silently.
func (in Input[T]) ValidatorErrorMessage(message string) Input[T] {
	in.validatorMessage = &message
	return in
}

// DefaultValue reports the configured default, if any.
func (in Input[T]) DefaultValue() (T, bool) {
	return in.def, in.hasDef
}

// Rendered returns the full prompt: prefix, prompt text and suffix.
func (in Input[T]) Rendered() string {
	var rendered string
	for _, part := range []*string{in.prefix, in.prompt, in.suffix} {
		if part != nil {
			rendered += *part
		}
	}
	return rendered
}

func (in Input[T]) typeErrorMessage() string {
	if in.typeMessage != nil {
		return *in.typeMessage
	}
	return DefaultTypeErrorMessage
}
