package informal

import "strings"

// ConfirmSuffix is appended to confirmation prompts.
const ConfirmSuffix = " [y/N] "

// ConfirmInput returns the Input used by the Confirm functions: a string
// answer defaulting to "n" that only accepts y, yes, n or no in any case.
func ConfirmInput(text string) Input[string] {
	return NewPrompt[string](text).
		Suffix(ConfirmSuffix).
		Default("n").
		Matches(isYesNo)
}

// TryConfirm asks a yes/no question using r. Invalid answers are asked again
// without a message.
func TryConfirm(r *Resolver, text string) (bool, error) {
	return TryMap(ConfirmInput(text), r, IsYes)
}

// TryConfirmWithMessage is like TryConfirm but prints message after an
// invalid answer.
func TryConfirmWithMessage(r *Resolver, text, message string) (bool, error) {
	return TryMap(ConfirmInput(text).ValidatorErrorMessage(message), r, IsYes)
}

// Confirm asks a yes/no question on standard input and output. An empty
// answer means no.
func Confirm(text string) bool {
	return must(TryConfirm(Stdio(), text))
}

// ConfirmWithMessage is like Confirm but prints message after an invalid
// answer.
func ConfirmWithMessage(text, message string) bool {
	return must(TryConfirmWithMessage(Stdio(), text, message))
}

func isYesNo(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no", "y", "yes":
		return true
	}
	return false
}

// IsYes reports whether answer is y or yes in any case.
func IsYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
