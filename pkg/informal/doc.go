// Package informal reads typed values from an interactive user.
//
// # Usage
//
// The target type drives parsing:
//
//	name := informal.NewPrompt[string]("Please enter your name: ").Get()
//	age := informal.NewPrompt[uint32]("Please enter your age: ").Get()
//
// Answers can be validated, and the messages shown for bad input customized:
//
//	age := informal.NewPrompt[uint32]("Please enter your age: ").
//	    Matches(func(x uint32) bool { return x < 120 }).
//	    TypeErrorMessage("Error: What kind of age is that?!").
//	    ValidatorErrorMessage("Error: You can't be that old.... can you?").
//	    Get()
//
// An empty answer returns the default, when one is set:
//
//	years := informal.NewPrompt[int]("Years of Go: ").Default(0).Get()
//
// Yes/no questions:
//
//	if informal.Confirm("Are you sure you want to continue?") {
//	    // continue
//	}
//
// # Errors
//
// Get, Map and Confirm panic when standard input fails or is closed. Library
// code should use TryGet, TryGetFrom, TryMap and TryConfirm, which return an
// error wrapping ErrInput instead.
//
// # Testing
//
// Script provides a deterministic LineSource:
//
//	src := informal.Script("abc", "200", "45")
//	r := informal.NewResolver(src, informal.WithOutput(&buf))
//	age, err := informal.NewPrompt[int]("Enter age: ").TryGetFrom(r)
package informal
