package form

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blang/semver/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"informal-cli/pkg/informal"
)

// Question types understood by Compile
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeUint     = "uint"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeDuration = "duration"
	TypeConfirm  = "confirm"
	TypeDecimal  = "decimal"
	TypeUUID     = "uuid"
	TypeSemver   = "semver"
)

// boundedTypes accept min and max. For strings they bound the length.
var boundedTypes = map[string]bool{
	TypeString:   true,
	TypeInt:      true,
	TypeUint:     true,
	TypeFloat:    true,
	TypeDuration: true,
	TypeDecimal:  true,
	TypeSemver:   true,
}

type asker func(r *informal.Resolver, prompt string) (interface{}, error)

// Compiled is a question ready to be asked
type Compiled struct {
	Question
	ask asker
}

// Ask resolves the question with r, showing prompt as its text. Values of
// duration, decimal, uuid and semver questions are returned as strings.
func (c *Compiled) Ask(r *informal.Resolver, prompt string) (interface{}, error) {
	return c.ask(r, prompt)
}

// Compile turns a question into an informal input of the matching type.
// Defaults are parsed here, once; at resolution they are returned unchecked.
func Compile(q Question) (*Compiled, error) {
	kind := q.Type
	if kind == "" {
		kind = TypeString
	}

	if (q.Min != nil || q.Max != nil) && !boundedTypes[kind] {
		return nil, questionError(q, "min and max are not supported for %s questions", kind)
	}
	if (q.Pattern != "" || len(q.OneOf) > 0) && kind != TypeString {
		return nil, questionError(q, "pattern and one_of are only supported for string questions")
	}

	var (
		ask asker
		err error
	)
	switch kind {
	case TypeString:
		ask, err = compileString(q)
	case TypeInt:
		ask, err = compileOrdered(q, informal.ParseText[int64], cast.ToInt64E)
	case TypeUint:
		ask, err = compileOrdered(q, informal.ParseText[uint64], cast.ToUint64E)
	case TypeFloat:
		ask, err = compileOrdered(q, informal.ParseText[float64], cast.ToFloat64E)
	case TypeDuration:
		ask, err = compileOrdered(q, informal.ParseText[time.Duration], cast.ToDurationE)
	case TypeBool:
		ask, err = compile(q, informal.ParseText[bool], nil)
	case TypeConfirm:
		ask, err = compileConfirm(q)
	case TypeDecimal:
		ask, err = compileDecimal(q)
	case TypeUUID:
		ask, err = compile(q, informal.ParseText[uuid.UUID], nil)
	case TypeSemver:
		ask, err = compileSemver(q)
	default:
		return nil, questionError(q, "unknown type %q", q.Type)
	}
	if err != nil {
		return nil, err
	}

	return &Compiled{Question: q, ask: ask}, nil
}

func compile[T any](q Question, parse func(string) (T, error), accept func(T) bool) (asker, error) {
	in := informal.New[T]().ParseWith(parse)
	if q.Prefix != "" {
		in = in.Prefix(q.Prefix)
	}
	if q.Suffix != "" {
		in = in.Suffix(q.Suffix)
	}
	if q.TypeError != "" {
		in = in.TypeErrorMessage(q.TypeError)
	}
	if q.ValidatorError != "" {
		in = in.ValidatorErrorMessage(q.ValidatorError)
	}
	if accept != nil {
		in = in.Matches(accept)
	}

	if q.Default != nil {
		text, err := cast.ToStringE(q.Default)
		if err != nil {
			return nil, questionError(q, "invalid default: %v", err)
		}
		def, err := parse(strings.TrimSpace(text))
		if err != nil {
			return nil, questionError(q, "invalid default %q: %v", text, err)
		}
		in = in.Default(def)
	}

	return func(r *informal.Resolver, prompt string) (interface{}, error) {
		value, err := in.Prompt(prompt).TryGetFrom(r)
		if err != nil {
			return nil, err
		}
		return normalize(value), nil
	}, nil
}

func compileOrdered[T cmp.Ordered](q Question, parse func(string) (T, error), coerce func(interface{}) (T, error)) (asker, error) {
	accept, err := between(q, bound(parse, coerce), cmp.Compare[T])
	if err != nil {
		return nil, err
	}
	return compile(q, parse, accept)
}

func compileString(q Question) (asker, error) {
	var checks []func(string) bool

	if q.Pattern != "" {
		re, err := regexp.Compile(q.Pattern)
		if err != nil {
			return nil, questionError(q, "invalid pattern: %v", err)
		}
		checks = append(checks, re.MatchString)
	}

	if len(q.OneOf) > 0 {
		choices := make(map[string]bool, len(q.OneOf))
		for _, choice := range q.OneOf {
			choices[choice] = true
		}
		checks = append(checks, func(s string) bool { return choices[s] })
	}

	length, err := between(q, bound(informal.ParseText[int], cast.ToIntE), cmp.Compare[int])
	if err != nil {
		return nil, err
	}
	if length != nil {
		checks = append(checks, func(s string) bool { return length(utf8.RuneCountInString(s)) })
	}

	return compile(q, informal.ParseText[string], all(checks))
}

func compileDecimal(q Question) (asker, error) {
	conv := func(v interface{}) (decimal.Decimal, error) {
		text, err := cast.ToStringE(v)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromString(text)
	}

	accept, err := between(q, conv, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	if err != nil {
		return nil, err
	}
	return compile(q, informal.ParseText[decimal.Decimal], accept)
}

func compileSemver(q Question) (asker, error) {
	conv := func(v interface{}) (semver.Version, error) {
		text, err := cast.ToStringE(v)
		if err != nil {
			return semver.Version{}, err
		}
		return semver.ParseTolerant(text)
	}

	accept, err := between(q, conv, func(a, b semver.Version) int { return a.Compare(b) })
	if err != nil {
		return nil, err
	}
	return compile(q, semver.ParseTolerant, accept)
}

func compileConfirm(q Question) (asker, error) {
	in := informal.ConfirmInput("")
	if q.Prefix != "" {
		in = in.Prefix(q.Prefix)
	}
	if q.ValidatorError != "" {
		in = in.ValidatorErrorMessage(q.ValidatorError)
	}

	if q.Default != nil {
		yes, err := toYes(q.Default)
		if err != nil {
			return nil, questionError(q, "invalid default: %v", err)
		}
		if yes {
			in = in.Default("y").Suffix(" [Y/n] ")
		}
	}
	if q.Suffix != "" {
		in = in.Suffix(q.Suffix)
	}

	return func(r *informal.Resolver, prompt string) (interface{}, error) {
		yes, err := informal.TryMap(in.Prompt(prompt), r, informal.IsYes)
		if err != nil {
			return nil, err
		}
		return yes, nil
	}, nil
}

// between builds a predicate from the question's min and max. It returns a
// nil predicate when neither is set.
// bound converts a min or max value. Strings are read with the answer's own
// parser so that "010" means ten; YAML numbers are coerced with cast.
func bound[T any](parse func(string) (T, error), coerce func(interface{}) (T, error)) func(interface{}) (T, error) {
	return func(v interface{}) (T, error) {
		if s, ok := v.(string); ok {
			return parse(strings.TrimSpace(s))
		}
		return coerce(v)
	}
}

func between[T any](q Question, conv func(interface{}) (T, error), compare func(a, b T) int) (func(T) bool, error) {
	var lo, hi *T

	if q.Min != nil {
		v, err := conv(q.Min)
		if err != nil {
			return nil, questionError(q, "invalid min %v: %v", q.Min, err)
		}
		lo = &v
	}
	if q.Max != nil {
		v, err := conv(q.Max)
		if err != nil {
			return nil, questionError(q, "invalid max %v: %v", q.Max, err)
		}
		hi = &v
	}

	if lo == nil && hi == nil {
		return nil, nil
	}
	if lo != nil && hi != nil && compare(*lo, *hi) > 0 {
		return nil, questionError(q, "min %v is greater than max %v", q.Min, q.Max)
	}

	return func(v T) bool {
		if lo != nil && compare(v, *lo) < 0 {
			return false
		}
		if hi != nil && compare(v, *hi) > 0 {
			return false
		}
		return true
	}, nil
}

func all[T any](checks []func(T) bool) func(T) bool {
	if len(checks) == 0 {
		return nil
	}
	return func(v T) bool {
		for _, check := range checks {
			if !check(v) {
				return false
			}
		}
		return true
	}
}

func toYes(v interface{}) (bool, error) {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
	return cast.ToBoolE(v)
}

// normalize converts values without a natural YAML or JSON form to strings
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case time.Duration, decimal.Decimal, uuid.UUID, semver.Version:
		return fmt.Sprint(v)
	}
	return v
}

func questionError(q Question, format string, args ...interface{}) error {
	return fmt.Errorf("%w: question %q: %s", ErrFormInvalid, q.Name, fmt.Sprintf(format, args...))
}
