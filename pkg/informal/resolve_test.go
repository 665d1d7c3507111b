package informal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestResolver(src LineSource) (*Resolver, *bytes.Buffer) {
	var out bytes.Buffer
	return NewResolver(src, WithOutput(&out)), &out
}

func TestResolve_EnterAgeScenario(t *testing.T) {
	src := Script("abc", "200", "45")
	r, out := newTestResolver(src)

	age, err := NewPrompt[int]("Enter age: ").
		Matches(func(x int) bool { return x < 120 }).
		ValidatorErrorMessage("Error: too old").
		TryGetFrom(r)
	if err != nil {
		t.Fatalf("TryGetFrom() failed: %v", err)
	}
	if age != 45 {
		t.Errorf("age = %d, expected 45", age)
	}

	expected := DefaultTypeErrorMessage + "\nError: too old\n"
	if out.String() != expected {
		t.Errorf("output = %q, expected %q", out.String(), expected)
	}
	if src.Remaining() != 0 {
		t.Errorf("expected all lines to be consumed, %d left", src.Remaining())
	}
}

func TestResolve_DefaultOnEmptyLine(t *testing.T) {
	r, out := newTestResolver(Script(""))

	value, err := New[int]().
		Default(0).
		ParseWith(func(string) (int, error) {
			t.Fatal("parser must not run for the default")
			return 0, nil
		}).
		Matches(func(int) bool {
			t.Fatal("predicate must not run for the default")
			return false
		}).
		TryGetFrom(r)
	if err != nil {
		t.Fatalf("TryGetFrom() failed: %v", err)
	}
	if value != 0 {
		t.Errorf("value = %d, expected 0", value)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    Input[int]
		lines    []string
		expected int
		output   string
	}{
		{
			name:     "plain value",
			input:    New[int](),
			lines:    []string{"7"},
			expected: 7,
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    New[int](),
			lines:    []string{"  \t42 \r"},
			expected: 42,
		},
		{
			name:     "empty lines without default are skipped silently",
			input:    New[int](),
			lines:    []string{"", "   ", "\t", "3"},
			expected: 3,
		},
		{
			name:     "whitespace-only line returns the default",
			input:    New[int]().Default(9),
			lines:    []string{" ", "3"},
			expected: 9,
		},
		{
			name:     "custom type error message",
			input:    New[int]().TypeErrorMessage("numbers only"),
			lines:    []string{"x", "y", "1"},
			expected: 1,
			output:   "numbers only\nnumbers only\n",
		},
		{
			name:     "rejection without message is silent",
			input:    New[int]().Matches(func(x int) bool { return x%2 == 0 }),
			lines:    []string{"1", "3", "4"},
			expected: 4,
		},
		{
			name: "rejection with message",
			input: New[int]().
				Matches(func(x int) bool { return x%2 == 0 }).
				ValidatorErrorMessage("even please"),
			lines:    []string{"1", "4"},
			expected: 4,
			output:   "even please\n",
		},
		{
			name:     "default is returned even if the predicate would reject it",
			input:    New[int]().Default(-1).Matches(func(x int) bool { return x > 0 }),
			lines:    []string{""},
			expected: -1,
		},
		{
			name:     "custom parser",
			input:    New[int]().ParseWith(func(s string) (int, error) { return len(s), nil }),
			lines:    []string{"hello"},
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestResolver(Script(tt.lines...))

			result, err := tt.input.TryGetFrom(r)
			if err != nil {
				t.Fatalf("TryGetFrom() failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("result = %d, expected %d", result, tt.expected)
			}
			if out.String() != tt.output {
				t.Errorf("output = %q, expected %q", out.String(), tt.output)
			}
		})
	}
}

func TestResolve_PromptRenderedOncePerAttempt(t *testing.T) {
	src := Script("", "nope", "12")
	r, _ := newTestResolver(src)

	_, err := NewPrompt[int]("Port").Prefix("> ").Suffix(": ").TryGetFrom(r)
	if err != nil {
		t.Fatalf("TryGetFrom() failed: %v", err)
	}

	prompts := src.Prompts()
	if len(prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(prompts))
	}
	for i, p := range prompts {
		if p != "> Port: " {
			t.Errorf("prompt %d = %q, expected %q", i, p, "> Port: ")
		}
	}
}

func TestInput_Rendered(t *testing.T) {
	tests := []struct {
		name     string
		input    Input[string]
		expected string
	}{
		{"nothing", New[string](), ""},
		{"prompt only", NewPrompt[string]("Name: "), "Name: "},
		{"prefix and suffix without prompt", New[string]().Prefix("[").Suffix("]"), "[]"},
		{"all parts", NewPrompt[string]("Go").Prefix("-> ").Suffix("?"), "-> Go?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Rendered(); got != tt.expected {
				t.Errorf("Rendered() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestInput_SettersDoNotAlias(t *testing.T) {
	base := NewPrompt[int]("Count: ")
	withDefault := base.Default(3)
	renamed := base.Prompt("Total: ")

	if _, ok := base.DefaultValue(); ok {
		t.Error("setting a default on a copy changed the original")
	}
	if v, ok := withDefault.DefaultValue(); !ok || v != 3 {
		t.Errorf("DefaultValue() = %d, %v, expected 3, true", v, ok)
	}
	if base.Rendered() != "Count: " {
		t.Errorf("base prompt changed to %q", base.Rendered())
	}
	if renamed.Rendered() != "Total: " {
		t.Errorf("renamed prompt = %q", renamed.Rendered())
	}
}

func TestResolve_ReadErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	src := LineSourceFunc(func(string) (string, error) {
		calls++
		if calls == 3 {
			return "", boom
		}
		return "bad\n", nil
	})
	r, _ := newTestResolver(src)

	_, err := New[int]().TryGetFrom(r)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Op != "read" {
		t.Errorf("expected read InputError, got %#v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 reads, got %d", calls)
	}
}

func TestResolve_ExhaustedScriptIsFatal(t *testing.T) {
	r, _ := newTestResolver(Script("", ""))

	_, err := New[string]().TryGetFrom(r)
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestResolve_MessageWriteErrorIsFatal(t *testing.T) {
	r := NewResolver(Script("x", "1"), WithOutput(failingWriter{}))

	_, err := New[int]().TryGetFrom(r)

	var inputErr *InputError
	if !errors.As(err, &inputErr) || inputErr.Op != "write" {
		t.Errorf("expected write InputError, got %v", err)
	}
}

func TestResolve_UnsupportedType(t *testing.T) {
	type point struct{ X, Y int }
	src := Script("1,2")
	r, _ := newTestResolver(src)

	_, err := New[point]().TryGetFrom(r)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if src.Remaining() != 1 {
		t.Error("expected no line to be read for an unsupported type")
	}
}

func TestResolve_MessageStyle(t *testing.T) {
	var out bytes.Buffer
	r := NewResolver(Script("x", "1"),
		WithOutput(&out),
		WithMessageStyle(strings.ToUpper))

	if _, err := New[int]().TryGetFrom(r); err != nil {
		t.Fatalf("TryGetFrom() failed: %v", err)
	}
	if out.String() != strings.ToUpper(DefaultTypeErrorMessage)+"\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestResolve_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewResolver(Script("", "x", "-1", "5"),
		WithOutput(io.Discard),
		WithLogger(zap.New(core)))

	_, err := NewPrompt[int]("n: ").
		Matches(func(x int) bool { return x >= 0 }).
		TryGetFrom(r)
	if err != nil {
		t.Fatalf("TryGetFrom() failed: %v", err)
	}

	for _, msg := range []string{LogMsgEmptyLine, LogMsgParseFailed, LogMsgRejected, LogMsgAccepted} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Errorf("expected one %q entry, got %d", msg, logs.FilterMessage(msg).Len())
		}
	}
	if logs.FilterMessage(LogMsgAttempt).Len() != 4 {
		t.Errorf("expected 4 attempts logged, got %d", logs.FilterMessage(LogMsgAttempt).Len())
	}
}

func TestTryMap(t *testing.T) {
	r, _ := newTestResolver(Script("1m30s"))

	seconds, err := TryMap(New[time.Duration](), r, func(d time.Duration) float64 {
		return d.Seconds()
	})
	if err != nil {
		t.Fatalf("TryMap() failed: %v", err)
	}
	if seconds != 90 {
		t.Errorf("seconds = %v, expected 90", seconds)
	}
}

func TestTryMap_ErrorSkipsTransform(t *testing.T) {
	r, _ := newTestResolver(Script())

	_, err := TryMap(New[int](), r, func(int) string {
		t.Fatal("transform must not run on failure")
		return ""
	})
	if !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got %v", err)
	}
}
