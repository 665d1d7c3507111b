package form

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"informal-cli/pkg/informal"
)

func askScripted(t *testing.T, q Question, lines ...string) (interface{}, string, []string) {
	t.Helper()

	compiled, err := Compile(q)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	source := informal.Script(lines...)
	var out bytes.Buffer
	r := informal.NewResolver(source, informal.WithOutput(&out))

	value, err := compiled.Ask(r, q.Prompt)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	return value, out.String(), source.Prompts()
}

func TestCompiledAsk(t *testing.T) {
	tests := []struct {
		name       string
		question   Question
		lines      []string
		want       interface{}
		wantOutput string
	}{
		{
			name:       "string pattern",
			question:   Question{Name: "svc", Pattern: "^[a-z-]+$", ValidatorError: "Error: lowercase only"},
			lines:      []string{"Bad Name", "svc-one"},
			want:       "svc-one",
			wantOutput: "Error: lowercase only\n",
		},
		{
			name:     "string one_of rejects silently",
			question: Question{Name: "env", Type: TypeString, OneOf: []string{"dev", "prod"}},
			lines:    []string{"stage", "prod"},
			want:     "prod",
		},
		{
			name:     "string length bounds",
			question: Question{Name: "code", Min: 3, Max: "4"},
			lines:    []string{"ab", "abcde", "abc"},
			want:     "abc",
		},
		{
			name:       "int within bounds",
			question:   Question{Name: "n", Type: TypeInt, Min: 1, Max: 10},
			lines:      []string{"0", "x", "5"},
			want:       int64(5),
			wantOutput: informal.DefaultTypeErrorMessage + "\n",
		},
		{
			name:     "int bound written with leading zero",
			question: Question{Name: "n", Type: TypeInt, Max: "010"},
			lines:    []string{"11", "9"},
			want:     int64(9),
		},
		{
			name:     "uint bound string is base ten",
			question: Question{Name: "n", Type: TypeUint, Min: "010", Max: "020"},
			lines:    []string{"9", "16"},
			want:     uint64(16),
		},
		{
			name:     "duration bound string",
			question: Question{Name: "t", Type: TypeDuration, Max: " 1m "},
			lines:    []string{"2m", "30s"},
			want:     "30s",
		},
		{
			name:     "uint default on empty line",
			question: Question{Name: "port", Type: TypeUint, Default: 8080, Min: 1, Max: 65535},
			lines:    []string{""},
			want:     uint64(8080),
		},
		{
			name:       "uint rejects negative",
			question:   Question{Name: "count", Type: TypeUint, TypeError: "Error: not a count"},
			lines:      []string{"-1", "3"},
			want:       uint64(3),
			wantOutput: "Error: not a count\n",
		},
		{
			name:     "float bounds from strings",
			question: Question{Name: "ratio", Type: TypeFloat, Min: "0.5", Max: 1.0},
			lines:    []string{"0.1", "0.75"},
			want:     0.75,
		},
		{
			name:     "duration default",
			question: Question{Name: "timeout", Type: TypeDuration, Default: "30s"},
			lines:    []string{"  "},
			want:     "30s",
		},
		{
			name:     "duration max",
			question: Question{Name: "timeout", Type: TypeDuration, Max: "1m"},
			lines:    []string{"2m", "45s"},
			want:     "45s",
		},
		{
			name:       "bool",
			question:   Question{Name: "debug", Type: TypeBool},
			lines:      []string{"maybe", "true"},
			want:       true,
			wantOutput: informal.DefaultTypeErrorMessage + "\n",
		},
		{
			name:     "confirm defaults to no",
			question: Question{Name: "ok", Type: TypeConfirm},
			lines:    []string{""},
			want:     false,
		},
		{
			name:     "confirm default yes",
			question: Question{Name: "ok", Type: TypeConfirm, Default: "yes"},
			lines:    []string{""},
			want:     true,
		},
		{
			name:     "confirm bool default",
			question: Question{Name: "ok", Type: TypeConfirm, Default: true},
			lines:    []string{"maybe", "N"},
			want:     false,
		},
		{
			name:     "decimal minimum",
			question: Question{Name: "price", Type: TypeDecimal, Min: "0.01"},
			lines:    []string{"0", "12.5"},
			want:     "12.5",
		},
		{
			name:       "uuid",
			question:   Question{Name: "id", Type: TypeUUID},
			lines:      []string{"nope", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
			want:       "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			wantOutput: informal.DefaultTypeErrorMessage + "\n",
		},
		{
			name:     "semver tolerant with minimum",
			question: Question{Name: "version", Type: TypeSemver, Min: "1.0.0"},
			lines:    []string{"0.9.0", "v1.2"},
			want:     "1.2.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, output, _ := askScripted(t, tt.question, tt.lines...)
			if got != tt.want {
				t.Errorf("Ask() = %#v, want %#v", got, tt.want)
			}
			if output != tt.wantOutput {
				t.Errorf("output = %q, want %q", output, tt.wantOutput)
			}
		})
	}
}

func TestCompiledAskPrompt(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		want     string
	}{
		{
			name:     "plain",
			question: Question{Name: "a", Prompt: "Name: "},
			want:     "Name: ",
		},
		{
			name:     "prefix and suffix",
			question: Question{Name: "a", Prompt: "Name", Prefix: "> ", Suffix: ": "},
			want:     "> Name: ",
		},
		{
			name:     "confirm",
			question: Question{Name: "a", Prompt: "Ship it?", Type: TypeConfirm},
			want:     "Ship it?" + informal.ConfirmSuffix,
		},
		{
			name:     "confirm default yes",
			question: Question{Name: "a", Prompt: "Ship it?", Type: TypeConfirm, Default: "y"},
			want:     "Ship it? [Y/n] ",
		},
		{
			name:     "confirm custom suffix",
			question: Question{Name: "a", Prompt: "Ship it", Type: TypeConfirm, Suffix: "? (y/n) "},
			want:     "Ship it? (y/n) ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, prompts := askScripted(t, tt.question, "y")
			if len(prompts) != 1 || prompts[0] != tt.want {
				t.Errorf("prompts = %q, want [%q]", prompts, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantMsg  string
	}{
		{
			name:     "unknown type",
			question: Question{Name: "a", Type: "color"},
			wantMsg:  `unknown type "color"`,
		},
		{
			name:     "pattern on int",
			question: Question{Name: "a", Type: TypeInt, Pattern: "^1$"},
			wantMsg:  "only supported for string",
		},
		{
			name:     "min on bool",
			question: Question{Name: "a", Type: TypeBool, Min: 1},
			wantMsg:  "not supported for bool",
		},
		{
			name:     "hex bound",
			question: Question{Name: "a", Type: TypeInt, Min: "0x10"},
			wantMsg:  "invalid min",
		},
		{
			name:     "min above max",
			question: Question{Name: "a", Type: TypeInt, Min: 10, Max: 1},
			wantMsg:  "greater than max",
		},
		{
			name:     "bad pattern",
			question: Question{Name: "a", Pattern: "("},
			wantMsg:  "invalid pattern",
		},
		{
			name:     "bad min",
			question: Question{Name: "a", Type: TypeDecimal, Min: "cheap"},
			wantMsg:  "invalid min",
		},
		{
			name:     "bad default",
			question: Question{Name: "a", Type: TypeUUID, Default: "nope"},
			wantMsg:  "invalid default",
		},
		{
			name:     "bad confirm default",
			question: Question{Name: "a", Type: TypeConfirm, Default: "sometimes"},
			wantMsg:  "invalid default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.question)
			if err == nil {
				t.Fatal("Compile() expected error, got nil")
			}
			if !errors.Is(err, ErrFormInvalid) {
				t.Errorf("Compile() error = %v, want ErrFormInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Compile() error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDefaultBypassesBounds(t *testing.T) {
	got, _, _ := askScripted(t, Question{Name: "n", Type: TypeInt, Default: 0, Min: 1}, "")
	if got != int64(0) {
		t.Errorf("Ask() = %#v, want int64(0)", got)
	}
}
