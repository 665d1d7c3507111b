package informal

import (
	"bufio"
	"errors"
	"io"
)

// LineSource supplies one line of user input per call.
//
// ReadLine writes prompt to its output when prompt is non-empty, flushes it,
// and then blocks until a full line (including the trailing separator) has
// been read.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// LineSourceFunc adapts an ordinary function to the LineSource interface.
type LineSourceFunc func(prompt string) (string, error)

// ReadLine calls f(prompt).
func (f LineSourceFunc) ReadLine(prompt string) (string, error) {
	return f(prompt)
}

type flusher interface {
	Flush() error
}

// ReaderSource reads lines from an io.Reader and writes prompts to an
// io.Writer.
type ReaderSource struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderSource creates a line source over r and w. A nil w disables prompt
// output.
func NewReaderSource(r io.Reader, w io.Writer) *ReaderSource {
	return &ReaderSource{
		in:  bufio.NewReader(r),
		out: w,
	}
}

// ReadLine implements LineSource. A final line without a separator is
// returned as is; end of input with nothing left to read is an error.
func (s *ReaderSource) ReadLine(prompt string) (string, error) {
	if prompt != "" && s.out != nil {
		if _, err := io.WriteString(s.out, prompt); err != nil {
			return "", writeError(err)
		}
		if f, ok := s.out.(flusher); ok {
			if err := f.Flush(); err != nil {
				return "", writeError(err)
			}
		}
	}

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", readError(err)
	}
	return line, nil
}

// ScriptSource is a deterministic LineSource that replays a fixed list of
// lines and records every prompt it was asked to show. Once the script is
// exhausted ReadLine fails with io.EOF.
type ScriptSource struct {
	lines   []string
	prompts []string
}

// Script returns a ScriptSource replaying lines in order.
func Script(lines ...string) *ScriptSource {
	return &ScriptSource{lines: lines}
}

// ReadLine implements LineSource.
func (s *ScriptSource) ReadLine(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line + "\n", nil
}

// Prompts returns the prompts shown so far, one per ReadLine call.
func (s *ScriptSource) Prompts() []string {
	return append([]string(nil), s.prompts...)
}

// Remaining returns the number of lines not yet read.
func (s *ScriptSource) Remaining() int {
	return len(s.lines)
}
