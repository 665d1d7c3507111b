package orchestrator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"informal-cli/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	stdout io.Writer
}

// NewOutputHandler creates an output handler writing to os.Stdout
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{stdout: os.Stdout}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	return clipboard.WriteAll(strings.TrimSuffix(content, "\n"))
}

// WriteToStdout writes content to standard output, ending it with a newline
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := io.WriteString(h.stdout, terminated(content))
	return err
}

// WriteToFile writes content to the specified file path
func (h *OutputHandler) WriteToFile(content string, path string) error {
	if err := os.WriteFile(path, []byte(terminated(content)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func terminated(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
