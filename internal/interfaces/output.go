package interfaces

// OutputHandler delivers answers to the configured target
type OutputHandler interface {
	// WriteToClipboard copies answer text to the system clipboard
	WriteToClipboard(content string) error

	// WriteToStdout writes answer text to standard output as complete lines
	WriteToStdout(content string) error

	// WriteToFile replaces the file at path with answer text
	WriteToFile(content string, path string) error
}
