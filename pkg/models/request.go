package models

// Common holds the options shared by every command
type Common struct {
	ConfigPath string
	Backend    string
	Target     string
	Verbose    bool
	NoColor    bool
}

// AskRequest describes a single typed question asked from the command line
type AskRequest struct {
	Common
	Prompt         string
	Type           string
	Default        string
	HasDefault     bool
	Prefix         string
	Suffix         string
	Min            string
	Max            string
	Pattern        string
	OneOf          []string
	TypeError      string
	ValidatorError string
	Secret         bool
}

// ConfirmRequest describes a yes/no question
type ConfirmRequest struct {
	Common
	Prompt     string
	Message    string
	DefaultYes bool
	ExitCode   bool
}

// FormRequest describes a form run
type FormRequest struct {
	Common
	Path   string
	Format string
}
