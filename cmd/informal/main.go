package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"informal-cli/internal/app"
	"informal-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "informal",
	Short: "Ask typed questions from shell scripts",
	Long: heredoc.Doc(`
		informal asks questions on the terminal and prints the answers.

		Every answer is read as a line, parsed as the requested type and checked
		against the given constraints. Invalid answers are asked again until a
		valid one is given; an empty line selects the default when there is one.

		Prompts and error messages are written to stderr, so answers can be
		captured with $(informal ask ...).
	`),
}

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Ask a single typed question",
	Long: heredoc.Doc(`
		Ask a single question and write the answer to the output target.

		Types: string, int, uint, float, bool, duration, confirm, decimal, uuid,
		semver. --min and --max bound numbers, durations, decimals and versions,
		and the length of strings.
	`),
	Example: heredoc.Doc(`
		$ port=$(informal ask "Port: " --type uint --default 8080 --min 1 --max 65535)
		$ env=$(informal ask "Environment: " --one-of dev,prod --validator-error "Error: dev or prod")
		$ token=$(informal ask "Token: " --secret)
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildAskRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Ask(request)
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm [prompt]",
	Short: "Ask a yes/no question",
	Long: heredoc.Doc(`
		Ask a yes/no question. y, yes, n and no are accepted in any case and an
		empty answer means no, or yes with --default-yes.

		With --exit-code nothing is printed and the command exits with status 1
		when the answer is no.
	`),
	Example: heredoc.Doc(`
		$ informal confirm "Deploy to production?" --exit-code && ./deploy.sh
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildConfirmRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Confirm(request)
	},
}

var formCmd = &cobra.Command{
	Use:   "form <file|name>",
	Short: "Ask the questions of a YAML form",
	Long: heredoc.Doc(`
		Ask every question of a YAML form and write the answers as yaml, json
		or env. A name without a path is looked up in forms_location.

		Prompts are templates that can refer to earlier answers, for example
		"Port for {{ .name | upper }}: ".
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildFormRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.RunForm(request)
	},
}

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List available forms",
	Long:  "List the forms found in the configured forms location.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		common, err := buildCommonFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.ListForms(common, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "informal version %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built: %s\n", date)
		fmt.Fprintf(out, "  go version: %s\n", goVersion)
		fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/informal/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every input attempt to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored prompts and messages")

	for _, cmd := range []*cobra.Command{askCmd, confirmCmd, formCmd} {
		cmd.Flags().StringP("target", "t", "", "output target (stdout, clipboard, file:/path)")
		cmd.Flags().StringP("backend", "b", "", "input backend (line, survey, tui)")
	}

	askCmd.Flags().String("type", "string", "answer type")
	askCmd.Flags().StringP("default", "d", "", "answer used for an empty line")
	askCmd.Flags().String("prefix", "", "text shown before the prompt")
	askCmd.Flags().String("suffix", "", "text shown after the prompt")
	askCmd.Flags().String("min", "", "smallest accepted value (or length for strings)")
	askCmd.Flags().String("max", "", "largest accepted value (or length for strings)")
	askCmd.Flags().String("pattern", "", "regular expression a string answer must match")
	askCmd.Flags().StringSlice("one-of", []string{}, "accepted string answers")
	askCmd.Flags().String("type-error", "", "message printed when the answer cannot be parsed")
	askCmd.Flags().String("validator-error", "", "message printed when the answer is rejected")
	askCmd.Flags().BoolP("secret", "s", false, "do not echo the answer")

	confirmCmd.Flags().StringP("message", "m", "", "message printed after an invalid answer")
	confirmCmd.Flags().Bool("default-yes", false, "treat an empty answer as yes")
	confirmCmd.Flags().BoolP("exit-code", "e", false, "print nothing and exit 1 on no")

	formCmd.Flags().StringP("format", "f", "", "answer format (yaml, json, env)")
}

// buildCommonFromFlags reads the flags shared by every command
func buildCommonFromFlags(cmd *cobra.Command) (models.Common, error) {
	var (
		common models.Common
		err    error
	)

	if common.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return common, fmt.Errorf("invalid config flag: %w", err)
	}
	if common.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return common, fmt.Errorf("invalid verbose flag: %w", err)
	}
	if common.NoColor, err = cmd.Flags().GetBool("no-color"); err != nil {
		return common, fmt.Errorf("invalid no-color flag: %w", err)
	}

	// Not every command takes these
	if cmd.Flags().Lookup("target") != nil {
		if common.Target, err = cmd.Flags().GetString("target"); err != nil {
			return common, fmt.Errorf("invalid target flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("backend") != nil {
		if common.Backend, err = cmd.Flags().GetString("backend"); err != nil {
			return common, fmt.Errorf("invalid backend flag: %w", err)
		}
	}

	return common, nil
}

// buildAskRequestFromFlags constructs an AskRequest from command flags and arguments
func buildAskRequestFromFlags(cmd *cobra.Command, args []string) (*models.AskRequest, error) {
	common, err := buildCommonFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	request := &models.AskRequest{Common: common}
	if len(args) > 0 {
		request.Prompt = args[0]
	}

	stringFlags := []struct {
		flag string
		dst  *string
	}{
		{"type", &request.Type},
		{"default", &request.Default},
		{"prefix", &request.Prefix},
		{"suffix", &request.Suffix},
		{"min", &request.Min},
		{"max", &request.Max},
		{"pattern", &request.Pattern},
		{"type-error", &request.TypeError},
		{"validator-error", &request.ValidatorError},
	}
	for _, s := range stringFlags {
		if *s.dst, err = cmd.Flags().GetString(s.flag); err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", s.flag, err)
		}
	}

	// An explicit empty default is still a default
	request.HasDefault = cmd.Flags().Changed("default")

	if request.OneOf, err = cmd.Flags().GetStringSlice("one-of"); err != nil {
		return nil, fmt.Errorf("invalid one-of flag: %w", err)
	}
	if request.Secret, err = cmd.Flags().GetBool("secret"); err != nil {
		return nil, fmt.Errorf("invalid secret flag: %w", err)
	}

	return request, nil
}

// buildConfirmRequestFromFlags constructs a ConfirmRequest from command flags and arguments
func buildConfirmRequestFromFlags(cmd *cobra.Command, args []string) (*models.ConfirmRequest, error) {
	common, err := buildCommonFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	request := &models.ConfirmRequest{Common: common}
	if len(args) > 0 {
		request.Prompt = args[0]
	}

	if request.Message, err = cmd.Flags().GetString("message"); err != nil {
		return nil, fmt.Errorf("invalid message flag: %w", err)
	}
	if request.DefaultYes, err = cmd.Flags().GetBool("default-yes"); err != nil {
		return nil, fmt.Errorf("invalid default-yes flag: %w", err)
	}
	if request.ExitCode, err = cmd.Flags().GetBool("exit-code"); err != nil {
		return nil, fmt.Errorf("invalid exit-code flag: %w", err)
	}

	return request, nil
}

// buildFormRequestFromFlags constructs a FormRequest from command flags and arguments
func buildFormRequestFromFlags(cmd *cobra.Command, args []string) (*models.FormRequest, error) {
	common, err := buildCommonFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	request := &models.FormRequest{Common: common}
	if len(args) > 0 {
		request.Path = strings.TrimSpace(args[0])
	}

	if request.Format, err = cmd.Flags().GetString("format"); err != nil {
		return nil, fmt.Errorf("invalid format flag: %w", err)
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, app.ErrDeclined) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
