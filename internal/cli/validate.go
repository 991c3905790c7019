package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/resolve"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Restricted bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <scenario.toml>",
		Short: "Check a scenario without resolving or writing anything",
		Long: `Validate a scenario offline: TOML well-formedness, schema
conformance, image-source exclusivity, and participant name uniqueness.
No registry lookups are performed and no files are written. All
violations are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Restricted, "restricted", resolve.RestrictedFromEnv(),
		"apply restricted-environment rules (agentbeats_id required)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := scenario.Load(path)
	if err != nil {
		return outputValidateErrors(formatter, []error{err})
	}

	formatter.VerboseLog("Loaded scenario with %d participant(s)", len(s.Participants))

	if errs := scenario.StaticCheck(s, opts.Restricted); len(errs) > 0 {
		return outputValidateErrors(formatter, errs)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"participants": len(s.Participants),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Scenario is valid (%d participant(s))\n", len(s.Participants))
	return nil
}

// outputValidateErrors reports every violation in one pass, mirroring
// the collect-all behavior of the static checks.
func outputValidateErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message, details, _ := classifyError(err)
			cliErrors[i] = CLIError{Code: code, Message: message, Details: details}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // include all errors in data
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		code, message, _, _ := classifyError(err)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", code, message)

		var parseErr *scenario.ParseError
		if errors.As(err, &parseErr) {
			for _, detail := range parseErr.Details {
				fmt.Fprintf(formatter.Writer, "    %s\n", detail)
			}
		}
	}
	fmt.Fprintln(formatter.Writer)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
