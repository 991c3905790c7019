package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/generate"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/registry"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/resolve"
	"github.com/star-xai-protocol/capsbench-leaderboard/internal/scenario"
)

// ErrCodeGeneric is used for errors outside the scenario taxonomy.
const ErrCodeGeneric = "E000"

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Compose     string
	ScenarioOut string
	EnvTemplate string
	RegistryURL string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}
	defaults := scenario.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "generate <scenario.toml>",
		Short: "Generate orchestration artifacts from a scenario",
		Long: `Generate the docker-compose manifest, the transcoded a2a scenario,
and (when env values reference ${NAME} placeholders) the secrets
template. Agents with an agentbeats_id are resolved against the
agentbeats registry; nothing is written unless every step succeeds.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Compose, "compose", defaults.ComposePath, "compose manifest output path")
	cmd.Flags().StringVar(&opts.ScenarioOut, "scenario-out", defaults.ScenarioOutPath, "transcoded scenario output path")
	cmd.Flags().StringVar(&opts.EnvTemplate, "env-template", defaults.EnvTemplatePath, "secrets template output path")
	cmd.Flags().StringVar(&opts.RegistryURL, "registry-url", defaults.RegistryURL, "agentbeats registry base URL")

	return cmd
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg := scenario.DefaultSettings()
	cfg.ComposePath = opts.Compose
	cfg.ScenarioOutPath = opts.ScenarioOut
	cfg.EnvTemplatePath = opts.EnvTemplate
	cfg.RegistryURL = opts.RegistryURL

	// Status lines belong to text output only; JSON output carries the
	// same information structurally.
	status := io.Writer(cmd.OutOrStdout())
	if opts.Format == "json" {
		status = io.Discard
	}

	lookup := registry.NewClient(cfg.RegistryURL)
	restricted := resolve.RestrictedFromEnv()
	formatter.VerboseLog("Loading scenario from %s (restricted=%v)", path, restricted)

	result, err := generate.Run(cmd.Context(), path, cfg, lookup, restricted, status)
	if err != nil {
		code, message, details, exit := classifyError(err)
		_ = formatter.Error(code, message, details)
		return NewExitError(exit, fmt.Sprintf("%s: %s", code, message))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	for _, file := range result.Files {
		fmt.Fprintf(formatter.Writer, "Wrote %s\n", file)
	}
	if len(result.SecretNames) > 0 {
		fmt.Fprintf(formatter.Writer, "Fill in %d secret(s) in %s before running\n",
			len(result.SecretNames), cfg.EnvTemplatePath)
	}
	return nil
}

// classifyError maps a pipeline error to an output code, message,
// optional details payload, and process exit code.
func classifyError(err error) (code, message string, details any, exit int) {
	var parseErr *scenario.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Code, fmt.Sprintf("%s: %s", parseErr.Path, parseErr.Message), parseErr.Details, ExitFailure
	}

	var configErr *scenario.ConfigError
	if errors.As(err, &configErr) {
		message := configErr.Message
		if configErr.Subject != "" {
			message = configErr.Subject + " " + configErr.Message
		}
		var details any
		if len(configErr.Names) > 0 {
			details = configErr.Names
		}
		return configErr.Code, message, details, ExitFailure
	}

	var resolutionErr *registry.ResolutionError
	if errors.As(err, &resolutionErr) {
		message := fmt.Sprintf("failed to fetch agent %s: %s", resolutionErr.AgentbeatsID, resolutionErr.Message)
		if resolutionErr.Err != nil {
			message += ": " + resolutionErr.Err.Error()
		}
		return resolutionErr.Code, message, nil, ExitFailure
	}

	return ErrCodeGeneric, err.Error(), nil, ExitCommandError
}
