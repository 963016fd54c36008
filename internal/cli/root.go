package cli

import (
	"context"

	"hireup/internal/common"
	"hireup/internal/config"
	"hireup/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "hireup",
	Short: "Resume screening and job-seeker dashboard",
	Long: `Hireup scores resumes against an applicant tracking system checklist,
matches them to job descriptions and rates public GitHub activity. It runs
as a CLI or as an HTTP API with accounts, scan history and saved jobs.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfigOverride,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// loadConfigOverride replaces the startup configuration when --config
// names an explicit file.
func loadConfigOverride(cmd *cobra.Command, _ []string) error {
	if configFile == "" {
		return nil
	}
	logger := getLoggerFromContext(cmd.Context())

	cfg, err := config.LoadConfigFile(configFile)
	if err != nil {
		return err
	}
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
	return nil
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// registerFormatFlags adds -o/--output and --format with completion.
func registerFormatFlags(cmd *cobra.Command, target *common.CommandConfig) {
	cmd.Flags().StringVarP(&target.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&target.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var supported []string
		if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
			supported = cfg.App.SupportedFormats
		}
		return common.GetSupportedFormats(supported), cobra.ShellCompDirectiveNoFileComp
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./config.yaml, $HOME/.hireup, /etc/hireup)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
