package cli

import (
	"context"
	"fmt"

	"hireup/internal/common"
	"hireup/internal/github"

	"github.com/spf13/cobra"
)

var githubCmd = &cobra.Command{
	Use:   "github <username>",
	Short: "Score a public GitHub profile",
	Long: `Fetch a user's public GitHub profile, repositories and recent events
and compute a 0-100 activity score from followers, stars, repository count,
language diversity, push activity and account age.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if githubConfig.OutputFormat == "" {
			githubConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(githubConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGitHub,
}

var (
	githubConfig    common.CommandConfig
	githubShowRepos bool
)

func init() {
	registerFormatFlags(githubCmd, &githubConfig)
	githubCmd.Flags().BoolVar(&githubShowRepos, "repos", false, "Include the repository list in the output")
}

func runGitHub(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	client := github.NewClient(cfg.GitHub, logger)

	lookup := func(ctx context.Context) (*github.ProfileScore, error) {
		logger.Info("Fetching GitHub profile", "username", args[0])
		result, err := client.FetchProfile(ctx, args[0])
		if err != nil {
			return nil, err
		}
		if !githubShowRepos {
			result.Repos = nil
		}
		return result, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, githubConfig, cfg.App.SupportedFormats,
		cmd.OutOrStdout(), "github", lookup); err != nil {
		return fmt.Errorf("failed to score GitHub profile: %w", err)
	}
	return nil
}
