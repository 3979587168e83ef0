// Package cli implements the gitlab-manager command-line interface.
//
// Commands are grouped by resource: packages, releases, pipelines, repo,
// projects, plus serve for the REST mode and cache for local cache
// maintenance. Connection settings come from flags, the environment
// (GITLAB_URL, GITLAB_TOKEN, GITLAB_OAUTH_TOKEN, CI_JOB_TOKEN), or a TOML
// config file, in that order of precedence.
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/buildinfo"
)

// appName is used for config and cache directories and display.
const appName = "gitlab-manager"

// Execute runs the gitlab-manager CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		conn    connectionFlags
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Manage GitLab packages, releases, and pipelines",
		Long:         `gitlab-manager wraps the GitLab API with high-level commands for package registries, releases, CI pipelines, and repository branches and tags.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	conn.register(root)

	root.AddCommand(newPackagesCmd(&conn))
	root.AddCommand(newReleasesCmd(&conn))
	root.AddCommand(newPipelinesCmd(&conn))
	root.AddCommand(newRepoCmd(&conn))
	root.AddCommand(newProjectsCmd(&conn))
	root.AddCommand(newServeCmd(&conn))
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
