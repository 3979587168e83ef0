package cli

import (
	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/internal/server"
)

func newServeCmd(conn *connectionFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long:  `Starts an HTTP server exposing packages, releases, pipelines, branches, tags, and project discovery under /api/v1. The server forwards every request to the configured GitLab instance with the configured credential.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			logger.Info("starting server", "addr", addr, "gitlab", client.BaseURL())
			return server.New(client, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
