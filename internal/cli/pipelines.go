package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func newPipelinesCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipelines",
		Short: "Trigger and inspect CI pipelines",
	}
	cmd.AddCommand(newPipelinesTriggerCmd(conn))
	cmd.AddCommand(newPipelinesStatusCmd(conn))
	cmd.AddCommand(newPipelinesListCmd(conn))
	return cmd
}

func newPipelinesTriggerCmd(conn *connectionFlags) *cobra.Command {
	var variables []string

	cmd := &cobra.Command{
		Use:   "trigger <project> <ref>",
		Short: "Trigger a pipeline on a branch or tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			project, err := gitlabmanager.ParseProject(args[0])
			if err != nil {
				return err
			}
			vars, err := parseVariables(variables)
			if err != nil {
				return err
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			p, err := client.Pipelines.Trigger(ctx, project, args[1], vars)
			if err != nil {
				return err
			}

			printSuccess("triggered pipeline %d on %s", p.ID, p.Ref)
			printDetail("status %s", p.Status)
			if p.WebURL != "" {
				printFile(p.WebURL)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&variables, "variable", nil, "pipeline variable as KEY=VALUE (repeatable)")
	return cmd
}

func newPipelinesStatusCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <pipeline-id>",
		Short: "Show the status of a pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			project, err := gitlabmanager.ParseProject(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid pipeline id %q", args[1])
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			p, err := client.Pipelines.Status(ctx, project, id)
			if err != nil {
				return err
			}

			printKeyValue("Pipeline", strconv.Itoa(p.ID))
			printKeyValue("Status", pipelineStatus(p.Status))
			printKeyValue("Ref", p.Ref)
			printKeyValue("SHA", p.SHA)
			if p.WebURL != "" {
				printKeyValue("URL", StyleLink.Render(p.WebURL))
			}
			return nil
		},
	}
}

func newPipelinesListCmd(conn *connectionFlags) *cobra.Command {
	var (
		ref    string
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List recent pipelines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			project, err := gitlabmanager.ParseProject(args[0])
			if err != nil {
				return err
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			pipelines, err := client.Pipelines.List(ctx, project, gitlabmanager.ListPipelinesOptions{
				Ref:    ref,
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			if len(pipelines) == 0 {
				printInfo("no pipelines in %s", project)
				return nil
			}

			for _, p := range pipelines {
				printKeyValue(fmt.Sprintf("#%d", p.ID),
					fmt.Sprintf("%s %s", pipelineStatus(p.Status), p.Ref))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "filter by branch or tag")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (success, failed, running, ...)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of pipelines")
	return cmd
}

// parseVariables parses repeated KEY=VALUE flag values, preserving values
// verbatim: empty values, spaces, and embedded equals signs are all legal.
func parseVariables(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid variable %q: want KEY=VALUE", v)
		}
		vars[key] = value
	}
	return vars, nil
}
