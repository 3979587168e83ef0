package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func newProjectsCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Discover projects on the instance",
	}
	cmd.AddCommand(newProjectsListCmd(conn))
	cmd.AddCommand(newProjectsSearchCmd(conn))
	cmd.AddCommand(newProjectsInfoCmd(conn))
	cmd.AddCommand(newProjectsRecentCmd(conn))
	cmd.AddCommand(newProjectsWithPackagesCmd(conn))
	return cmd
}

func newProjectsRecentCmd(conn *connectionFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently active projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			projects, err := client.Projects.RecentActivity(ctx, limit)
			if err != nil {
				return err
			}
			printProjects(projects)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of projects to show")
	return cmd
}

func newProjectsWithPackagesCmd(conn *connectionFlags) *cobra.Command {
	var minPackages int

	cmd := &cobra.Command{
		Use:   "with-packages",
		Short: "List projects that publish packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			result, err := client.Projects.ListWithPackages(ctx, minPackages)
			if err != nil {
				return err
			}
			if len(result) == 0 {
				printInfo("no projects with packages found")
				return nil
			}
			for _, pp := range result {
				printKeyValue(strconv.Itoa(pp.Project.ID), pp.Project.PathWithNamespace)
				for _, pkg := range pp.Packages {
					printDetail("%s %s (%s)", pkg.Name, pkg.Version, pkg.PackageType)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minPackages, "min", 1, "minimum number of packages")
	return cmd
}

func newProjectsListCmd(conn *connectionFlags) *cobra.Command {
	var (
		owned      bool
		membership bool
		starred    bool
		visibility string
		topic      string
		namespace  string
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects visible to the current credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			var projects []*gitlabmanager.Project
			if namespace != "" {
				projects, err = client.Projects.ByNamespace(ctx, namespace)
			} else {
				projects, err = client.Projects.List(ctx, gitlabmanager.ListProjectsOptions{
					Owned:      owned,
					Membership: membership,
					Starred:    starred,
					Visibility: visibility,
					Topic:      topic,
					Refresh:    refresh,
				})
			}
			if err != nil {
				return err
			}

			printProjects(projects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&owned, "owned", false, "only projects owned by the current user")
	cmd.Flags().BoolVar(&membership, "membership", false, "only projects the current user is a member of")
	cmd.Flags().BoolVar(&starred, "starred", false, "only starred projects")
	cmd.Flags().StringVar(&visibility, "visibility", "", "filter by visibility (public, internal, private)")
	cmd.Flags().StringVar(&topic, "topic", "", "filter by project topic")
	cmd.Flags().StringVar(&namespace, "namespace", "", "only projects under this group or user namespace")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the discovery cache")
	return cmd
}

func newProjectsSearchCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search projects by name and path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			projects, err := client.Projects.Search(ctx, args[0])
			if err != nil {
				return err
			}

			printProjects(projects)
			return nil
		},
	}
}

func newProjectsInfoCmd(conn *connectionFlags) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "info <project>",
		Short: "Show details for a project",
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

			p, err := client.Projects.Get(ctx, project, refresh)
			if err != nil {
				return err
			}

			printKeyValue("ID", strconv.Itoa(p.ID))
			printKeyValue("Path", p.PathWithNamespace)
			if p.Description != "" {
				printKeyValue("Description", p.Description)
			}
			if p.DefaultBranch != "" {
				printKeyValue("Branch", p.DefaultBranch)
			}
			if p.Visibility != "" {
				printKeyValue("Visibility", p.Visibility)
			}
			printKeyValue("Stars", strconv.Itoa(p.StarCount))
			if p.Archived {
				printWarning("project is archived")
			}
			if p.WebURL != "" {
				printKeyValue("URL", StyleLink.Render(p.WebURL))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the discovery cache")
	return cmd
}

func printProjects(projects []*gitlabmanager.Project) {
	if len(projects) == 0 {
		printInfo("no projects found")
		return
	}
	for _, p := range projects {
		label := p.PathWithNamespace
		if p.Archived {
			label += " " + StyleDim.Render("(archived)")
		}
		printKeyValue(strconv.Itoa(p.ID), label)
	}
	printNewline()
	printDetail("%d project(s)", len(projects))
}
