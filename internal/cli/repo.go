package cli

import (
	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func newRepoCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage repository branches and tags",
	}

	branches := &cobra.Command{
		Use:   "branches",
		Short: "Manage branches",
	}
	branches.AddCommand(newBranchesListCmd(conn))
	branches.AddCommand(newBranchesCreateCmd(conn))
	branches.AddCommand(newBranchesDeleteCmd(conn))

	tags := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}
	tags.AddCommand(newTagsListCmd(conn))
	tags.AddCommand(newTagsCreateCmd(conn))
	tags.AddCommand(newTagsDeleteCmd(conn))

	cmd.AddCommand(branches)
	cmd.AddCommand(tags)
	return cmd
}

func newBranchesListCmd(conn *connectionFlags) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List branches",
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

			branches, err := client.Repositories.ListBranches(ctx, project, search)
			if err != nil {
				return err
			}
			if len(branches) == 0 {
				printInfo("no branches in %s", project)
				return nil
			}

			for _, b := range branches {
				label := b.Name
				if b.Default {
					label += " (default)"
				}
				if b.Protected {
					label += " (protected)"
				}
				printKeyValue(shortSHA(b.CommitSHA), label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter branches by name")
	return cmd
}

func newBranchesCreateCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create <project> <name> <ref>",
		Short: "Create a branch from a ref",
		Args:  cobra.ExactArgs(3),
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

			b, err := client.Repositories.CreateBranch(ctx, project, args[1], args[2])
			if err != nil {
				return err
			}
			printSuccess("created branch %s at %s", b.Name, shortSHA(b.CommitSHA))
			return nil
		},
	}
}

func newBranchesDeleteCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project> <name>",
		Short: "Delete a branch",
		Args:  cobra.ExactArgs(2),
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

			if err := client.Repositories.DeleteBranch(ctx, project, args[1]); err != nil {
				return err
			}
			printSuccess("deleted branch %s", args[1])
			return nil
		},
	}
}

func newTagsListCmd(conn *connectionFlags) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List tags",
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

			tags, err := client.Repositories.ListTags(ctx, project, search)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				printInfo("no tags in %s", project)
				return nil
			}

			for _, t := range tags {
				label := t.Name
				if t.Message != "" {
					label += "  " + t.Message
				}
				printKeyValue(shortSHA(t.CommitSHA), label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter tags by name")
	return cmd
}

func newTagsCreateCmd(conn *connectionFlags) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "create <project> <name> <ref>",
		Short: "Create a tag at a ref",
		Args:  cobra.ExactArgs(3),
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

			t, err := client.Repositories.CreateTag(ctx, project, args[1], args[2], message)
			if err != nil {
				return err
			}
			printSuccess("created tag %s at %s", t.Name, shortSHA(t.CommitSHA))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "annotation message")
	return cmd
}

func newTagsDeleteCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project> <name>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(2),
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

			if err := client.Repositories.DeleteTag(ctx, project, args[1]); err != nil {
				return err
			}
			printSuccess("deleted tag %s", args[1])
			return nil
		},
	}
}

// shortSHA abbreviates a commit SHA for display.
func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	if sha == "" {
		return "-"
	}
	return sha
}
