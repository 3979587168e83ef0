package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func newReleasesCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Work with project releases",
	}
	cmd.AddCommand(newReleasesCreateCmd(conn))
	cmd.AddCommand(newReleasesListCmd(conn))
	cmd.AddCommand(newReleasesGetCmd(conn))
	cmd.AddCommand(newReleasesUpdateCmd(conn))
	return cmd
}

func newReleasesCreateCmd(conn *connectionFlags) *cobra.Command {
	var (
		name        string
		description string
		ref         string
		assets      []string
	)

	cmd := &cobra.Command{
		Use:   "create <project> <tag>",
		Short: "Create a release for a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			project, err := gitlabmanager.ParseProject(args[0])
			if err != nil {
				return err
			}
			links, err := parseAssetLinks(assets)
			if err != nil {
				return err
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			rel, err := client.Releases.Create(ctx, project, args[1], name, gitlabmanager.CreateReleaseOptions{
				Description: description,
				Ref:         ref,
				Assets:      links,
			})
			if err != nil {
				return err
			}

			printSuccess("created release %s (%s)", rel.Name, rel.TagName)
			for _, link := range rel.Assets {
				printDetail("%s %s", link.Name, link.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "release title (default: the tag name)")
	cmd.Flags().StringVar(&description, "description", "", "release notes in Markdown")
	cmd.Flags().StringVar(&ref, "ref", "", "create the tag from this ref if it does not exist")
	cmd.Flags().StringArrayVar(&assets, "asset", nil, "asset link as NAME=URL (repeatable)")
	return cmd
}

func newReleasesListCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project>",
		Short: "List releases in a project",
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

			rels, err := client.Releases.List(ctx, project)
			if err != nil {
				return err
			}
			if len(rels) == 0 {
				printInfo("no releases in %s", project)
				return nil
			}

			for _, r := range rels {
				printKeyValue(r.TagName, r.Name)
			}
			return nil
		},
	}
}

func newReleasesGetCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <project> <tag>",
		Short: "Show a single release",
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

			rel, err := client.Releases.Get(ctx, project, args[1])
			if err != nil {
				return err
			}

			printKeyValue("Tag", rel.TagName)
			printKeyValue("Name", rel.Name)
			if rel.ReleasedAt != nil {
				printKeyValue("Released", rel.ReleasedAt.Format("2006-01-02 15:04:05"))
			}
			if rel.Description != "" {
				printNewline()
				printDetail("%s", rel.Description)
			}
			for _, link := range rel.Assets {
				printFile(link.URL)
			}
			return nil
		},
	}
}

func newReleasesUpdateCmd(conn *connectionFlags) *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <project> <tag>",
		Short: "Update a release's title or notes",
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

			rel, err := client.Releases.Update(ctx, project, args[1], gitlabmanager.UpdateReleaseOptions{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}

			printSuccess("updated release %s (%s)", rel.Name, rel.TagName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new release title")
	cmd.Flags().StringVar(&description, "description", "", "new release notes")
	return cmd
}

// parseAssetLinks parses repeated NAME=URL flag values.
func parseAssetLinks(values []string) ([]gitlabmanager.AssetLink, error) {
	var links []gitlabmanager.AssetLink
	for _, v := range values {
		name, url, ok := strings.Cut(v, "=")
		if !ok || name == "" || url == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid asset %q: want NAME=URL", v)
		}
		links = append(links, gitlabmanager.AssetLink{Name: name, URL: url})
	}
	return links, nil
}
