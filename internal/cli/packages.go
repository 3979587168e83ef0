package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TsafasN/gitlab-manager/pkg/gitlabmanager"
)

func newPackagesCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Work with project package registries",
	}
	cmd.AddCommand(newPackagesListCmd(conn))
	cmd.AddCommand(newPackagesGetCmd(conn))
	cmd.AddCommand(newPackagesUploadCmd(conn))
	cmd.AddCommand(newPackagesDownloadCmd(conn))
	cmd.AddCommand(newPackagesDeleteCmd(conn))
	return cmd
}

func newPackagesListCmd(conn *connectionFlags) *cobra.Command {
	var (
		packageType string
		packageName string
	)

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List packages in a project",
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

			pkgs, err := client.Packages.List(ctx, project, gitlabmanager.ListPackagesOptions{
				PackageType: packageType,
				PackageName: packageName,
			})
			if err != nil {
				return err
			}
			if len(pkgs) == 0 {
				printInfo("no packages in %s", project)
				return nil
			}

			printInfo("%d package(s) in %s", len(pkgs), project)
			printNewline()
			for _, p := range pkgs {
				printKeyValue(fmt.Sprintf("#%d", p.ID),
					fmt.Sprintf("%s %s (%s)", p.Name, p.Version, p.PackageType))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&packageType, "type", "", "filter by package type (generic, pypi, npm, ...)")
	cmd.Flags().StringVar(&packageName, "name", "", "filter by package name")
	return cmd
}

func newPackagesGetCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <project> <package-id>",
		Short: "Show a single package",
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
				return fmt.Errorf("invalid package id %q", args[1])
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			pkg, err := client.Packages.Get(ctx, project, id)
			if err != nil {
				return err
			}

			printKeyValue("ID", strconv.Itoa(pkg.ID))
			printKeyValue("Name", pkg.Name)
			printKeyValue("Version", pkg.Version)
			printKeyValue("Type", pkg.PackageType)
			if pkg.Status != "" {
				printKeyValue("Status", pkg.Status)
			}
			if pkg.CreatedAt != nil {
				printKeyValue("Created", pkg.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newPackagesUploadCmd(conn *connectionFlags) *cobra.Command {
	var (
		name     string
		version  string
		fileName string
		hidden   bool
	)

	cmd := &cobra.Command{
		Use:   "upload <project> <file>",
		Short: "Upload a file to the generic package registry",
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

			prog := newProgress(logger)
			spinner := newSpinner(ctx, fmt.Sprintf("Uploading %s", args[1]))
			spinner.Start()

			result, err := client.Packages.Upload(ctx, project, args[1], gitlabmanager.UploadOptions{
				Name:     name,
				Version:  version,
				FileName: fileName,
				Hidden:   hidden,
				Progress: func(uploaded, total int64) {
					spinner.SetMessage(fmt.Sprintf("Uploading %s (%s / %s)",
						args[1], formatBytes(uploaded), formatBytes(total)))
				},
			})
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("upload failed: %v", err))
				return err
			}

			spinner.StopWithSuccess(fmt.Sprintf("uploaded %s %s", result.Name, result.Version))
			printDetail("file %s (%s)", result.FileName, formatBytes(result.Size))
			if result.PackageID > 0 {
				printDetail("package id %d", result.PackageID)
			}
			prog.done("upload complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "package name (default: file name up to the first dot)")
	cmd.Flags().StringVar(&version, "version", "", "package version (default: 1.0.0)")
	cmd.Flags().StringVar(&fileName, "file-name", "", "file name in the registry (default: local file name)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "upload with hidden status")
	return cmd
}

func newPackagesDownloadCmd(conn *connectionFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <project> <name> <version> <file-name>",
		Short: "Download a file from the generic package registry",
		Args:  cobra.ExactArgs(4),
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

			spinner := newSpinner(ctx, fmt.Sprintf("Downloading %s", args[3]))
			spinner.Start()

			path, err := client.Packages.Download(ctx, project, args[1], args[2], args[3], output)
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("download failed: %v", err))
				return err
			}

			spinner.StopWithSuccess(fmt.Sprintf("downloaded %s %s", args[1], args[2]))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default: current directory)")
	return cmd
}

func newPackagesDeleteCmd(conn *connectionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project> <package-id>",
		Short: "Delete a package and all its files",
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
				return fmt.Errorf("invalid package id %q", args[1])
			}
			client, err := buildClient(ctx, conn, logger)
			if err != nil {
				return err
			}

			if err := client.Packages.Delete(ctx, project, id); err != nil {
				return err
			}
			printSuccess("deleted package %d from %s", id, project)
			return nil
		},
	}
}

// formatBytes renders a byte count in a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
