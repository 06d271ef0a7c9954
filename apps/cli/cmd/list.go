package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/pathpick/packages/core/config"
	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "List saved manifests",
	Long: `List the manifests in a directory (default: the configured manifest directory).

Examples:
  pathpick list
  pathpick list ./oracles`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	} else {
		cfg, err := config.LoadConfig(configFlag)
		if err != nil {
			return withCode(ExitConfigError, err)
		}
		dir = cfg.ManifestDir
	}

	files, err := manifest.List(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No manifests in %s\n", dir)
		return nil
	}

	for _, file := range files {
		m, err := manifest.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s %s %s\n", m.Name, m.Method, m.URL)
		if m.SelectedPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    path: %s\n", m.SelectedPath)
		}
		if m.Verified != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "    verified: %s (%s)\n", m.Verified.Value, m.Verified.CheckedAt)
		}
	}
	return nil
}
