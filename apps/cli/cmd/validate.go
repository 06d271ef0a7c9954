package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest|directory>...",
	Short: "Validate manifests against the manifest schema",
	Long: `Validate manifest files without executing them.

Examples:
  pathpick validate oracles/btc.yaml
  pathpick validate ./oracles/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func collectManifests(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := manifest.List(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectManifests(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no manifest files found")
	}

	hasErrors := false
	for _, file := range files {
		_, err := manifest.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return withCode(ExitManifestError, fmt.Errorf("validation failed"))
	}

	return nil
}
