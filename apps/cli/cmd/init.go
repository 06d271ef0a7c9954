package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/pathpick/packages/core/config"
	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new pathpick project",
	Long: `Initialize a new pathpick project in the current directory.

This creates:
  - .pathpick.yaml        - Configuration file
  - oracles/example.yaml  - Example manifest

Examples:
  pathpick init
  pathpick init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	defaults := config.DefaultConfig()
	configFile := filepath.Join(cwd, ".pathpick.yaml")
	exampleFile := manifest.PathFor(filepath.Join(cwd, defaults.ManifestDir), "example")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"timeout":         defaults.Timeout,
		"followRedirects": true,
		"maxRedirects":    defaults.MaxRedirects,
		"validateSSL":     true,
		"envFile":         defaults.EnvFile,
		"operatorUrl":     defaults.OperatorURL,
		"manifestDir":     defaults.ManifestDir,
		"historyDb":       defaults.HistoryDB,
		"sampleRate":      defaults.SampleRate,
		"logLevel":        defaults.LogLevel,
		"headers": map[string]string{
			"User-Agent": "pathpick/" + version,
		},
	}

	configYAML, err := yaml.Marshal(configContent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	example := &request.Config{
		Method: request.MethodGet,
		URL:    "https://api.coinbase.com/v2/prices/BTC-USD/spot",
		Headers: []request.Header{
			{Key: "Accept", Value: "application/json"},
		},
		SelectedPath: "data.amount",
	}
	if err := manifest.Save(manifest.New("example", example, nil), exampleFile); err != nil {
		return fmt.Errorf("failed to create example manifest: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\npathpick project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'pathpick verify %s' to check the example path.\n", filepath.Join(defaults.ManifestDir, "example.yaml"))

	return nil
}
