package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/oracle"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [manifest.yaml]",
	Short: "Perform the oracle task once and print its output",
	Long: `Perform the task an oracle operator runs: execute the request, require
status 200 and a JSON body, extract the selected path and print
{"price": "<JSON text of the value>"}.

Without a manifest the task is read from the environment:
  HTTP_METHOD      request method (default GET)
  REQUEST_URL      request URL
  JSON_PATH        selected path
  REQUEST_BODY     body for POST, PUT and PATCH
  REQUEST_HEADERS  JSON object of headers (default {"Accept":"application/json"})

Examples:
  REQUEST_URL=https://api.example.com/ticker JSON_PATH=data.price pathpick run
  pathpick run oracles/btc.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommand,
}

func runCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var cfg *request.Config
	if len(args) == 1 {
		m, err := manifest.Load(args[0])
		if err != nil {
			return withCode(ExitManifestError, err)
		}
		cfg = m.Config()
	} else {
		cfg, err = oracle.ConfigFromEnv(os.Getenv)
		if err != nil {
			return err
		}
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	out, err := oracle.NewRunner(a.client, a.log).Run(ctx, cfg)
	if err != nil {
		return err
	}
	data, err := out.JSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
