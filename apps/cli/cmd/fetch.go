package cmd

import (
	"github.com/spf13/cobra"
)

var fetchReq requestFlags

var fetchCmd = &cobra.Command{
	Use:   "fetch [url|manifest.yaml]",
	Short: "Execute a request once and show every selectable path",
	Long: `Execute a request once, parse the response and print the path of every
value in it. With --path the value at that path is extracted as well.

Examples:
  pathpick fetch https://api.example.com/ticker
  pathpick fetch -X POST -d '{"symbol":"BTC"}' -H "Content-Type: application/json" https://api.example.com/quote
  pathpick fetch oracles/btc.yaml -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: fetchCommand,
}

func init() {
	fetchReq.register(fetchCmd, true)
}

func fetchCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, _, _, err := fetchReq.build(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	capture, err := a.client.Execute(ctx, cfg)
	if err != nil {
		a.out.FormatError(err)
		return reported(ExitNetworkError, err)
	}
	a.out.FormatCapture(capture)

	if fetchReq.path == "" {
		return nil
	}
	result := a.verifier().Check(capture, fetchReq.path)
	a.out.FormatResult(result)
	if !result.Success {
		return reported(ExitVerifyFailure, errVerificationFailed)
	}
	return nil
}
