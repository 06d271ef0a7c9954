package cmd

import (
	"net/http"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/spf13/cobra"
)

var queryOperatorFlag string

var queryCmd = &cobra.Command{
	Use:   "query <name>",
	Short: "Show what operators report for a deployed oracle",
	Long: `Ask the operator network for the latest outputs of a deployed oracle.

Examples:
  pathpick query btc-usd
  pathpick query btc-usd -o json`,
	Args: cobra.ExactArgs(1),
	RunE: queryCommand,
}

func init() {
	queryCmd.Flags().StringVar(&queryOperatorFlag, "operator-url", getEnvString("PATHPICK_OPERATOR_URL", ""), "Operator network endpoint (default from config)")
}

func queryCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	endpoint := queryOperatorFlag
	if endpoint == "" {
		endpoint = a.cfg.OperatorURL
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	client := deploy.NewQueryClient(endpoint, &http.Client{Timeout: a.cfg.TimeoutDuration()})
	results, err := client.Query(ctx, args[0])
	if err != nil {
		a.out.FormatError(err)
		return reported(ExitNetworkError, err)
	}
	a.out.FormatQuery(args[0], results)
	return nil
}
