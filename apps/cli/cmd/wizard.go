package cmd

import (
	"github.com/abdul-hamid-achik/pathpick/packages/tui"
	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	"github.com/spf13/cobra"
)

var (
	wizardReq          requestFlags
	wizardNameFlag     string
	wizardTargetsFlag  []string
	wizardOperatorFlag string
)

var wizardCmd = &cobra.Command{
	Use:   "wizard [url|manifest.yaml]",
	Short: "Build a request, pick a value and deploy it interactively",
	Long: `Open the interactive wizard: describe the request, inspect the response
tree and select a value, verify it and hand it to the deploy targets.
Flags and manifests prefill the form.

Examples:
  pathpick wizard
  pathpick wizard https://api.example.com/ticker -H "Accept: application/json"
  pathpick wizard oracles/btc.yaml --to operator,file`,
	Args: cobra.MaximumNArgs(1),
	RunE: wizardCommand,
}

func init() {
	wizardReq.register(wizardCmd, false)
	wizardCmd.Flags().StringVar(&wizardNameFlag, "name", "", "Prefill the oracle name")
	wizardCmd.Flags().StringSliceVar(&wizardTargetsFlag, "to", []string{targetOperator}, "Deploy targets: operator, file")
	wizardCmd.Flags().StringVar(&wizardOperatorFlag, "operator-url", getEnvString("PATHPICK_OPERATOR_URL", ""), "Operator network endpoint (default from config)")
}

func wizardCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, name, _, err := wizardReq.draft(cmd, args)
	if err != nil {
		return err
	}
	if len(cfg.Headers) == 0 {
		cfg.AddHeader("", "")
	}
	if wizardNameFlag != "" {
		name = wizardNameFlag
	}

	deployer, err := a.deployer(wizardTargetsFlag, wizardOperatorFlag)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	w := wizard.New(a.client,
		wizard.WithConfig(cfg),
		wizard.WithDeployer(deployer),
		wizard.WithLogger(a.log),
	)
	if err := tui.Run(ctx, w, tui.WithDeployName(name)); err != nil {
		return err
	}

	s := w.Snapshot()
	if s.Result != nil {
		if store := a.openHistory(); store != nil {
			a.record(ctx, store, name, s.Config, s.Result)
			store.Close()
		}
	}
	if s.Deploying && s.DeployErr != nil {
		return withCode(ExitDeployError, s.DeployErr)
	}
	return nil
}
