package cmd

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
	"github.com/spf13/cobra"
)

var (
	deployReq            requestFlags
	deployNameFlag       string
	deployTargetsFlag    []string
	deployOperatorFlag   string
	deploySkipVerifyFlag bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy [manifest.yaml]",
	Short: "Verify a request definition and hand it to the operator network",
	Long: `Verify the selected path once more, then hand the request definition to
the deployment targets. The operator target posts it to the operator
network's create_oracle endpoint; the file target saves a manifest.

Examples:
  pathpick deploy oracles/btc.yaml
  pathpick deploy https://api.example.com/ticker --path data.price --name btc-usd --to operator,file
  pathpick deploy oracles/btc.yaml --operator-url https://operators.example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: deployCommand,
}

func init() {
	deployReq.register(deployCmd, true)
	deployCmd.Flags().StringVar(&deployNameFlag, "name", "", "Oracle name (defaults to the manifest name)")
	deployCmd.Flags().StringSliceVar(&deployTargetsFlag, "to", []string{targetOperator}, "Deploy targets: operator, file")
	deployCmd.Flags().StringVar(&deployOperatorFlag, "operator-url", getEnvString("PATHPICK_OPERATOR_URL", ""), "Operator network endpoint (default from config)")
	deployCmd.Flags().BoolVar(&deploySkipVerifyFlag, "skip-verify", false, "Deploy without verifying the path first")
}

func deployCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, name, _, err := deployReq.build(cmd, args)
	if err != nil {
		return err
	}
	if deployNameFlag != "" {
		name = deployNameFlag
	}

	deployer, err := a.deployer(deployTargetsFlag, deployOperatorFlag)
	if err != nil {
		return err
	}

	payload := deploy.Payload{Name: name, Config: cfg}
	if err := payload.Validate(); err != nil {
		return withCode(ExitUsageError, err)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	var result *verify.TestResult
	if !deploySkipVerifyFlag {
		result = a.verifier().VerifyPath(ctx, cfg)
		if store := a.openHistory(); store != nil {
			a.record(ctx, store, name, cfg, result)
			store.Close()
		}
		a.out.FormatResult(result)
		if !result.Success {
			return reported(ExitVerifyFailure, errors.New("not deploying: the selected path did not resolve"))
		}
	}
	payload.TestResult = result

	if err := deployer.Deploy(ctx, payload); err != nil {
		a.out.FormatError(err)
		return reported(ExitDeployError, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Deployed %q via %s\n", name, deployer.Name())
	return nil
}
