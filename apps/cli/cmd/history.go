package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/pathpick/packages/history"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag int
	historyURLFlag   string
	historyPathFlag  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded verifications",
	Long: `Show the most recent verifications recorded by verify, deploy and the
wizard, newest first.

Examples:
  pathpick history
  pathpick history --url https://api.example.com/ticker --path data.price
  pathpick history --limit 5 -o json`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "l", history.DefaultLimit, "Maximum number of entries")
	historyCmd.Flags().StringVar(&historyURLFlag, "url", "", "Only entries for this URL (requires --path)")
	historyCmd.Flags().StringVarP(&historyPathFlag, "path", "p", "", "Only entries for this path (requires --url)")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if (historyURLFlag == "") != (historyPathFlag == "") {
		return withCode(ExitUsageError, errors.New("--url and --path must be used together"))
	}

	store := a.openHistory()
	if store == nil {
		return withCode(ExitConfigError, errors.New("history is disabled or unavailable"))
	}
	defer store.Close()

	ctx := cmd.Context()
	var entries []history.Entry
	if historyURLFlag != "" {
		entries, err = store.ForPath(ctx, historyURLFlag, historyPathFlag, historyLimitFlag)
	} else {
		entries, err = store.List(ctx, historyLimitFlag)
	}
	if err != nil {
		return err
	}
	a.out.FormatHistory(entries)
	return nil
}
