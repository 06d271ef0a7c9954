package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var errVerificationFailed = errors.New("verification failed")

var (
	verifyReq         requestFlags
	verifySamplesFlag int
	verifyRateFlag    float64
	verifyWatchFlag   bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [url|manifest.yaml]",
	Short: "Check that a selected path still resolves on a fresh call",
	Long: `Execute the request again and extract the selected path from the new
response. The check fails when the call fails, the response is not JSON
or the path no longer exists.

Examples:
  pathpick verify oracles/btc.yaml
  pathpick verify https://api.example.com/ticker --path data.price
  pathpick verify oracles/btc.yaml --samples 20 --rate 2
  pathpick verify oracles/btc.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: verifyCommand,
}

func init() {
	verifyReq.register(verifyCmd, true)
	verifyCmd.Flags().IntVarP(&verifySamplesFlag, "samples", "n", getEnvInt("PATHPICK_SAMPLES", 1), "Number of verifications to run (env: PATHPICK_SAMPLES)")
	verifyCmd.Flags().Float64VarP(&verifyRateFlag, "rate", "r", getEnvFloat("PATHPICK_SAMPLE_RATE", 0), "Verifications per second when sampling (default from config)")
	verifyCmd.Flags().BoolVarP(&verifyWatchFlag, "watch", "w", false, "Watch the manifest and verify again when it changes")
}

func verifyCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cfg, name, manifestPath, err := verifyReq.build(cmd, args)
	if err != nil {
		return err
	}
	if cfg.SelectedPath == "" {
		return withCode(ExitUsageError, errors.New("no path selected: pass --path or use a manifest with selectedPath"))
	}
	if verifyWatchFlag && manifestPath == "" {
		return withCode(ExitUsageError, errors.New("--watch requires a manifest"))
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	store := a.openHistory()
	if store != nil {
		defer store.Close()
	}

	rate := verifyRateFlag
	if rate == 0 {
		rate = a.cfg.SampleRate
	}
	check := func(cfg *request.Config) bool {
		return runVerification(ctx, a, name, cfg, verifySamplesFlag, rate, func(results ...*verify.TestResult) {
			a.record(ctx, store, name, cfg, results...)
		})
	}

	ok := check(cfg)
	if !verifyWatchFlag {
		if !ok {
			return reported(ExitVerifyFailure, errVerificationFailed)
		}
		return nil
	}
	return watchManifest(ctx, cmd, a, manifestPath, func(m *manifest.Manifest) {
		name = m.Name
		check(m.Config())
	})
}

// runVerification verifies once, or samples when count > 1, and reports
// whether every check found a value.
func runVerification(ctx context.Context, a *app, name string, cfg *request.Config, count int, rate float64, record func(...*verify.TestResult)) bool {
	v := a.verifier()
	if count <= 1 {
		result := v.VerifyPath(ctx, cfg)
		record(result)
		a.out.FormatResult(result)
		return result.Success
	}

	report, err := v.Sample(ctx, cfg, verify.SampleOptions{Count: count, Rate: rate})
	if err != nil && report == nil {
		a.out.FormatError(err)
		return false
	}
	record(report.Results...)
	a.out.FormatSample(report)
	if err != nil {
		a.out.FormatError(err)
	}
	a.log.Info("sampling finished", "name", name, "successes", report.Successes, "failures", report.Failures)
	return report.Failures == 0 && err == nil
}

// watchManifest calls onChange with the reloaded manifest every time the file
// is written, until ctx is done.
func watchManifest(ctx context.Context, cmd *cobra.Command, a *app, path string, onChange func(*manifest.Manifest)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", path)

	changed := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			m, err := manifest.Load(path)
			if err != nil {
				a.out.FormatError(err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nManifest changed: %s\n", path)
			onChange(m)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.out.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}
