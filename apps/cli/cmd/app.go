package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/core/config"
	"github.com/abdul-hamid-achik/pathpick/packages/core/env"
	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/history"
	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/logger"
	"github.com/abdul-hamid-achik/pathpick/packages/output"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
	"github.com/spf13/cobra"
)

// app bundles what every command needs once flags and config are resolved.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	resolver *env.Resolver
	client   *pphttp.Client
	out      output.Formatter
	verbose  bool
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, withCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}

	verbose := verboseFlag || cfg.GetVerbose()
	noColor := noColorFlag || cfg.GetNoColor()

	level := cfg.LogLevel
	if logLevelFlag != "" {
		level = logLevelFlag
	} else if verbose && level == config.DefaultConfig().LogLevel {
		level = "info"
	}
	logFile := cfg.LogFile
	if logFileFlag != "" {
		logFile = logFileFlag
	}
	log := logger.New(logger.Options{Level: level, Output: cmd.ErrOrStderr(), File: logFile})

	envFile := cfg.EnvFile
	if envFileFlag != "" {
		envFile = envFileFlag
	}
	resolver, err := env.Setup(envFile, varFlags, func(format string, args ...any) {
		log.Warn(fmt.Sprintf(format, args...))
	})
	if err != nil {
		return nil, withCode(ExitConfigError, fmt.Errorf("loading %s: %w", envFile, err))
	}

	timeout := cfg.TimeoutDuration()
	if timeoutFlag != "" {
		timeout, err = time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, withCode(ExitUsageError, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err))
		}
	}
	proxy := cfg.Proxy
	if proxyFlag != "" {
		proxy = proxyFlag
	}

	out, err := output.New(strings.ToLower(outputFlag), cmd.OutOrStdout(), verbose, noColor)
	if err != nil {
		return nil, withCode(ExitUsageError, err)
	}

	client := pphttp.NewClient(
		pphttp.WithTimeout(timeout),
		pphttp.WithFollowRedirects(cfg.GetFollowRedirects()),
		pphttp.WithMaxRedirects(cfg.MaxRedirects),
		pphttp.WithValidateSSL(cfg.GetValidateSSL() && !insecureFlag),
		pphttp.WithProxy(proxy),
		pphttp.WithMaxBodyBytes(cfg.MaxBodyBytes),
		pphttp.WithDefaultHeaders(cfg.Headers),
		pphttp.WithResolver(resolver.Resolve),
		pphttp.WithLogger(log),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		client:   client,
		out:      out,
		verbose:  verbose,
	}, nil
}

// signalContext is cancelled on interrupt so in-flight requests stop.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (a *app) verifier() *verify.Verifier {
	return verify.NewVerifier(a.client, verify.WithLogger(a.log))
}

// openHistory returns nil when recording is disabled or the database cannot
// be opened; history never blocks a command.
func (a *app) openHistory() *history.Store {
	if a.cfg.GetNoHistory() || a.cfg.HistoryDB == "" {
		return nil
	}
	if dir := filepath.Dir(a.cfg.HistoryDB); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			a.log.Warn("cannot create history directory", "dir", dir, "error", err)
			return nil
		}
	}
	store, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		a.log.Warn("history disabled", "error", err)
		return nil
	}
	return store
}

func (a *app) record(ctx context.Context, store *history.Store, name string, cfg *request.Config, results ...*verify.TestResult) {
	if store == nil {
		return
	}
	for _, r := range results {
		if _, err := store.Record(ctx, name, cfg, r); err != nil {
			a.log.Warn("recording verification", "error", err)
		}
	}
}

// Deploy targets accepted by --to.
const (
	targetOperator = "operator"
	targetFile     = "file"
)

func (a *app) deployer(targets []string, operatorURL string) (deploy.Deployer, error) {
	if operatorURL == "" {
		operatorURL = a.cfg.OperatorURL
	}

	var multi deploy.Multi
	for _, t := range targets {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case targetOperator:
			multi = append(multi, deploy.NewOperatorDeployer(operatorURL, deploy.WithLogger(a.log)))
		case targetFile:
			multi = append(multi, deploy.NewFileDeployer(a.cfg.ManifestDir))
		case "":
		default:
			return nil, withCode(ExitUsageError, fmt.Errorf("unknown deploy target %q (supported: operator, file)", t))
		}
	}
	switch len(multi) {
	case 0:
		return nil, withCode(ExitUsageError, fmt.Errorf("no deploy target given"))
	case 1:
		return multi[0], nil
	default:
		return multi, nil
	}
}
