package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag   string
	envFileFlag  string
	varFlags     []string
	verboseFlag  bool
	noColorFlag  bool
	outputFlag   string
	logLevelFlag string
	logFileFlag  string
	timeoutFlag  string
	proxyFlag    string
	insecureFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pathpick",
	Short: "Pick one value out of any HTTP response and keep checking it.",
	Long: `pathpick executes an HTTP request you describe, lets you pick a single
value from the response by walking its structure, re-checks that the
path still resolves on fresh calls and hands the finished definition to
an oracle operator network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		if !isReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", getEnvString("PATHPICK_CONFIG", ""), "Path to config file (env: PATHPICK_CONFIG)")
	pf.StringVar(&envFileFlag, "env-file", getEnvString("PATHPICK_ENV_FILE", ""), "Path to .env file for variable interpolation (env: PATHPICK_ENV_FILE)")
	pf.StringArrayVar(&varFlags, "var", nil, "Set a template variable as name=value (repeatable)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("PATHPICK_VERBOSE", false), "Verbose output (env: PATHPICK_VERBOSE)")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("PATHPICK_NO_COLOR", false), "Disable colored output (env: PATHPICK_NO_COLOR)")
	pf.StringVarP(&outputFlag, "output", "o", getEnvString("PATHPICK_OUTPUT", "console"), "Output format: console, json (env: PATHPICK_OUTPUT)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (env: PATHPICK_LOG_LEVEL)")
	pf.StringVar(&logFileFlag, "log-file", "", "Also write JSON logs to a rotated file (env: PATHPICK_LOG_FILE)")
	pf.StringVar(&timeoutFlag, "timeout", getEnvString("PATHPICK_REQUEST_TIMEOUT", ""), "Request timeout, e.g. 10s (default from config)")
	pf.StringVar(&proxyFlag, "proxy", "", "Proxy URL for HTTP requests (env: PATHPICK_PROXY)")
	pf.BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("PATHPICK_INSECURE", false), "Disable SSL certificate validation (env: PATHPICK_INSECURE)")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
