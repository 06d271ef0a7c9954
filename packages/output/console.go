package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/history"
	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
	"github.com/fatih/color"
)

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	case string:
		return truncate(fmt.Sprintf("%q", val), maxLen)
	}
	return truncate(fmt.Sprintf("%v", v), maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen > 0 && len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	maxBody int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer:  os.Stdout,
		maxBody: 2000,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithMaxBody caps how many bytes of a raw body are printed. Zero prints everything.
func WithMaxBody(n int) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.maxBody = n
	}
}

func (f *ConsoleFormatter) FormatCapture(c *pphttp.Capture) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s %s\n", bold("Status:"), f.status(c.Status, c.StatusText), cyan(fmt.Sprintf("(%dms)", c.DurationMs())))

	if f.verbose && len(c.Headers) > 0 {
		fmt.Fprintf(f.writer, "%s\n", bold("Headers:"))
		keys := make([]string, 0, len(c.Headers))
		for k := range c.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "  %s: %s\n", k, c.Headers[k])
		}
	}

	if c.Truncated {
		fmt.Fprintf(f.writer, "%s\n", yellow("Response body exceeded the size limit and was truncated."))
	}
	if !c.IsJSONValid {
		fmt.Fprintf(f.writer, "%s\n", yellow("Response is not valid JSON; selection is disabled."))
		fmt.Fprintf(f.writer, "%s\n", truncate(c.RawText, f.maxBody))
		return
	}

	fmt.Fprintf(f.writer, "%s\n", bold("Paths:"))
	f.FormatTree(c.RawText)
}

// FormatTree prints every node of a JSON document with its encoded path,
// indented by depth, leaves followed by their value.
func (f *ConsoleFormatter) FormatTree(raw string) {
	faint := color.New(color.Faint).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for node := range jsonpath.WalkDocument(raw) {
		if node.Depth() == 0 {
			continue
		}
		indent := strings.Repeat("  ", node.Depth())
		if node.IsLeaf() {
			fmt.Fprintf(f.writer, "%s%s = %s\n", indent, node.Path.String(), green(formatValue(node.Value, 80)))
			continue
		}
		fmt.Fprintf(f.writer, "%s%s %s\n", indent, node.Path.String(), faint(fmt.Sprintf("(%s, %d)", node.Kind, node.Len)))
	}
}

func (f *ConsoleFormatter) FormatResult(r *verify.TestResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	timing := cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds()))
	if r.Success {
		fmt.Fprintf(f.writer, "  %s %s = %s %s\n", green("✓"), r.Path, r.ValueJSON(), timing)
		return
	}
	fmt.Fprintf(f.writer, "  %s %s %s %s\n", red("✗"), r.Path, red(r.Error), timing)
	if f.verbose && r.Status > 0 {
		fmt.Fprintf(f.writer, "    Status: %d\n", r.Status)
	}
}

func (f *ConsoleFormatter) FormatSample(report *verify.SampleReport) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if f.verbose {
		for _, r := range report.Results {
			f.FormatResult(r)
		}
	}

	fmt.Fprintf(f.writer, "\n%s %s\n", bold("Samples:"), report.Path)
	fmt.Fprintf(f.writer, "  Checks:  ")
	if report.Successes > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d found", report.Successes)))
	}
	if report.Failures > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", report.Failures)))
	}
	fmt.Fprintf(f.writer, "%d total\n", len(report.Results))

	switch {
	case report.Stable:
		fmt.Fprintf(f.writer, "  Values:  %s\n", green("stable"))
	default:
		fmt.Fprintf(f.writer, "  Values:  %s\n", yellow(fmt.Sprintf("%d distinct", report.DistinctValues)))
	}
	fmt.Fprintf(f.writer, "  Latency: min=%dms mean=%dms p50=%dms p95=%dms p99=%dms max=%dms\n",
		report.Min.Milliseconds(), report.Mean.Milliseconds(), report.P50.Milliseconds(),
		report.P95.Milliseconds(), report.P99.Milliseconds(), report.Max.Milliseconds())
}

func (f *ConsoleFormatter) FormatHistory(entries []history.Entry) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	if len(entries) == 0 {
		fmt.Fprintf(f.writer, "No verifications recorded.\n")
		return
	}
	for _, e := range entries {
		symbol, detail := green("✓"), e.Value
		if !e.Success {
			symbol, detail = red("✗"), red(e.Error)
		}
		label := e.Method + " " + e.URL
		if e.Name != "" {
			label = e.Name
		}
		fmt.Fprintf(f.writer, "%s %s %s %s = %s\n", faint(e.CheckedAt.Format("2006-01-02 15:04:05")), symbol, label, e.Path, detail)
	}
}

func (f *ConsoleFormatter) FormatQuery(name string, results []deploy.OperatorResult) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s\n", bold("Oracle:"), name)
	if len(results) == 0 {
		fmt.Fprintf(f.writer, "  no operator results yet\n")
		return
	}
	for _, r := range results {
		keys := make([]string, 0, len(r.Output))
		for k := range r.Output {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, r.Output[k]))
		}
		fmt.Fprintf(f.writer, "  %s %s\n", cyan(r.OperatorURL), strings.Join(parts, " "))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("pathpick"), version)
}

func (f *ConsoleFormatter) status(code int, text string) string {
	s := fmt.Sprintf("%d %s", code, text)
	switch {
	case code >= 200 && code < 300:
		return color.GreenString(s)
	case code >= 400:
		return color.RedString(s)
	default:
		return color.YellowString(s)
	}
}
