package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/history"
	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

// Formatter renders command results.
type Formatter interface {
	FormatHeader(version string)
	FormatCapture(c *pphttp.Capture)
	FormatResult(r *verify.TestResult)
	FormatSample(report *verify.SampleReport)
	FormatHistory(entries []history.Entry)
	FormatQuery(name string, results []deploy.OperatorResult)
	FormatError(err error)
}

var (
	_ Formatter = (*ConsoleFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
)

// Formats lists the supported --output values.
var Formats = []string{"console", "json"}

// New returns the formatter for the named format.
func New(format string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch format {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: console, json)", format)
	}
}
