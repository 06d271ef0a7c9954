package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/history"
	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

// JSONCapture is the machine-readable form of a response capture.
type JSONCapture struct {
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	Headers     map[string]string `json:"headers,omitempty"`
	IsJSONValid bool              `json:"isJsonValid"`
	Truncated   bool              `json:"truncated,omitempty"`
	Duration    float64           `json:"duration"`
	Body        any               `json:"body"`
	Paths       []JSONPathEntry   `json:"paths,omitempty"`
}

// JSONPathEntry is one selectable leaf.
type JSONPathEntry struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// JSONResult is the machine-readable form of a verification.
type JSONResult struct {
	Success   bool    `json:"success"`
	Path      string  `json:"path"`
	Value     any     `json:"value,omitempty"`
	Error     string  `json:"error,omitempty"`
	Kind      string  `json:"kind,omitempty"`
	Status    int     `json:"status,omitempty"`
	Duration  float64 `json:"duration"`
	CheckedAt string  `json:"checkedAt"`
}

// JSONSample summarizes repeated verifications.
type JSONSample struct {
	Path           string       `json:"path"`
	Total          int          `json:"total"`
	Successes      int          `json:"successes"`
	Failures       int          `json:"failures"`
	Stable         bool         `json:"stable"`
	DistinctValues int          `json:"distinctValues"`
	Latency        JSONLatency  `json:"latency"`
	Results        []JSONResult `json:"results"`
}

// JSONLatency holds latency figures in milliseconds.
type JSONLatency struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	P50  float64 `json:"p50"`
	P95  float64 `json:"p95"`
	P99  float64 `json:"p99"`
	Max  float64 `json:"max"`
}

// JSONQuery is the result of querying an operator network.
type JSONQuery struct {
	Name    string                  `json:"name"`
	Results []deploy.OperatorResult `json:"results"`
}

// JSONError wraps a failure for machine consumers.
type JSONError struct {
	Error string `json:"error"`
}

// JSONFormatter writes one indented JSON document per call.
type JSONFormatter struct {
	writer io.Writer
	err    error
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// Err returns the first encoding error, if any.
func (f *JSONFormatter) Err() error {
	return f.err
}

func (f *JSONFormatter) encode(v any) {
	if f.err != nil {
		return
	}
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	f.err = encoder.Encode(v)
}

func (f *JSONFormatter) FormatCapture(c *pphttp.Capture) {
	out := JSONCapture{
		Status:      c.Status,
		StatusText:  c.StatusText,
		Headers:     c.Headers,
		IsJSONValid: c.IsJSONValid,
		Truncated:   c.Truncated,
		Duration:    float64(c.DurationMs()),
		Body:        c.RawText,
	}
	if c.IsJSONValid {
		out.Body = c.ParsedJSON
		for node := range jsonpath.Leaves(jsonpath.WalkDocument(c.RawText)) {
			if node.Depth() == 0 {
				continue
			}
			out.Paths = append(out.Paths, JSONPathEntry{
				Path:  node.Path.String(),
				Kind:  node.Kind.String(),
				Value: node.Value,
			})
		}
	}
	f.encode(out)
}

func (f *JSONFormatter) FormatResult(r *verify.TestResult) {
	f.encode(toJSONResult(r))
}

func (f *JSONFormatter) FormatSample(report *verify.SampleReport) {
	out := JSONSample{
		Path:           report.Path,
		Total:          len(report.Results),
		Successes:      report.Successes,
		Failures:       report.Failures,
		Stable:         report.Stable,
		DistinctValues: report.DistinctValues,
		Latency: JSONLatency{
			Min:  float64(report.Min.Milliseconds()),
			Mean: float64(report.Mean.Milliseconds()),
			P50:  float64(report.P50.Milliseconds()),
			P95:  float64(report.P95.Milliseconds()),
			P99:  float64(report.P99.Milliseconds()),
			Max:  float64(report.Max.Milliseconds()),
		},
		Results: make([]JSONResult, len(report.Results)),
	}
	for i, r := range report.Results {
		out.Results[i] = toJSONResult(r)
	}
	f.encode(out)
}

func (f *JSONFormatter) FormatHistory(entries []history.Entry) {
	if entries == nil {
		entries = []history.Entry{}
	}
	f.encode(entries)
}

func (f *JSONFormatter) FormatQuery(name string, results []deploy.OperatorResult) {
	if results == nil {
		results = []deploy.OperatorResult{}
	}
	f.encode(JSONQuery{Name: name, Results: results})
}

func (f *JSONFormatter) FormatError(err error) {
	f.encode(JSONError{Error: err.Error()})
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

func toJSONResult(r *verify.TestResult) JSONResult {
	out := JSONResult{
		Success:   r.Success,
		Path:      r.Path,
		Error:     r.Error,
		Kind:      string(r.Kind),
		Status:    r.Status,
		Duration:  float64(r.Duration.Milliseconds()),
		CheckedAt: r.CheckedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if r.Success {
		out.Value = r.Value
	}
	return out
}
