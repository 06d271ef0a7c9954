package verify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
)

const (
	// DefaultSampleRate is the number of verifications per second in Sample.
	DefaultSampleRate = 1.0
	// histogram bounds in microseconds
	minLatencyUs = 1
	maxLatencyUs = 60_000_000
)

type SampleOptions struct {
	Count int
	// Rate is verifications per second. Zero uses DefaultSampleRate; a
	// negative rate disables pacing.
	Rate float64
	// OnResult, when set, is called after every sample.
	OnResult func(i int, r *TestResult)
}

// SampleReport summarizes a series of verifications of one path.
type SampleReport struct {
	Path      string        `json:"path"`
	Results   []*TestResult `json:"results"`
	Successes int           `json:"successes"`
	Failures  int           `json:"failures"`
	// Stable is true when every sample succeeded with the same value.
	Stable         bool `json:"stable"`
	DistinctValues int  `json:"distinctValues"`

	Min  time.Duration `json:"min"`
	Max  time.Duration `json:"max"`
	Mean time.Duration `json:"mean"`
	P50  time.Duration `json:"p50"`
	P95  time.Duration `json:"p95"`
	P99  time.Duration `json:"p99"`
}

// Sample runs opts.Count sequential verifications of cfg, paced by a rate
// limiter. It stops early when ctx is done; the report covers the samples
// taken so far and ctx.Err() is returned.
func (v *Verifier) Sample(ctx context.Context, cfg *request.Config, opts SampleOptions) (*SampleReport, error) {
	count := opts.Count
	if count < 1 {
		count = 1
	}

	var limiter *rate.Limiter
	switch {
	case opts.Rate == 0:
		limiter = rate.NewLimiter(rate.Limit(DefaultSampleRate), 1)
	case opts.Rate > 0:
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	hist := hdrhistogram.New(minLatencyUs, maxLatencyUs, 3)
	report := &SampleReport{Results: make([]*TestResult, 0, count)}
	if cfg != nil {
		report.Path = cfg.SelectedPath
	}

	var runErr error
	for i := 0; i < count; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				runErr = err
				break
			}
		}

		r := v.VerifyPath(ctx, cfg)
		report.Results = append(report.Results, r)
		if r.Duration > 0 {
			_ = hist.RecordValue(clampLatency(r.Duration))
		}
		if opts.OnResult != nil {
			opts.OnResult(i, r)
		}

		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
	}

	report.summarize(hist)
	v.log.Debug("sampling finished",
		"path", report.Path,
		"samples", len(report.Results),
		"failures", report.Failures,
		"stable", report.Stable,
	)
	return report, runErr
}

func (r *SampleReport) summarize(hist *hdrhistogram.Histogram) {
	distinct := make(map[string]struct{})
	for _, res := range r.Results {
		if res.Success {
			r.Successes++
			distinct[valueKey(res.Value)] = struct{}{}
		} else {
			r.Failures++
		}
	}
	r.DistinctValues = len(distinct)
	r.Stable = len(r.Results) > 0 && r.Failures == 0 && r.DistinctValues == 1

	if hist.TotalCount() == 0 {
		return
	}
	r.Min = time.Duration(hist.Min()) * time.Microsecond
	r.Max = time.Duration(hist.Max()) * time.Microsecond
	r.Mean = time.Duration(hist.Mean()) * time.Microsecond
	r.P50 = time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond
	r.P95 = time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond
	r.P99 = time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond
}

func clampLatency(d time.Duration) int64 {
	us := d.Microseconds()
	if us < minLatencyUs {
		us = minLatencyUs
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}
	return us
}

// valueKey gives equal JSON values equal keys; map keys marshal sorted.
func valueKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
