package verify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bodyServer serves each body in turn, repeating the last one.
func bodyServer(t *testing.T, bodies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		if n >= len(bodies) {
			n = len(bodies) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bodies[n]))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func priceConfig(url string) *request.Config {
	return &request.Config{Method: request.MethodGet, URL: url, SelectedPath: "output.price"}
}

func TestVerifyPath_Success(t *testing.T) {
	server, calls := bodyServer(t, `{"output":{"price":225}}`)
	checked := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := NewVerifier(pphttp.NewClient(), WithClock(func() time.Time { return checked }))

	result := v.VerifyPath(context.Background(), priceConfig(server.URL))

	assert.True(t, result.Success)
	assert.Equal(t, float64(225), result.Value)
	assert.Empty(t, result.Error)
	assert.Equal(t, FailureNone, result.Kind)
	assert.Equal(t, 200, result.Status)
	assert.Equal(t, "output.price", result.Path)
	assert.Equal(t, checked, result.CheckedAt)
	assert.Equal(t, "225", result.ValueJSON())
	assert.Equal(t, int32(1), calls.Load())
}

func TestVerifyPath_FreshCallEachTime(t *testing.T) {
	server, calls := bodyServer(t, `{"output":{"price":225}}`, `{"output":{}}`)
	v := NewVerifier(pphttp.NewClient())
	cfg := priceConfig(server.URL)

	first := v.VerifyPath(context.Background(), cfg)
	second := v.VerifyPath(context.Background(), cfg)

	assert.True(t, first.Success)
	assert.False(t, second.Success)
	assert.Equal(t, FailurePathMissing, second.Kind)
	assert.Contains(t, second.Error, "output.price")
	assert.Nil(t, second.Value)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "output.price", cfg.SelectedPath, "a failed verification keeps the selection")
}

func TestVerifyPath_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	result := NewVerifier(pphttp.NewClient()).VerifyPath(context.Background(), priceConfig(server.URL))

	assert.False(t, result.Success)
	assert.Equal(t, FailureMalformed, result.Kind)
	assert.Equal(t, 503, result.Status)
	assert.Contains(t, result.Error, "not valid JSON")
}

func TestVerifyPath_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	result := NewVerifier(pphttp.NewClient()).VerifyPath(context.Background(), priceConfig(url))

	assert.False(t, result.Success)
	assert.Equal(t, FailureNetwork, result.Kind)
	assert.NotEmpty(t, result.Error)
	assert.Zero(t, result.Status)
}

type countingExecutor struct {
	calls   int
	capture *pphttp.Capture
	err     error
}

func (e *countingExecutor) Execute(ctx context.Context, cfg *request.Config) (*pphttp.Capture, error) {
	e.calls++
	return e.capture, e.err
}

func TestVerifyPath_NoSelection(t *testing.T) {
	exec := &countingExecutor{}
	v := NewVerifier(exec)

	result := v.VerifyPath(context.Background(), &request.Config{Method: request.MethodGet, URL: "https://example.com"})
	assert.False(t, result.Success)
	assert.Equal(t, FailureNoSelection, result.Kind)
	assert.Zero(t, exec.calls)

	result = v.VerifyPath(context.Background(), nil)
	assert.Equal(t, FailureNoSelection, result.Kind)
}

func TestVerifyPath_NullLeafIsFound(t *testing.T) {
	exec := &countingExecutor{capture: &pphttp.Capture{
		Status: 200, IsJSONValid: true,
		ParsedJSON: map[string]any{"output": map[string]any{"price": nil}},
	}}

	result := NewVerifier(exec).VerifyPath(context.Background(), priceConfig("https://example.com"))
	assert.True(t, result.Success)
	assert.Nil(t, result.Value)
	assert.Equal(t, "null", result.ValueJSON())
}

func TestVerifyPath_ExecutorError(t *testing.T) {
	exec := &countingExecutor{err: errors.New("dial tcp: connection refused")}
	result := NewVerifier(exec).VerifyPath(context.Background(), priceConfig("https://example.com"))
	assert.Equal(t, FailureNetwork, result.Kind)
	assert.Equal(t, "dial tcp: connection refused", result.Error)
}

func TestCheck(t *testing.T) {
	v := NewVerifier(&countingExecutor{})
	capture := &pphttp.Capture{Status: 200, IsJSONValid: true, ParsedJSON: []any{"a", "b"}}

	result := v.Check(capture, "1")
	require.True(t, result.Success)
	assert.Equal(t, "b", result.Value)

	assert.Equal(t, FailurePathMissing, v.Check(capture, "2").Kind)
	assert.Equal(t, FailureNoSelection, v.Check(capture, "").Kind)
	assert.Equal(t, FailureNetwork, v.Check(nil, "0").Kind)
	assert.Equal(t, FailureMalformed, v.Check(&pphttp.Capture{RawText: "x", ParsedJSON: "x"}, "0").Kind)
}

func TestCheck_TruncatedBody(t *testing.T) {
	v := NewVerifier(&countingExecutor{})
	capture := &pphttp.Capture{Status: 200, RawText: `{"a":`, ParsedJSON: `{"a":`, Truncated: true}

	result := v.Check(capture, "a")
	assert.False(t, result.Success)
	assert.Equal(t, FailureMalformed, result.Kind)
	assert.Contains(t, result.Error, "truncated")
}

func TestTestResult_ValueJSON(t *testing.T) {
	var nilResult *TestResult
	assert.Empty(t, nilResult.ValueJSON())
	assert.Empty(t, (&TestResult{Success: false, Value: 1}).ValueJSON())
	assert.Equal(t, `{"a":[1,"x"]}`, (&TestResult{Success: true, Value: map[string]any{"a": []any{1, "x"}}}).ValueJSON())
	assert.Equal(t, `"225.5"`, (&TestResult{Success: true, Value: "225.5"}).ValueJSON())
}
