package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
	"github.com/abdul-hamid-achik/pathpick/packages/logger"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

// Environment variable names read by ConfigFromEnv.
const (
	EnvMethod  = "HTTP_METHOD"
	EnvURL     = "REQUEST_URL"
	EnvPath    = "JSON_PATH"
	EnvBody    = "REQUEST_BODY"
	EnvHeaders = "REQUEST_HEADERS"
)

var (
	ErrNotJSON    = errors.New("response is not valid JSON")
	ErrNoValue    = errors.New("no value found at JSON path")
	ErrMissingEnv = errors.New("missing task environment")
)

// StatusError reports a response status other than 200.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Status)
}

// Output is what the task reports. Price holds the JSON text of the
// extracted value, so strings keep their quotes.
type Output struct {
	Price string `json:"price"`
}

func (o *Output) JSON() ([]byte, error) {
	return json.Marshal(o)
}

type Runner struct {
	exec verify.Executor
	log  logger.Logger
}

func NewRunner(exec verify.Executor, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{exec: exec, log: log}
}

// Run performs the task once. Unlike verification, a non-200 status fails.
func (r *Runner) Run(ctx context.Context, cfg *request.Config) (*Output, error) {
	if cfg == nil || cfg.SelectedPath == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, EnvPath)
	}

	capture, err := r.exec.Execute(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if capture.Status != http.StatusOK {
		return nil, &StatusError{Status: capture.Status}
	}
	if !capture.IsJSONValid {
		return nil, ErrNotJSON
	}

	value, ok := jsonpath.Extract(capture.ParsedJSON, cfg.SelectedPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, cfg.SelectedPath)
	}

	text, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}

	r.log.Info("oracle task completed", "path", cfg.SelectedPath, "price", string(text))
	return &Output{Price: string(text)}, nil
}

// ConfigFromEnv builds a task definition from environment variables.
// REQUEST_HEADERS is a JSON object of header names to values; when it is
// absent the request asks for JSON.
func ConfigFromEnv(getenv func(string) string) (*request.Config, error) {
	cfg := &request.Config{
		Method:       request.MethodGet,
		URL:          getenv(EnvURL),
		Body:         getenv(EnvBody),
		SelectedPath: getenv(EnvPath),
	}
	if m := getenv(EnvMethod); m != "" {
		if err := cfg.SetField(request.FieldMethod, m); err != nil {
			return nil, err
		}
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, EnvURL)
	}
	if cfg.SelectedPath == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, EnvPath)
	}

	raw := getenv(EnvHeaders)
	if raw == "" {
		cfg.AddHeader("Accept", "application/json")
	} else {
		var headers map[string]string
		if err := json.Unmarshal([]byte(raw), &headers); err != nil {
			return nil, fmt.Errorf("invalid headers JSON %q: %w", raw, err)
		}
		keys := make([]string, 0, len(headers))
		for k := range headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cfg.AddHeader(k, headers[k])
		}
	}

	if err := cfg.Validate().Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Env returns the environment variables describing cfg, the inverse of
// ConfigFromEnv.
func Env(cfg *request.Config) (map[string]string, error) {
	env := map[string]string{
		EnvMethod: string(cfg.Method),
		EnvURL:    cfg.URL,
		EnvPath:   cfg.SelectedPath,
	}
	if cfg.SendsBody() {
		env[EnvBody] = cfg.Body
	}
	if headers := cfg.CompleteHeaders(); len(headers) > 0 {
		m := make(map[string]string, len(headers))
		for _, h := range headers {
			m[h.Key] = h.Value
		}
		data, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		env[EnvHeaders] = string(data)
	}
	return env, nil
}
