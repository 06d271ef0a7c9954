package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/logger"
)

const (
	createPath = "/create_oracle"
	queryPath  = "/query_oracle"

	// DefaultOperatorTimeout covers a build-and-deploy round trip on the operator side.
	DefaultOperatorTimeout = 5 * time.Minute
	maxErrorBody           = 4 << 10
)

// oracleDefinition is the body accepted by the operator's create endpoint.
type oracleDefinition struct {
	Method       string         `json:"method"`
	URL          string         `json:"url"`
	SelectedPath string         `json:"selectedPath"`
	Body         string         `json:"body,omitempty"`
	Headers      []headerRecord `json:"headers,omitempty"`
}

type headerRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OperatorDeployer posts oracle definitions to an operator service.
type OperatorDeployer struct {
	endpoint string
	client   *http.Client
	log      logger.Logger
}

type OperatorOption func(*OperatorDeployer)

func WithHTTPClient(c *http.Client) OperatorOption {
	return func(o *OperatorDeployer) {
		if c != nil {
			o.client = c
		}
	}
}

func WithLogger(l logger.Logger) OperatorOption {
	return func(o *OperatorDeployer) {
		if l != nil {
			o.log = l
		}
	}
}

func NewOperatorDeployer(endpoint string, opts ...OperatorOption) *OperatorDeployer {
	o := &OperatorDeployer{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: DefaultOperatorTimeout},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OperatorDeployer) Name() string {
	return "operator"
}

func (o *OperatorDeployer) Deploy(ctx context.Context, p Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}

	def := oracleDefinition{
		Method:       string(p.Config.Method),
		URL:          p.Config.URL,
		SelectedPath: p.Config.SelectedPath,
	}
	if p.Config.SendsBody() {
		def.Body = p.Config.Body
	}
	for _, h := range p.Config.CompleteHeaders() {
		def.Headers = append(def.Headers, headerRecord{Key: h.Key, Value: h.Value})
	}

	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal oracle definition: %w", err)
	}

	target := o.endpoint + createPath + "?" + url.Values{"name": {p.Name}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	o.log.Info("deploying oracle", "name", p.Name, "endpoint", o.endpoint, "path", def.SelectedPath)

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach operator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("operator returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	o.log.Info("oracle deployed", "name", p.Name)
	return nil
}

// OperatorResult is one operator's reported output for an oracle.
type OperatorResult struct {
	OperatorURL string         `json:"operator_url"`
	Output      map[string]any `json:"output"`
}

type queryResponse struct {
	Results []OperatorResult `json:"results"`
}

// QueryClient reads oracle outputs from an operator service.
type QueryClient struct {
	endpoint string
	client   *http.Client
}

func NewQueryClient(endpoint string, client *http.Client) *QueryClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultOperatorTimeout}
	}
	return &QueryClient{endpoint: strings.TrimRight(endpoint, "/"), client: client}
}

// Query returns the latest output of every operator running the named oracle.
func (q *QueryClient) Query(ctx context.Context, name string) ([]OperatorResult, error) {
	target := q.endpoint + queryPath + "?" + url.Values{"name": {name}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach operator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("operator returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return out.Results, nil
}
