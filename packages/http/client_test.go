package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(method request.Method, url string) *request.Config {
	return &request.Config{Method: method, URL: url}
}

func TestClient_Execute_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/price", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"output":{"price":225}}`))
	}))
	defer server.Close()

	client := NewClient()
	capture, err := client.Execute(context.Background(), newConfig(request.MethodGet, server.URL+"/price"))

	require.NoError(t, err)
	assert.Equal(t, 200, capture.Status)
	assert.Equal(t, "OK", capture.StatusText)
	assert.Equal(t, "application/json", capture.ContentType())
	assert.True(t, capture.IsJSONValid)
	assert.Equal(t, `{"output":{"price":225}}`, capture.RawText)
	assert.Equal(t, map[string]any{"output": map[string]any{"price": float64(225)}}, capture.ParsedJSON)
}

func TestClient_Execute_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	capture, err := NewClient().Execute(context.Background(), newConfig(request.MethodGet, server.URL))

	require.NoError(t, err, "non-2xx responses are captured, not errors")
	assert.Equal(t, 502, capture.Status)
	assert.Equal(t, "Bad Gateway", capture.StatusText)
	assert.False(t, capture.IsJSONValid)
	assert.Equal(t, "<html>bad gateway</html>", capture.ParsedJSON)
	assert.False(t, capture.IsSuccess())
}

func TestClient_Execute_HeaderFiltering(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"second"}, r.Header.Values("X-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Values("X-Blank"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := newConfig(request.MethodGet, server.URL)
	cfg.Headers = []request.Header{
		{Key: "X-Token", Value: "first"},
		{Key: "Accept", Value: "application/json"},
		{Key: "X-Blank", Value: ""},
		{Key: "", Value: "orphan"},
		{Key: "X-Token", Value: "second"},
	}

	capture, err := NewClient().Execute(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 204, capture.Status)
	assert.False(t, capture.IsJSONValid, "an empty body is not JSON")
}

func TestClient_Execute_BodyRules(t *testing.T) {
	tests := []struct {
		method   request.Method
		body     string
		wantBody string
	}{
		{request.MethodPost, `{"a":1}`, `{"a":1}`},
		{request.MethodPut, `{"a":1}`, `{"a":1}`},
		{request.MethodPatch, `{"a":1}`, `{"a":1}`},
		{request.MethodGet, `{"a":1}`, ``},
		{request.MethodDelete, `{"a":1}`, ``},
		{request.MethodPost, ``, ``},
	}

	for _, tt := range tests {
		t.Run(string(tt.method)+"/"+tt.body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, string(tt.method), r.Method)
				b, _ := io.ReadAll(r.Body)
				assert.Equal(t, tt.wantBody, string(b))
				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			cfg := newConfig(tt.method, server.URL)
			cfg.Body = tt.body
			_, err := NewClient().Execute(context.Background(), cfg)
			require.NoError(t, err)
		})
	}
}

func TestClient_Execute_SingleCallNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient().Execute(context.Background(), newConfig(request.MethodGet, server.URL))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Execute_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient().Execute(context.Background(), newConfig(request.MethodGet, url))

	require.Error(t, err)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "GET", netErr.Op)
	assert.Equal(t, url, netErr.URL)
}

func TestClient_Execute_UnsupportedScheme(t *testing.T) {
	cfg := newConfig(request.MethodGet, "file:///tmp/prices.json")
	require.NoError(t, cfg.Validate().Err())

	_, err := NewClient().Execute(context.Background(), cfg)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "unsupported protocol scheme")
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Execute(context.Background(), newConfig(request.MethodGet, server.URL))

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestClient_WithDefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pathpick", r.Header.Get("User-Agent"))
		assert.Equal(t, "from-config", r.Header.Get("X-Override"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeaders(map[string]string{
		"User-Agent": "pathpick",
		"X-Override": "default",
	}))
	cfg := newConfig(request.MethodGet, server.URL)
	cfg.Headers = []request.Header{{Key: "X-Override", Value: "from-config"}}

	_, err := client.Execute(context.Background(), cfg)
	require.NoError(t, err)
}

func TestClient_WithResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/price", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"symbol":"BTC"}`, string(b))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	vars := map[string]string{"{{version}}": "v1", "{{key}}": "secret", "{{symbol}}": "BTC"}
	resolve := func(s string) string {
		for k, v := range vars {
			s = strings.ReplaceAll(s, k, v)
		}
		return s
	}

	cfg := newConfig(request.MethodPost, server.URL+"/{{version}}/price")
	cfg.Headers = []request.Header{{Key: "X-Api-Key", Value: "{{key}}"}}
	cfg.Body = `{"symbol":"{{symbol}}"}`

	_, err := NewClient(WithResolver(resolve)).Execute(context.Background(), cfg)
	require.NoError(t, err)
}

func TestClient_FollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/final" {
			_, _ = w.Write([]byte(`{"done":true}`))
			return
		}
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	capture, err := NewClient().Execute(context.Background(), newConfig(request.MethodGet, server.URL+"/start"))
	require.NoError(t, err)
	assert.Equal(t, 200, capture.Status)

	capture, err = NewClient(WithFollowRedirects(false)).Execute(context.Background(), newConfig(request.MethodGet, server.URL+"/start"))
	require.NoError(t, err)
	assert.Equal(t, 302, capture.Status)
}

func TestClient_WithMaxBodyBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"truncated": "yes"}`))
	}))
	defer server.Close()

	capture, err := NewClient(WithMaxBodyBytes(5)).Execute(context.Background(), newConfig(request.MethodGet, server.URL))
	require.NoError(t, err)
	assert.Equal(t, `{"tru`, capture.RawText)
	assert.False(t, capture.IsJSONValid)
	assert.True(t, capture.Truncated)
}

func TestClient_WithMaxBodyBytes_ExactLimit(t *testing.T) {
	body := `{"a":1}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	capture, err := NewClient(WithMaxBodyBytes(int64(len(body)))).Execute(context.Background(), newConfig(request.MethodGet, server.URL))
	require.NoError(t, err)
	assert.Equal(t, body, capture.RawText)
	assert.True(t, capture.IsJSONValid)
	assert.False(t, capture.Truncated)
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		want      any
	}{
		{"object", `{"a":1}`, true, map[string]any{"a": float64(1)}},
		{"array", `[1,"two",null]`, true, []any{float64(1), "two", nil}},
		{"number", `225`, true, float64(225)},
		{"string", `"hello"`, true, "hello"},
		{"null", `null`, true, nil},
		{"bool", `true`, true, true},
		{"plain text", `not json`, false, "not json"},
		{"empty", ``, false, ""},
		{"truncated", `{"a":`, false, `{"a":`},
		{"html", `<html></html>`, false, `<html></html>`},
		{"trailing garbage", `{"a":1} x`, false, `{"a":1} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBody(tt.raw)
			assert.Equal(t, tt.wantValid, got.IsJSONValid)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestCapture_Header(t *testing.T) {
	c := &Capture{Headers: map[string]string{"Content-Type": "application/json; charset=utf-8"}}
	assert.Equal(t, "application/json; charset=utf-8", c.Header("content-type"))
	assert.Empty(t, c.Header("X-Missing"))
}
