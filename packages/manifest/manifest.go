package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,62}$`)

// Extension is appended to manifest file names.
const Extension = ".yaml"

// Manifest is a saved, named request with its selected path.
type Manifest struct {
	Name         string           `yaml:"name"`
	Method       request.Method   `yaml:"method"`
	URL          string           `yaml:"url"`
	Body         string           `yaml:"body,omitempty"`
	Headers      []request.Header `yaml:"headers,omitempty"`
	SelectedPath string           `yaml:"selectedPath,omitempty"`
	Verified     *Verified        `yaml:"verified,omitempty"`
}

// Verified records the value extracted by the last successful verification.
type Verified struct {
	// Value is the JSON text of the extracted value.
	Value     string `yaml:"value"`
	CheckedAt string `yaml:"checkedAt,omitempty"`
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Source string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid manifest %s: %s", e.Source, strings.Join(e.Errors, "; "))
}

// ValidateName reports whether name can be used as an oracle name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: use letters, digits, '-' or '_' (max 63 characters)", name)
	}
	return nil
}

// New builds a manifest from a config and, when successful, its last result.
// Incomplete header rows are not saved.
func New(name string, cfg *request.Config, result *verify.TestResult) *Manifest {
	m := &Manifest{
		Name:         name,
		Method:       cfg.Method,
		URL:          cfg.URL,
		SelectedPath: cfg.SelectedPath,
		Headers:      cfg.CompleteHeaders(),
	}
	if cfg.SendsBody() {
		m.Body = cfg.Body
	}
	if result != nil && result.Success {
		m.Verified = &Verified{Value: result.ValueJSON()}
		if !result.CheckedAt.IsZero() {
			m.Verified.CheckedAt = result.CheckedAt.UTC().Format(time.RFC3339)
		}
	}
	return m
}

// Config returns a request config equivalent to the manifest.
func (m *Manifest) Config() *request.Config {
	headers := make([]request.Header, len(m.Headers))
	copy(headers, m.Headers)
	return &request.Config{
		Method:       m.Method,
		URL:          m.URL,
		Body:         m.Body,
		Headers:      headers,
		SelectedPath: m.SelectedPath,
	}
}

// Parse validates data against the manifest schema and decodes it. source
// names the document in error messages.
func Parse(data []byte, source string) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", source, err)
	}
	if doc == nil {
		return nil, &SchemaError{Source: source, Errors: []string{"document is empty"}}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", source, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, &SchemaError{Source: source, Errors: errs}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", source, err)
	}

	if err := request.ValidateURL(m.URL); err != nil {
		return nil, &SchemaError{Source: source, Errors: []string{"url: " + err.Error()}}
	}

	return &m, nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Marshal encodes m as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// Save writes m to path, creating parent directories.
func Save(m *Manifest, path string) error {
	if err := ValidateName(m.Name); err != nil {
		return err
	}

	data, err := m.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// PathFor returns the file path of the manifest called name inside dir.
func PathFor(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// List returns the names of manifests in dir, sorted. A missing directory
// yields no names.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, Extension) {
			names = append(names, strings.TrimSuffix(name, Extension))
		} else if strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(name, ".yml"))
		}
	}
	return names, nil
}
