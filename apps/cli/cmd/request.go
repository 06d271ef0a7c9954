package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/spf13/cobra"
)

// requestFlags describe a request on the command line. A manifest, given by
// --manifest or a positional .yaml argument, supplies the defaults.
type requestFlags struct {
	method       string
	url          string
	body         string
	headers      []string
	path         string
	manifestPath string
}

func (f *requestFlags) register(cmd *cobra.Command, withPath bool) {
	cmd.Flags().StringVarP(&f.method, "method", "X", "GET", "HTTP method: GET, POST, PUT, PATCH, DELETE")
	cmd.Flags().StringVar(&f.url, "url", "", "Request URL (may also be given as the first argument)")
	cmd.Flags().StringVarP(&f.body, "data", "d", "", "Request body, sent with POST, PUT and PATCH")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, `Request header as "Key: Value" (repeatable)`)
	cmd.Flags().StringVarP(&f.manifestPath, "manifest", "m", "", "Load the request from a manifest file")
	if withPath {
		cmd.Flags().StringVarP(&f.path, "path", "p", "", "Selected JSON path, e.g. data.items.0.price")
	}
}

func isManifestFile(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// build returns the validated request config, the manifest name (if one was
// loaded) and the manifest file path.
func (f *requestFlags) build(cmd *cobra.Command, args []string) (*request.Config, string, string, error) {
	cfg, name, manifestPath, err := f.draft(cmd, args)
	if err != nil {
		return nil, "", "", err
	}
	if err := cfg.Validate().Err(); err != nil {
		return nil, "", "", withCode(ExitUsageError, err)
	}
	return cfg, name, manifestPath, nil
}

// draft is build without validation, for prefilling the wizard.
func (f *requestFlags) draft(cmd *cobra.Command, args []string) (*request.Config, string, string, error) {
	manifestPath := f.manifestPath
	if manifestPath == "" && len(args) > 0 && isManifestFile(args[0]) {
		manifestPath = args[0]
	}

	cfg := request.New()
	cfg.Headers = nil
	var name string
	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, "", "", withCode(ExitManifestError, err)
		}
		cfg = m.Config()
		name = m.Name
	}

	flags := cmd.Flags()
	if flags.Changed("method") || manifestPath == "" {
		if err := cfg.SetField(request.FieldMethod, f.method); err != nil {
			return nil, "", "", err
		}
	}
	switch {
	case f.url != "":
		cfg.URL = f.url
	case manifestPath == "" && len(args) > 0:
		cfg.URL = args[0]
	}
	if flags.Changed("data") {
		cfg.Body = f.body
	}
	for _, h := range f.headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, "", "", withCode(ExitUsageError, fmt.Errorf("invalid header %q: use \"Key: Value\"", h))
		}
		cfg.AddHeader(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if f.path != "" {
		cfg.SetSelectedPath(f.path)
	}
	return cfg, name, manifestPath, nil
}
