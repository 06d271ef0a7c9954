package cmd

import (
	"errors"

	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/oracle"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
)

// Exit codes for pathpick CLI
const (
	// ExitSuccess indicates the command completed and every check passed
	ExitSuccess = 0

	// ExitVerifyFailure indicates the selected path did not resolve
	ExitVerifyFailure = 1

	// ExitManifestError indicates a manifest could not be read or failed its schema
	ExitManifestError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error or a rejected status
	ExitNetworkError = 4

	// ExitDeployError indicates the deployment collaborator refused the definition
	ExitDeployError = 5

	// ExitUsageError indicates invalid CLI usage or an invalid request definition
	ExitUsageError = 64
)

// exitError attaches an exit code to an error. When reported is set the
// error has already been shown by a formatter.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func reported(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}

func isReported(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.reported
}

func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	var (
		netErr    *pphttp.NetworkError
		statusErr *oracle.StatusError
		valErr    *request.ValidationError
		schemaErr *manifest.SchemaError
	)
	switch {
	case errors.As(err, &netErr), errors.As(err, &statusErr):
		return ExitNetworkError
	case errors.As(err, &schemaErr):
		return ExitManifestError
	case errors.As(err, &valErr):
		return ExitUsageError
	case errors.Is(err, oracle.ErrNoValue), errors.Is(err, oracle.ErrNotJSON):
		return ExitVerifyFailure
	case errors.Is(err, oracle.ErrMissingEnv):
		return ExitConfigError
	}
	return ExitVerifyFailure
}
