package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pphttp "github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/oracle"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"explicit code", withCode(ExitDeployError, errors.New("x")), ExitDeployError},
		{"wrapped explicit code", fmt.Errorf("ctx: %w", withCode(ExitConfigError, errors.New("x"))), ExitConfigError},
		{"network", &pphttp.NetworkError{Op: "GET", URL: "http://x", Err: errors.New("refused")}, ExitNetworkError},
		{"status", &oracle.StatusError{Status: 500}, ExitNetworkError},
		{"schema", &manifest.SchemaError{Source: "a.yaml"}, ExitManifestError},
		{"validation", &request.ValidationError{FieldErrors: map[request.Field]string{request.FieldURL: "bad"}}, ExitUsageError},
		{"no value", fmt.Errorf("%w: a.b", oracle.ErrNoValue), ExitVerifyFailure},
		{"missing env", fmt.Errorf("%w: JSON_PATH", oracle.ErrMissingEnv), ExitConfigError},
		{"other", errors.New("boom"), ExitVerifyFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestReported(t *testing.T) {
	err := reported(ExitVerifyFailure, errVerificationFailed)
	assert.True(t, isReported(err))
	assert.ErrorIs(t, err, errVerificationFailed)
	assert.False(t, isReported(withCode(ExitVerifyFailure, errVerificationFailed)))
	assert.Nil(t, withCode(ExitUsageError, nil))
}
