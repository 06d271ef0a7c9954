package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

// Payload is the opaque handoff at deployment time.
type Payload struct {
	Name       string
	Config     *request.Config
	TestResult *verify.TestResult
}

// Validate checks the parts of a payload every deployer relies on.
func (p Payload) Validate() error {
	if err := manifest.ValidateName(p.Name); err != nil {
		return err
	}
	if p.Config == nil {
		return errors.New("missing request config")
	}
	if p.Config.SelectedPath == "" {
		return errors.New("no path selected")
	}
	return nil
}

// Deployer receives a payload exactly once per deployment.
type Deployer interface {
	Deploy(ctx context.Context, p Payload) error
	Name() string
}

// Multi runs deployers in order and stops at the first failure.
type Multi []Deployer

func (m Multi) Deploy(ctx context.Context, p Payload) error {
	for _, d := range m {
		if err := d.Deploy(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", d.Name(), err)
		}
	}
	return nil
}

func (m Multi) Name() string {
	return "multi"
}
