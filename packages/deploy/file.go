package deploy

import (
	"context"

	"github.com/abdul-hamid-achik/pathpick/packages/manifest"
)

// FileDeployer saves the payload as a manifest in Dir.
type FileDeployer struct {
	Dir string
}

func NewFileDeployer(dir string) *FileDeployer {
	return &FileDeployer{Dir: dir}
}

func (f *FileDeployer) Name() string {
	return "file"
}

func (f *FileDeployer) Deploy(ctx context.Context, p Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return manifest.Save(manifest.New(p.Name, p.Config, p.TestResult), f.Path(p.Name))
}

// Path returns where the manifest for name is written.
func (f *FileDeployer) Path(name string) string {
	return manifest.PathFor(f.Dir, name)
}
