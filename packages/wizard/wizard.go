package wizard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/abdul-hamid-achik/pathpick/packages/deploy"
	"github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
	"github.com/abdul-hamid-achik/pathpick/packages/logger"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

type Wizard struct {
	mu   sync.Mutex
	busy atomic.Bool

	step      Step
	deploying bool
	cfg       *request.Config
	capture   *http.Capture
	result    *verify.TestResult
	lastErr   error
	deployErr error

	exec     verify.Executor
	verifier *verify.Verifier
	deployer deploy.Deployer
	log      logger.Logger
}

type Option func(*Wizard)

// WithConfig starts the wizard from a copy of cfg instead of an empty form.
func WithConfig(cfg *request.Config) Option {
	return func(w *Wizard) {
		if cfg != nil {
			w.cfg = cfg.Clone()
		}
	}
}

func WithDeployer(d deploy.Deployer) Option {
	return func(w *Wizard) {
		w.deployer = d
	}
}

func WithLogger(l logger.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.log = l
		}
	}
}

// New returns a wizard in the configure step. exec performs every network
// call, both the initial fetch and verifications.
func New(exec verify.Executor, opts ...Option) *Wizard {
	w := &Wizard{
		cfg:  request.New(),
		exec: exec,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.verifier = verify.NewVerifier(exec, verify.WithLogger(w.log))
	return w
}

func (w *Wizard) acquire() bool {
	return w.busy.CompareAndSwap(false, true)
}

func (w *Wizard) release() {
	w.busy.Store(false)
}

// edit applies fn to the config when editing is allowed.
func (w *Wizard) edit(fn func(*request.Config) error) error {
	if w.busy.Load() {
		return ErrBusy
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.deploying {
		return ErrDeploying
	}
	if w.step != StepConfiguring {
		return ErrConfigLocked
	}
	return fn(w.cfg)
}

func (w *Wizard) SetField(field request.Field, value string) error {
	return w.edit(func(c *request.Config) error { return c.SetField(field, value) })
}

func (w *Wizard) AddHeader(key, value string) error {
	return w.edit(func(c *request.Config) error {
		c.AddHeader(key, value)
		return nil
	})
}

func (w *Wizard) SetHeader(i int, key, value string) error {
	return w.edit(func(c *request.Config) error { return c.SetHeader(i, key, value) })
}

func (w *Wizard) RemoveHeader(i int) error {
	return w.edit(func(c *request.Config) error { return c.RemoveHeader(i) })
}

// Next advances one step. From the configure step it validates the config and
// performs exactly one request; a validation or network failure keeps the
// wizard where it is. A response that is not JSON still advances, with
// selection disabled. From the inspect step a selected path is required.
func (w *Wizard) Next(ctx context.Context) error {
	if !w.acquire() {
		return ErrBusy
	}
	defer w.release()

	w.mu.Lock()
	if w.deploying {
		w.mu.Unlock()
		return ErrDeploying
	}

	switch w.step {
	case StepConfiguring:
		if err := w.cfg.Validate().Err(); err != nil {
			w.lastErr = err
			w.mu.Unlock()
			return err
		}
		cfg := w.cfg.Clone()
		w.mu.Unlock()

		w.log.Debug("fetching response", "method", cfg.Method, "url", cfg.URL)
		capture, err := w.exec.Execute(ctx, cfg)

		w.mu.Lock()
		defer w.mu.Unlock()
		if err != nil {
			w.lastErr = err
			return err
		}
		w.capture = capture
		w.result = nil
		w.lastErr = nil
		w.step = StepInspecting
		return nil

	case StepInspecting:
		defer w.mu.Unlock()
		if w.cfg.SelectedPath == "" {
			w.lastErr = ErrNoSelection
			return ErrNoSelection
		}
		w.lastErr = nil
		w.step = StepSummarizing
		return nil

	default:
		w.mu.Unlock()
		return ErrLastStep
	}
}

// Back retreats one step without validation. It is a no-op in the first step
// and while deploying.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.deploying || w.step == StepConfiguring {
		return
	}
	w.step--
	w.lastErr = nil
}

// SelectNode records path as the selected path. Only leaves of the current
// JSON capture can be selected; any previous verification result is dropped.
func (w *Wizard) SelectNode(path jsonpath.Path) error {
	return w.selectWith(func(any) (jsonpath.Path, bool) { return path, true })
}

// SelectPath is SelectNode for an encoded path, resolved against the
// current capture.
func (w *Wizard) SelectPath(encoded string) error {
	return w.selectWith(func(parsed any) (jsonpath.Path, bool) {
		return jsonpath.Resolve(parsed, encoded)
	})
}

func (w *Wizard) selectWith(resolve func(parsed any) (jsonpath.Path, bool)) error {
	if w.busy.Load() {
		return ErrBusy
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.deploying {
		return ErrDeploying
	}
	if w.step != StepInspecting {
		return ErrWrongStep
	}
	if w.capture == nil || !w.capture.IsJSONValid {
		return ErrSelectionOff
	}

	path, ok := resolve(w.capture.ParsedJSON)
	if !ok {
		return ErrUnknownPath
	}
	if len(path) == 0 {
		return ErrRootPath
	}
	value, ok := jsonpath.Get(w.capture.ParsedJSON, path)
	if !ok {
		return ErrUnknownPath
	}
	if jsonpath.KindOf(value).IsContainer() {
		return ErrNotLeaf
	}

	encoded := path.String()
	if encoded == "" {
		return ErrRootPath
	}
	if resolved, ok := jsonpath.Resolve(w.capture.ParsedJSON, encoded); !ok || !resolved.Equal(path) {
		return ErrAmbiguousPath
	}

	w.cfg.SetSelectedPath(encoded)
	w.result = nil
	w.lastErr = nil
	return nil
}

// VerifyPath re-executes the request and extracts the selected path from the
// fresh response. The result replaces the previous one. A failed result
// leaves the selection in place.
func (w *Wizard) VerifyPath(ctx context.Context) (*verify.TestResult, error) {
	if !w.acquire() {
		return nil, ErrBusy
	}
	defer w.release()

	w.mu.Lock()
	if w.deploying {
		w.mu.Unlock()
		return nil, ErrDeploying
	}
	if w.step != StepInspecting && w.step != StepSummarizing {
		w.mu.Unlock()
		return nil, ErrWrongStep
	}
	cfg := w.cfg.Clone()
	w.mu.Unlock()

	result := w.verifier.VerifyPath(ctx, cfg)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.result = result
	return result, nil
}

// Deploy enters the terminal deploying state and hands the config and the
// last verification result to the deployer once.
func (w *Wizard) Deploy(ctx context.Context, name string) error {
	if !w.acquire() {
		return ErrBusy
	}
	defer w.release()

	w.mu.Lock()
	if w.deploying {
		w.mu.Unlock()
		return ErrDeploying
	}
	if w.step != StepSummarizing {
		w.mu.Unlock()
		return ErrWrongStep
	}
	if w.deployer == nil {
		w.mu.Unlock()
		return ErrNoDeployer
	}
	payload := deploy.Payload{Name: name, Config: w.cfg.Clone(), TestResult: w.result}
	if err := payload.Validate(); err != nil {
		w.lastErr = err
		w.mu.Unlock()
		return err
	}
	w.deploying = true
	w.mu.Unlock()

	w.log.Info("handing off to deployer", "deployer", w.deployer.Name(), "name", name)
	err := w.deployer.Deploy(ctx, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.deployErr = err
	return err
}

// Snapshot returns the current state.
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	validation := w.cfg.Validate()
	return State{
		Step:       w.step,
		Deploying:  w.deploying,
		Busy:       w.busy.Load(),
		Config:     w.cfg.Clone(),
		Validation: validation,
		Capture:    w.capture,
		Result:     w.result,
		LastErr:    w.lastErr,
		DeployErr:  w.deployErr,
		Valid: [3]bool{
			validation.Valid,
			w.cfg.SelectedPath != "",
			true,
		},
	}
}
