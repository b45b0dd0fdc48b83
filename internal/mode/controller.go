package mode

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/autocore/internal/coreconf"
	"github.com/AbdelazizMoustafa10m/autocore/internal/invoke"
	"github.com/AbdelazizMoustafa10m/autocore/internal/logging"
)

// Runner executes an invocation. *invoke.Driver satisfies it.
type Runner interface {
	Run(ctx context.Context, inv invoke.Invocation) error
}

// Settings describe the build tool command line.
type Settings struct {
	Tool        string
	InstanceVar string
	DryRunFlag  string
}

// Result reports what a run did. Path is set when a configuration was
// written; Invocation is set when the build tool was started.
type Result struct {
	Mode       Mode
	Name       string
	Path       string
	Invocation *invoke.Invocation
}

// Controller runs requests against a store and a build runner.
type Controller struct {
	store    *coreconf.Store
	runner   Runner
	settings Settings
	logger   *log.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger replaces the controller's logger.
func WithLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// NewController returns a Controller.
func NewController(store *coreconf.Store, runner Runner, settings Settings, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:    store,
		runner:   runner,
		settings: settings,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.New("mode")
	}
	return c
}

// Run performs one traversal of the selected pipeline. Every validation
// failure stops the run before anything is written or executed; a build
// tool failure is returned as *invoke.ExitError.
func (c *Controller) Run(ctx context.Context, req Request) (Result, error) {
	res := Result{Mode: req.Mode, Name: req.Name}

	forceTarget, err := req.Validate()
	if err != nil {
		return res, err
	}

	if req.Mode.Writes() {
		path, err := c.generate(req)
		if err != nil {
			return res, err
		}
		res.Path = path
	}

	if req.Mode.Invokes() {
		inv, err := c.build(ctx, req, forceTarget)
		if inv != nil {
			res.Invocation = inv
		}
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (c *Controller) generate(req Request) (string, error) {
	cfg, err := coreconf.Build(req.Input)
	if err != nil {
		return "", fmt.Errorf("configuration %q: %w", req.Name, err)
	}
	path, err := c.store.Write(req.Name, cfg.Entries())
	if err != nil {
		return "", err
	}
	c.logger.Info("configuration written", "name", req.Name, "path", path)
	return path, nil
}

// build always decodes from disk, so Fast mode builds exactly what New
// persisted.
func (c *Controller) build(ctx context.Context, req Request, forceTarget coreconf.Target) (*invoke.Invocation, error) {
	entries, err := c.store.Read(req.Name)
	if err != nil {
		return nil, err
	}
	frags, err := coreconf.Translate(entries, coreconf.TranslateOptions{ForceTarget: forceTarget})
	if err != nil {
		return nil, fmt.Errorf("configuration %q: %w", req.Name, err)
	}

	inv := &invoke.Invocation{
		Tool:        c.settings.Tool,
		InstanceVar: c.settings.InstanceVar,
		Instance:    req.Name,
		Fragments:   frags,
		ForceTarget: forceTarget,
		DryRun:      req.DryRun,
		DryRunFlag:  c.settings.DryRunFlag,
	}
	c.logger.Debug("starting build", "name", req.Name, "fragments", len(frags), "dry_run", req.DryRun)
	return inv, c.runner.Run(ctx, *inv)
}
