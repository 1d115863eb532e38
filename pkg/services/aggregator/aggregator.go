package aggregator

import (
	"context"
	"fmt"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds how many report modules collect at once. Provider
// API throttling, not CPU, is the scarce resource here.
const defaultConcurrency = 3

// Result is one report's output for a run, in registry order.
type Result struct {
	Name           string
	Title          string
	Table          *domain.Table
	Presentation   domain.Presentation
	Savings        float64
	DisplaySavings bool
}

// Aggregator owns the context of a single engine run: which reports exist,
// how to reach the provider, and the tunable parameter values.
type Aggregator struct {
	registry    reports.Registry
	collector   reports.Collector
	paramValues map[string]params.Values
	concurrency int
}

type Option func(*Aggregator)

// WithParams supplies per-module parameter values, keyed by report name.
func WithParams(values map[string]params.Values) Option {
	return func(a *Aggregator) {
		a.paramValues = values
	}
}

// WithConcurrency overrides the module fan-out bound.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func New(registry reports.Registry, collector reports.Collector, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry:    registry,
		collector:   collector,
		paramValues: map[string]params.Values{},
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the selected reports against the scope and returns their
// results in registration order. An empty selection runs every registered
// report.
//
// Parameters are applied before any collection starts: an invalid value
// aborts the run without touching the provider. Collection failures degrade
// inside each module; an error out of CollectAndScore or a schema mismatch is
// an engine defect and aborts the run.
func (a *Aggregator) Run(ctx context.Context, scope domain.Scope, selected []string) ([]Result, error) {
	names, err := a.resolveNames(selected)
	if err != nil {
		return nil, err
	}

	modules := make([]reports.Module, len(names))
	for i, name := range names {
		module, err := a.registry.Create(name, a.collector)
		if err != nil {
			return nil, err
		}
		if err := a.configure(module); err != nil {
			return nil, fmt.Errorf("failed to configure report %q: %w", name, err)
		}
		modules[i] = module
	}

	logger := zerolog.Ctx(ctx)
	results := make([]Result, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, module := range modules {
		i, module := i, module
		g.Go(func() error {
			logger.Info().Str("report", module.Name()).Msg("running report")

			table, err := module.CollectAndScore(gctx, scope)
			if err != nil {
				return fmt.Errorf("report %q failed: %w", module.Name(), err)
			}
			if err := reports.ValidateColumns(module, table); err != nil {
				return err
			}

			results[i] = Result{
				Name:           module.Name(),
				Title:          module.Title(),
				Table:          table,
				Presentation:   module.Presentation(),
				Savings:        module.EstimatedSavings(true),
				DisplaySavings: module.DisplaySavings(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (a *Aggregator) resolveNames(selected []string) ([]string, error) {
	registered := a.registry.Names()
	if len(selected) == 0 {
		return registered, nil
	}

	known := make(map[string]struct{}, len(registered))
	for _, name := range registered {
		known[name] = struct{}{}
	}
	for _, name := range selected {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown report %q", name)
		}
	}
	return selected, nil
}

func (a *Aggregator) configure(module reports.Module) error {
	configurable, ok := module.(reports.Configurable)
	if !ok {
		return nil
	}
	return configurable.Configure(a.paramValues[module.Name()])
}
