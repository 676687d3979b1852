package replay

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/san-kum/diffbot/internal/pipeline"
)

// Factory builds an independent pipeline. Each comparison member gets its
// own estimator and controller, so members share no state.
type Factory func() (*pipeline.Pipeline, error)

// Comparison replays one recording through several named pipelines
// concurrently.
type Comparison struct {
	factories map[string]Factory
	logger    *zap.Logger
}

func NewComparison(logger *zap.Logger) *Comparison {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparison{factories: make(map[string]Factory), logger: logger}
}

func (c *Comparison) Add(name string, f Factory) { c.factories[name] = f }

func (c *Comparison) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run returns the result of every member that finished. Errors of failed
// members are combined.
func (c *Comparison) Run(ctx context.Context, rec *Recording) (map[string]*Result, error) {
	names := c.Names()
	results := make([]*Result, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			p, err := c.factories[name]()
			if err != nil {
				errs[idx] = errors.Wrap(err, name)
				return
			}
			results[idx], err = Run(ctx, p, rec, c.logger.With(zap.String("member", name)))
			if err != nil {
				errs[idx] = errors.Wrap(err, name)
			}
		}(i, name)
	}

	wg.Wait()

	out := make(map[string]*Result, len(names))
	for i, name := range names {
		if results[i] != nil && errs[i] == nil {
			out[name] = results[i]
		}
	}
	return out, multierr.Combine(errs...)
}
