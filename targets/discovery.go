package targets

import (
	"context"
	"fmt"
	"sync"

	"github.com/victoralfred/bazelshim/pool"
	"github.com/victoralfred/bazelshim/validation"
)

// Querier runs a validated query and returns matching target labels.
// The executor satisfies this interface.
type Querier interface {
	Query(ctx context.Context, expr validation.Query, flags []validation.Flag) ([]string, error)
}

// Counter counts discovery events. The observability telemetry satisfies
// this interface.
type Counter interface {
	RecordCounter(name string, labels map[string]string)
}

// Discoverer runs one query per tracked kind and aggregates the results
// into a snapshot.
type Discoverer struct {
	querier   Querier
	root      string
	kinds     []string
	pool      pool.Pool
	telemetry Counter
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithKinds overrides the tracked kind set.
func WithKinds(kinds []string) DiscovererOption {
	return func(d *Discoverer) {
		if len(kinds) > 0 {
			d.kinds = kinds
		}
	}
}

// WithPool runs per-kind queries on the given worker pool instead of
// sequentially. Kinds have no ordering dependency between them.
func WithPool(p pool.Pool) DiscovererOption {
	return func(d *Discoverer) {
		d.pool = p
	}
}

// WithTelemetry counts per-kind discovery failures.
func WithTelemetry(c Counter) DiscovererOption {
	return func(d *Discoverer) {
		d.telemetry = c
	}
}

// NewDiscoverer creates a discoverer for the given workspace root.
func NewDiscoverer(querier Querier, root string, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		querier: querier,
		root:    root,
		kinds:   DefaultKinds,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover runs one discovery pass. A failing kind yields an empty list
// and the pass continues: one misbehaving kind never aborts discovery of
// the others. The only error return is context cancellation.
func (d *Discoverer) Discover(ctx context.Context) (*Snapshot, error) {
	results := make([][]string, len(d.kinds))

	var wg sync.WaitGroup
	for i, kind := range d.kinds {
		i, kind := i, kind
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = d.queryKind(ctx, kind)
		}
		if d.pool != nil {
			if err := d.pool.SubmitFunc(ctx, task); err != nil {
				// Pool unavailable; run in this goroutine.
				task()
			}
		} else {
			task()
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	kinds := make(map[string][]string, len(d.kinds))
	for i, kind := range d.kinds {
		labels := results[i]
		if labels == nil {
			labels = []string{}
		}
		kinds[kind] = labels
	}

	return newSnapshot(d.root, kinds), nil
}

// queryKind queries one kind. Any failure is recovered locally: the kind
// gets an empty list and a failure counter tick.
func (d *Discoverer) queryKind(ctx context.Context, kind string) []string {
	expr, err := validation.ValidateQuery(fmt.Sprintf("kind('%s', //...)", kind))
	if err != nil {
		d.countFailure(kind)
		return []string{}
	}

	labels, err := d.querier.Query(ctx, expr, nil)
	if err != nil {
		d.countFailure(kind)
		return []string{}
	}
	return labels
}

func (d *Discoverer) countFailure(kind string) {
	if d.telemetry != nil {
		d.telemetry.RecordCounter("discovery_failures_total", map[string]string{"kind": kind})
	}
}
