package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"

	"node-manager/core/etcd"
	"node-manager/core/node"
)

// Engine drives batches of declared records against the key-value store.
// It is stateless across operations and safe for concurrent use as long
// as the injected reporter is.
type Engine struct {
	store    etcd.Client
	reporter Reporter
	opts     Options
}

// NewEngine creates an engine. A nil reporter is replaced with a no-op
// sink so callers that only need summaries can skip event handling.
func NewEngine(store etcd.Client, reporter Reporter, opts Options) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Engine{store: store, reporter: reporter, opts: opts}
}

// WriteAll serializes and stores every record in the batch. A failed
// record never aborts the batch; the remaining records are still
// attempted and the summary tallies both sides.
func (e *Engine) WriteAll(ctx context.Context, records []*node.Record) WriteSummary {
	e.reporter.BatchStarted(OperationUpdate, len(records))

	results := make([]WriteResult, len(records))
	e.forEach(len(records), func(i int) {
		results[i] = e.writeOne(ctx, records[i])
	})

	summary := WriteSummary{Total: len(records), Results: results}
	for _, res := range results {
		e.reporter.RecordWritten(res)
		if res.OK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	e.reporter.WriteCompleted(summary)
	return summary
}

func (e *Engine) writeOne(ctx context.Context, r *node.Record) WriteResult {
	data, err := r.Serialize()
	if err != nil {
		return WriteResult{Hostname: r.Hostname, Outcome: OutcomeEncodeFailed}
	}

	res := e.store.Put(ctx, r.Hostname, data)
	return WriteResult{Hostname: r.Hostname, OK: res.OK(), Outcome: res.Outcome}
}

// ReadOne fetches the stored document for a single identifier. It is a
// pure read with no reporting and no store mutation.
func (e *Engine) ReadOne(ctx context.Context, identifier string) etcd.GetResult {
	return e.store.Get(ctx, identifier)
}

// ValidateAll compares every record in the batch against its stored
// document and classifies each as PASS, CONDITIONAL or FAIL. Records
// absent from the store fail, with the store outcome kept so reports can
// tell an absent record from a mismatched one.
func (e *Engine) ValidateAll(ctx context.Context, records []*node.Record) ValidateSummary {
	e.reporter.BatchStarted(OperationValidate, len(records))

	results := make([]ValidateResult, len(records))
	e.forEach(len(records), func(i int) {
		results[i] = e.validateOne(ctx, records[i])
	})

	summary := ValidateSummary{Total: len(records), Results: results}
	for _, res := range results {
		e.reporter.RecordValidated(res)
		switch res.Status {
		case node.StatusPass:
			summary.Passed++
		case node.StatusConditional:
			summary.Conditional++
		default:
			summary.Failed++
		}
	}

	e.reporter.ValidateCompleted(summary)
	return summary
}

func (e *Engine) validateOne(ctx context.Context, r *node.Record) ValidateResult {
	res := e.store.Get(ctx, r.Hostname)
	if res.NotFound() {
		return ValidateResult{
			Hostname: r.Hostname,
			Status:   node.StatusFail,
			Outcome:  res.Outcome,
		}
	}

	var cmp node.ComparisonResult
	if e.opts.Strict {
		cmp = r.CompareStrict(res.Document)
	} else {
		cmp = r.CompareAgainst(res.Document)
	}

	return ValidateResult{
		Hostname:   r.Hostname,
		Status:     cmp.Status,
		Found:      true,
		Outcome:    res.Outcome,
		Comparison: &cmp,
	}
}

// forEach runs fn for every index, sequentially by default or through a
// bounded worker pool. Each index owns its slot in the results slice, so
// workers never share mutable state and reporting can stay in input
// order afterwards.
func (e *Engine) forEach(n int, fn func(int)) {
	if e.opts.Workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	g := new(errgroup.Group)
	g.SetLimit(e.opts.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
