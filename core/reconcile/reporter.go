package reconcile

import (
	"sync"

	"go.uber.org/zap"

	"node-manager/core/node"
)

// Reporter receives structured batch events. The engine holds no logging
// state of its own; whatever sink is injected here observes the run.
// Per-record events fire in input order regardless of worker count.
type Reporter interface {
	// BatchStarted fires once before the first record is processed.
	BatchStarted(op Operation, total int)

	// RecordWritten fires once per record during update batches.
	RecordWritten(result WriteResult)

	// RecordValidated fires once per record during validation batches.
	RecordValidated(result ValidateResult)

	// WriteCompleted fires after the last record of an update batch.
	WriteCompleted(summary WriteSummary)

	// ValidateCompleted fires after the last record of a validation batch.
	ValidateCompleted(summary ValidateSummary)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) BatchStarted(Operation, int)       {}
func (NopReporter) RecordWritten(WriteResult)         {}
func (NopReporter) RecordValidated(ValidateResult)    {}
func (NopReporter) WriteCompleted(WriteSummary)       {}
func (NopReporter) ValidateCompleted(ValidateSummary) {}

// ZapReporter logs batch events through a zap logger.
type ZapReporter struct {
	log *zap.Logger
}

// NewZapReporter creates a reporter backed by the given logger.
func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log}
}

func (r *ZapReporter) BatchStarted(op Operation, total int) {
	r.log.Info("Batch started",
		zap.String("operation", string(op)),
		zap.Int("total", total))
}

func (r *ZapReporter) RecordWritten(res WriteResult) {
	if res.OK {
		r.log.Info("Node updated", zap.String("hostname", res.Hostname))
		return
	}
	r.log.Warn("Node update failed",
		zap.String("hostname", res.Hostname),
		zap.String("outcome", string(res.Outcome)))
}

func (r *ZapReporter) RecordValidated(res ValidateResult) {
	host := zap.String("hostname", res.Hostname)

	switch {
	case !res.Found:
		r.log.Warn("Node absent from store", host,
			zap.String("outcome", string(res.Outcome)))
	case res.Status == node.StatusFail:
		r.log.Warn("Node validation failed", host,
			zap.Strings("mismatches", res.Comparison.MismatchStrings()),
			zap.Strings("missing_keys", res.Comparison.ExtraKeys))
	case res.Status == node.StatusConditional:
		r.log.Info("Node conditionally valid", host,
			zap.Strings("missing_keys", res.Comparison.ExtraKeys))
	default:
		r.log.Info("Node validated", host)
	}

	if res.Comparison != nil && len(res.Comparison.UnexpectedKeys) > 0 {
		r.log.Info("Node has undeclared stored fields", host,
			zap.Strings("unexpected_keys", res.Comparison.UnexpectedKeys))
	}
}

func (r *ZapReporter) WriteCompleted(s WriteSummary) {
	r.log.Info("Update operation completed",
		zap.Int("total", s.Total),
		zap.Int("succeeded", s.Succeeded),
		zap.Int("failed", s.Failed))
}

func (r *ZapReporter) ValidateCompleted(s ValidateSummary) {
	r.log.Info("Validation completed",
		zap.Int("total", s.Total),
		zap.Int("passed", s.Passed),
		zap.Int("conditional", s.Conditional),
		zap.Int("failed", s.Failed))
}

// CollectingReporter accumulates every event in memory. It backs the
// engine tests and any consumer that wants the raw event stream.
type CollectingReporter struct {
	mu sync.Mutex

	Starts            []Operation
	Writes            []WriteResult
	Validations       []ValidateResult
	WriteSummaries    []WriteSummary
	ValidateSummaries []ValidateSummary
}

func (c *CollectingReporter) BatchStarted(op Operation, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Starts = append(c.Starts, op)
}

func (c *CollectingReporter) RecordWritten(res WriteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Writes = append(c.Writes, res)
}

func (c *CollectingReporter) RecordValidated(res ValidateResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Validations = append(c.Validations, res)
}

func (c *CollectingReporter) WriteCompleted(s WriteSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WriteSummaries = append(c.WriteSummaries, s)
}

func (c *CollectingReporter) ValidateCompleted(s ValidateSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ValidateSummaries = append(c.ValidateSummaries, s)
}

// MultiReporter fans each event out to several sinks in order.
type MultiReporter struct {
	sinks []Reporter
}

// NewMultiReporter combines reporters into one.
func NewMultiReporter(sinks ...Reporter) *MultiReporter {
	return &MultiReporter{sinks: sinks}
}

func (m *MultiReporter) BatchStarted(op Operation, total int) {
	for _, s := range m.sinks {
		s.BatchStarted(op, total)
	}
}

func (m *MultiReporter) RecordWritten(res WriteResult) {
	for _, s := range m.sinks {
		s.RecordWritten(res)
	}
}

func (m *MultiReporter) RecordValidated(res ValidateResult) {
	for _, s := range m.sinks {
		s.RecordValidated(res)
	}
}

func (m *MultiReporter) WriteCompleted(sum WriteSummary) {
	for _, s := range m.sinks {
		s.WriteCompleted(sum)
	}
}

func (m *MultiReporter) ValidateCompleted(sum ValidateSummary) {
	for _, s := range m.sinks {
		s.ValidateCompleted(sum)
	}
}
