package history

import (
	"strings"
	"sync"
	"time"

	"node-manager/core/node"
	"node-manager/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Statuses recorded for update runs. Validation runs reuse the
// engine's PASS/CONDITIONAL/FAIL classification.
const (
	StatusStored = "STORED"
	StatusFailed = "FAILED"
)

// Recorder persists batch summaries as audit runs. It implements
// reconcile.Reporter and hangs behind a MultiReporter next to the
// logging sink. Summaries repeat every per-record outcome, so the
// per-record events need no handling here.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.Mutex
	starts map[reconcile.Operation]time.Time
}

// NewRecorder creates an audit sink on the given connection.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: logger,
		starts: make(map[reconcile.Operation]time.Time),
	}
}

func (r *Recorder) BatchStarted(op reconcile.Operation, total int) {
	r.mu.Lock()
	r.starts[op] = time.Now()
	r.mu.Unlock()
}

func (r *Recorder) RecordWritten(reconcile.WriteResult) {}

func (r *Recorder) RecordValidated(reconcile.ValidateResult) {}

func (r *Recorder) WriteCompleted(s reconcile.WriteSummary) {
	run := Run{
		ID:         uuid.NewString(),
		Operation:  string(reconcile.OperationUpdate),
		Total:      s.Total,
		Succeeded:  s.Succeeded,
		Failed:     s.Failed,
		StartedAt:  r.takeStart(reconcile.OperationUpdate),
		FinishedAt: time.Now(),
	}

	for _, res := range s.Results {
		status := StatusStored
		if !res.OK {
			status = StatusFailed
		}
		run.Results = append(run.Results, RunResult{
			Hostname: res.Hostname,
			Status:   status,
			Outcome:  string(res.Outcome),
		})
	}

	r.persist(run)
}

func (r *Recorder) ValidateCompleted(s reconcile.ValidateSummary) {
	run := Run{
		ID:          uuid.NewString(),
		Operation:   string(reconcile.OperationValidate),
		Total:       s.Total,
		Passed:      s.Passed,
		Conditional: s.Conditional,
		Failed:      s.Failed,
		StartedAt:   r.takeStart(reconcile.OperationValidate),
		FinishedAt:  time.Now(),
	}

	for _, res := range s.Results {
		rr := RunResult{
			Hostname: res.Hostname,
			Status:   string(res.Status),
			Outcome:  string(res.Outcome),
		}
		if res.Comparison != nil {
			rr.Detail = renderDetail(res.Comparison)
		}
		run.Results = append(run.Results, rr)
	}

	r.persist(run)
}

func (r *Recorder) takeStart(op reconcile.Operation) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ts, ok := r.starts[op]; ok {
		delete(r.starts, op)
		return ts
	}
	return time.Now()
}

func (r *Recorder) persist(run Run) {
	if err := r.db.Create(&run).Error; err != nil {
		r.logger.Warn("Failed to record audit run",
			zap.String("run_id", run.ID),
			zap.String("operation", run.Operation),
			zap.Error(err))
		return
	}
	r.logger.Debug("Audit run recorded", zap.String("run_id", run.ID))
}

func renderDetail(cmp *node.ComparisonResult) string {
	parts := cmp.MismatchStrings()
	for _, key := range cmp.ExtraKeys {
		parts = append(parts, "missing: "+key)
	}
	for _, key := range cmp.UnexpectedKeys {
		parts = append(parts, "undeclared: "+key)
	}
	return strings.Join(parts, "; ")
}
