package history_test

import (
	"context"
	"testing"

	"node-manager/core/database"
	"node-manager/core/etcd"
	"node-manager/core/etcd/mocks"
	"node-manager/core/node"
	"node-manager/core/reconcile"
	"node-manager/feature/history"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newAuditDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, history.Migrate(db))
	return db
}

// setupMockDB creates a mock GORM DB for SQL-level assertions.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRecorder_ValidateCompleted(t *testing.T) {
	db := newAuditDB(t)
	rec := history.NewRecorder(db, zap.NewNop())

	rec.BatchStarted(reconcile.OperationValidate, 2)
	rec.ValidateCompleted(reconcile.ValidateSummary{
		Total:  2,
		Passed: 1,
		Failed: 1,
		Results: []reconcile.ValidateResult{
			{
				Hostname: "node-1",
				Status:   node.StatusPass,
				Found:    true,
				Outcome:  etcd.OutcomeOK,
				Comparison: &node.ComparisonResult{
					Status:     node.StatusPass,
					ExtraKeys:  []string{},
					Mismatches: []node.Mismatch{},
				},
			},
			{
				Hostname: "node-2",
				Status:   node.StatusFail,
				Found:    true,
				Outcome:  etcd.OutcomeOK,
				Comparison: &node.ComparisonResult{
					Status:    node.StatusFail,
					ExtraKeys: []string{"gpu_type"},
					Mismatches: []node.Mismatch{
						{Key: "ip", Declared: "10.0.0.1", Stored: "10.0.0.2"},
					},
				},
			},
		},
	})

	var runs []history.Run
	assert.NoError(t, db.Preload("Results").Find(&runs).Error)
	assert.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "validate", run.Operation)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, 1, run.Failed)
	assert.False(t, run.StartedAt.After(run.FinishedAt))
	assert.Len(t, run.Results, 2)

	assert.Equal(t, "node-1", run.Results[0].Hostname)
	assert.Equal(t, "PASS", run.Results[0].Status)
	assert.Empty(t, run.Results[0].Detail)

	assert.Equal(t, "node-2", run.Results[1].Hostname)
	assert.Equal(t, "FAIL", run.Results[1].Status)
	assert.Contains(t, run.Results[1].Detail, "ip: declared='10.0.0.1' stored='10.0.0.2'")
	assert.Contains(t, run.Results[1].Detail, "missing: gpu_type")
}

func TestRecorder_WriteCompleted(t *testing.T) {
	db := newAuditDB(t)
	rec := history.NewRecorder(db, zap.NewNop())

	rec.BatchStarted(reconcile.OperationUpdate, 2)
	rec.WriteCompleted(reconcile.WriteSummary{
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Results: []reconcile.WriteResult{
			{Hostname: "node-1", OK: true, Outcome: etcd.OutcomeOK},
			{Hostname: "node-2", Outcome: etcd.OutcomeTransportError},
		},
	})

	var runs []history.Run
	assert.NoError(t, db.Preload("Results").Find(&runs).Error)
	assert.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "update", run.Operation)
	assert.Equal(t, 1, run.Succeeded)
	assert.Equal(t, 1, run.Failed)

	assert.Equal(t, history.StatusStored, run.Results[0].Status)
	assert.Equal(t, history.StatusFailed, run.Results[1].Status)
	assert.Equal(t, "transport_error", run.Results[1].Outcome)
}

// TestRecorder_EngineWiring drives the recorder through a real engine
// batch behind a MultiReporter.
func TestRecorder_EngineWiring(t *testing.T) {
	db := newAuditDB(t)
	rec := history.NewRecorder(db, zap.NewNop())

	store := new(mocks.Client)
	store.On("Get", mock.Anything, "node-1").
		Return(etcd.GetResult{Outcome: etcd.OutcomeOK, Document: yaml.MapSlice{
			{Key: "hostname", Value: "node-1"},
		}})

	engine := reconcile.NewEngine(store, reconcile.NewMultiReporter(rec), reconcile.Options{})
	engine.ValidateAll(context.Background(), []*node.Record{
		node.FromMapping(yaml.MapSlice{{Key: "hostname", Value: "node-1"}}),
	})

	var count int64
	assert.NoError(t, db.Model(&history.Run{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecorder_PersistSQL(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	rec := history.NewRecorder(gormDB, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `runs`").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectExec("INSERT INTO `run_results`").WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	rec.WriteCompleted(reconcile.WriteSummary{
		Total:     1,
		Succeeded: 1,
		Results: []reconcile.WriteResult{
			{Hostname: "node-1", OK: true, Outcome: etcd.OutcomeOK},
		},
	})

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRecorder_PersistFailure(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	rec := history.NewRecorder(gormDB, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `runs`").WillReturnError(gorm.ErrInvalidDB)
	sqlMock.ExpectRollback()

	// A failed insert is logged, never fatal
	rec.WriteCompleted(reconcile.WriteSummary{
		Total: 1,
		Results: []reconcile.WriteResult{
			{Hostname: "node-1", Outcome: etcd.OutcomeProtocolError},
		},
	})

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
