package history_test

import (
	"testing"
	"time"

	"node-manager/feature/history"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedRun(t *testing.T, db *gorm.DB, operation string, age time.Duration, results ...history.RunResult) history.Run {
	now := time.Now()
	run := history.Run{
		ID:         uuid.NewString(),
		Operation:  operation,
		Total:      len(results),
		StartedAt:  now.Add(-age),
		FinishedAt: now.Add(-age).Add(time.Second),
		Results:    results,
	}
	assert.NoError(t, db.Create(&run).Error)
	return run
}

func TestService_ListRuns(t *testing.T) {
	db := newAuditDB(t)
	svc := history.NewService(db, zap.NewNop())

	oldest := seedRun(t, db, "update", 3*time.Hour)
	middle := seedRun(t, db, "validate", 2*time.Hour)
	newest := seedRun(t, db, "validate", time.Hour)

	runs, err := svc.ListRuns(0)
	assert.NoError(t, err)
	assert.Len(t, runs, 3)

	// Newest first
	assert.Equal(t, newest.ID, runs[0].ID)
	assert.Equal(t, middle.ID, runs[1].ID)
	assert.Equal(t, oldest.ID, runs[2].ID)

	limited, err := svc.ListRuns(2)
	assert.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestService_GetRun(t *testing.T) {
	db := newAuditDB(t)
	svc := history.NewService(db, zap.NewNop())

	seeded := seedRun(t, db, "validate", time.Hour,
		history.RunResult{Hostname: "node-1", Status: "PASS", Outcome: "ok"},
		history.RunResult{Hostname: "node-2", Status: "FAIL", Outcome: "not_found"},
	)

	run, err := svc.GetRun(seeded.ID)
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, run.ID)
	assert.Len(t, run.Results, 2)
	assert.Equal(t, "node-1", run.Results[0].Hostname)

	_, err = svc.GetRun("missing-id")
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestService_GetStats(t *testing.T) {
	db := newAuditDB(t)
	svc := history.NewService(db, zap.NewNop())

	t.Run("Empty", func(t *testing.T) {
		stats, err := svc.GetStats()
		assert.NoError(t, err)
		assert.Equal(t, int64(0), stats.Runs)
		assert.Nil(t, stats.LastRunAt)
	})

	t.Run("Seeded", func(t *testing.T) {
		seedRun(t, db, "update", 2*time.Hour,
			history.RunResult{Hostname: "node-1", Status: history.StatusStored, Outcome: "ok"},
		)
		newest := seedRun(t, db, "validate", time.Hour,
			history.RunResult{Hostname: "node-1", Status: "PASS", Outcome: "ok"},
			history.RunResult{Hostname: "node-2", Status: "FAIL", Outcome: "not_found"},
		)

		stats, err := svc.GetStats()
		assert.NoError(t, err)
		assert.Equal(t, int64(2), stats.Runs)
		assert.Equal(t, int64(3), stats.Results)
		assert.NotNil(t, stats.LastRunAt)
		assert.WithinDuration(t, newest.FinishedAt, *stats.LastRunAt, time.Second)
	})
}
