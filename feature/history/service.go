package history

import (
	"errors"
	"time"

	"node-manager/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run exists under the requested ID.
var ErrRunNotFound = errors.New("run not found")

const defaultListLimit = 50

// Stats aggregates the audit trail.
type Stats struct {
	Runs      int64      `json:"runs"`
	Results   int64      `json:"results"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

// Service reads the recorded audit trail.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new history service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListRuns returns the most recent runs, newest first, without their
// per-record results.
func (s *Service) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	var runs []Run
	if err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun returns one run with its per-record results.
func (s *Service) GetRun(id string) (*Run, error) {
	var run Run
	err := s.db.Preload("Results").First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetStats returns aggregate counts over the recorded runs.
func (s *Service) GetStats() (*Stats, error) {
	runs, err := database.CountRows(s.db, Run{}.TableName())
	if err != nil {
		return nil, err
	}
	results, err := database.CountRows(s.db, RunResult{}.TableName())
	if err != nil {
		return nil, err
	}

	stats := &Stats{Runs: runs, Results: results}

	if runs > 0 {
		var last Run
		if err := s.db.Order("finished_at DESC").First(&last).Error; err == nil {
			stats.LastRunAt = &last.FinishedAt
		}
	}

	return stats, nil
}
