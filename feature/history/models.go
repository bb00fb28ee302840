package history

import (
	"time"

	"gorm.io/gorm"
)

// Run represents one recorded batch operation.
type Run struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Operation   string    `gorm:"column:operation;index" json:"operation"`
	Total       int       `gorm:"column:total" json:"total"`
	Succeeded   int       `gorm:"column:succeeded" json:"succeeded"`
	Failed      int       `gorm:"column:failed" json:"failed"`
	Passed      int       `gorm:"column:passed" json:"passed"`
	Conditional int       `gorm:"column:conditional" json:"conditional"`
	StartedAt   time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt  time.Time `gorm:"column:finished_at" json:"finished_at"`

	Results []RunResult `gorm:"foreignKey:RunID" json:"results,omitempty"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "runs"
}

// RunResult is the per-record outcome inside a run.
type RunResult struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID    string `gorm:"column:run_id;index" json:"-"`
	Hostname string `gorm:"column:hostname" json:"hostname"`
	Status   string `gorm:"column:status" json:"status"`
	Outcome  string `gorm:"column:outcome" json:"outcome"`
	Detail   string `gorm:"column:detail" json:"detail,omitempty"`
}

// TableName overrides the table name.
func (RunResult) TableName() string {
	return "run_results"
}

// Migrate creates the audit tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Run{}, &RunResult{})
}
