package history

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface. The audit trail is
// optional; without a database connection the feature stays disabled
// and Recorder returns nil.
type Feature struct {
	db       *gorm.DB
	recorder *Recorder
	handler  *Handler
}

// NewFeature creates a new History feature. A nil db disables it.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	f := &Feature{db: db}
	if db == nil {
		return f
	}

	f.recorder = NewRecorder(db, logger)
	f.handler = NewHandler(NewService(db, logger))
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "history"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load migrates the audit tables and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := Migrate(f.db); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Recorder returns the audit sink, nil when the feature is disabled.
func (f *Feature) Recorder() *Recorder {
	return f.recorder
}
