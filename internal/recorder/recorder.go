package recorder

import (
	"time"

	"BreakoutSniper/internal/model"
)

// RunRecord holds everything persisted about one scan run.
type RunRecord struct {
	RunAt   time.Time
	Summary *model.RunSummary
}

// Recorder persists run history for later diagnostics. The pipeline itself
// stays stateless; nothing recorded here is read back during a run.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
