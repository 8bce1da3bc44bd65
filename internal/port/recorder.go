package port

import (
	"time"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
)

// RunRecorder persists fetch runs and their per-artifact outcomes.
// Recording is best-effort from the fetcher's point of view: a recorder
// failure never fails the batch.
type RunRecorder interface {
	// BeginRun opens a new run and returns its identifier
	BeginRun(startedAt time.Time) (string, error)

	// RecordResult appends one artifact result to a run
	RecordResult(runID string, result domain.FetchResult) error

	// FinishRun closes a run with its final tally
	FinishRun(runID string, tally domain.FetchTally, finishedAt time.Time) error
}
