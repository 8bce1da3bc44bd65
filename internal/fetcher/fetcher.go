package fetcher

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
	"github.com/nickc01/rvc-model-fetcher/internal/port"
)

// Observer receives presentation callbacks during a batch. All methods are
// called from the single goroutine driving the batch. A nil observer is
// valid and disables reporting.
type Observer interface {
	// ArtifactStarted signals that a download is about to begin
	ArtifactStarted(spec domain.ArtifactSpec)

	// ArtifactProgress reports bytes streamed so far; total is -1 when the
	// server did not declare a content length.
	ArtifactProgress(spec domain.ArtifactSpec, written, total int64)

	// ArtifactFinished delivers the final result for one artifact
	ArtifactFinished(result domain.FetchResult)
}

// Fetcher ensures artifacts exist under the local root, downloading them
// from the remote source when no plausible local copy is present.
type Fetcher struct {
	source           port.RemoteSource
	store            port.FileStore
	recorder         port.RunRecorder
	observer         Observer
	logger           *zap.Logger
	progressInterval time.Duration
}

// New creates a Fetcher. recorder and observer may be nil; a zero
// progressInterval selects the default.
func New(
	source port.RemoteSource,
	store port.FileStore,
	recorder port.RunRecorder,
	observer Observer,
	logger *zap.Logger,
	progressInterval time.Duration,
) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if progressInterval == 0 {
		progressInterval = 500 * time.Millisecond
	}
	return &Fetcher{
		source:           source,
		store:            store,
		recorder:         recorder,
		observer:         observer,
		logger:           logger,
		progressInterval: progressInterval,
	}
}

// EnsureArtifact makes sure one artifact exists under the local root.
//
// An existing destination strictly larger than the plausibility threshold is
// accepted without any network access. Otherwise the artifact is streamed
// from the remote source straight to its destination, overwriting whatever
// was there. Transport and filesystem failures are captured in the result;
// the returned error is non-nil only when ctx was canceled, which is the
// signal to abort the whole batch.
func (f *Fetcher) EnsureArtifact(ctx context.Context, spec domain.ArtifactSpec) (domain.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return f.failed(spec, err), err
	}

	if size, ok := f.store.Size(spec.RemotePath); ok && size > domain.PlausibilityThreshold {
		f.logger.Debug("artifact already present",
			zap.String("path", spec.RemotePath),
			zap.Int64("size", size))

		result := domain.FetchResult{Spec: spec, Outcome: domain.OutcomeSkippedExisting}
		if f.observer != nil {
			f.observer.ArtifactFinished(result)
		}
		return result, nil
	}

	f.logger.Debug("downloading artifact",
		zap.String("path", spec.RemotePath),
		zap.String("tier", spec.Tier.String()))

	if f.observer != nil {
		f.observer.ArtifactStarted(spec)
	}

	body, total, err := f.source.Fetch(ctx, spec.RemotePath)
	if err != nil {
		if interrupted(err) {
			return f.failed(spec, err), err
		}

		f.logger.Warn("artifact fetch failed",
			zap.String("path", spec.RemotePath),
			zap.Error(err))

		result := f.failed(spec, err)
		if f.observer != nil {
			f.observer.ArtifactFinished(result)
		}
		return result, nil
	}
	defer body.Close()

	reader := &progressReader{
		reader:   body,
		spec:     spec,
		total:    total,
		observer: f.observer,
		interval: f.progressInterval,
	}

	written, err := f.store.Write(spec.RemotePath, reader)
	if err != nil {
		// The partial destination file stays on disk; a rerun lands below
		// the plausibility threshold and re-fetches it.
		if interrupted(err) {
			return f.failed(spec, err), err
		}

		f.logger.Warn("artifact write failed",
			zap.String("path", spec.RemotePath),
			zap.Int64("bytes_written", written),
			zap.Error(err))

		result := f.failed(spec, err)
		if f.observer != nil {
			f.observer.ArtifactFinished(result)
		}
		return result, nil
	}

	f.logger.Info("artifact downloaded",
		zap.String("path", spec.RemotePath),
		zap.Int64("size", written))

	result := domain.FetchResult{
		Spec:         spec,
		Outcome:      domain.OutcomeDownloaded,
		BytesWritten: written,
	}
	if f.observer != nil {
		f.observer.ArtifactFinished(result)
	}
	return result, nil
}

// EnsureBatch processes specs strictly one at a time, essential tier first
// with the original order preserved inside each tier. Per-artifact failures
// never stop the batch; it always runs to completion over all specs unless
// ctx is canceled, in which case the results gathered so far are returned
// together with the cancellation error.
func (f *Fetcher) EnsureBatch(ctx context.Context, specs []domain.ArtifactSpec) ([]domain.FetchResult, domain.FetchTally, error) {
	ordered := orderByTier(specs)
	results := make([]domain.FetchResult, 0, len(ordered))
	var tally domain.FetchTally

	var runID string
	if f.recorder != nil {
		id, err := f.recorder.BeginRun(time.Now())
		if err != nil {
			f.logger.Warn("failed to begin history run", zap.Error(err))
		} else {
			runID = id
		}
	}

	for _, spec := range ordered {
		result, err := f.EnsureArtifact(ctx, spec)
		results = append(results, result)
		tally.Add(result)

		if runID != "" {
			if rerr := f.recorder.RecordResult(runID, result); rerr != nil {
				f.logger.Warn("failed to record result",
					zap.String("path", spec.RemotePath),
					zap.Error(rerr))
			}
		}

		if err != nil {
			f.finishRun(runID, tally)
			return results, tally, err
		}
	}

	f.finishRun(runID, tally)
	return results, tally, nil
}

func (f *Fetcher) finishRun(runID string, tally domain.FetchTally) {
	if runID == "" {
		return
	}
	if err := f.recorder.FinishRun(runID, tally, time.Now()); err != nil {
		f.logger.Warn("failed to finish history run", zap.Error(err))
	}
}

func (f *Fetcher) failed(spec domain.ArtifactSpec, err error) domain.FetchResult {
	return domain.FetchResult{
		Spec:        spec,
		Outcome:     domain.OutcomeFailed,
		ErrorDetail: err.Error(),
	}
}

// interrupted reports whether err stems from context cancellation rather
// than a genuine transport or filesystem problem.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// orderByTier stable-partitions essential specs ahead of optional ones
func orderByTier(specs []domain.ArtifactSpec) []domain.ArtifactSpec {
	ordered := make([]domain.ArtifactSpec, 0, len(specs))
	for _, spec := range specs {
		if spec.Tier == domain.TierEssential {
			ordered = append(ordered, spec)
		}
	}
	for _, spec := range specs {
		if spec.Tier != domain.TierEssential {
			ordered = append(ordered, spec)
		}
	}
	return ordered
}
