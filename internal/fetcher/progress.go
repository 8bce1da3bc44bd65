package fetcher

import (
	"io"
	"time"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
)

// progressReader wraps a response body to report streaming progress
type progressReader struct {
	reader     io.Reader
	spec       domain.ArtifactSpec
	total      int64
	observer   Observer
	interval   time.Duration
	bytesRead  int64
	lastUpdate time.Time
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)

	if r.observer != nil && time.Since(r.lastUpdate) >= r.interval {
		r.observer.ArtifactProgress(r.spec, r.bytesRead, r.total)
		r.lastUpdate = time.Now()
	}

	return n, err
}
