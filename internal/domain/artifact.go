package domain

import "path"

// Tier groups artifacts by how much the consuming system depends on them.
// Essential artifacts are processed before optional ones and are called out
// in the failure reminder.
type Tier int

const (
	TierEssential Tier = iota
	TierOptional
)

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case TierEssential:
		return "essential"
	case TierOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name back to a Tier
func ParseTier(s string) (Tier, error) {
	switch s {
	case "essential":
		return TierEssential, nil
	case "optional":
		return TierOptional, nil
	default:
		return 0, ErrUnknownTier
	}
}

// ArtifactSpec identifies one downloadable model file. RemotePath is used
// both as the URL suffix on the remote host and as the path suffix under the
// local root, so the existence check and the write target always refer to
// the same file.
type ArtifactSpec struct {
	RemotePath string
	Tier       Tier
}

// Name returns the artifact's file name without its directory prefix
func (s ArtifactSpec) Name() string {
	return path.Base(s.RemotePath)
}

// FetchOutcome is the per-artifact result of an ensure operation
type FetchOutcome int

const (
	// OutcomeSkippedExisting means the destination already held a plausible
	// copy and no network access happened.
	OutcomeSkippedExisting FetchOutcome = iota

	// OutcomeDownloaded means the artifact was streamed to disk.
	OutcomeDownloaded

	// OutcomeFailed means the fetch failed; the batch continues.
	OutcomeFailed
)

// String returns the outcome name
func (o FetchOutcome) String() string {
	switch o {
	case OutcomeSkippedExisting:
		return "skipped_existing"
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseOutcome converts an outcome name back to a FetchOutcome
func ParseOutcome(s string) (FetchOutcome, error) {
	switch s {
	case "skipped_existing":
		return OutcomeSkippedExisting, nil
	case "downloaded":
		return OutcomeDownloaded, nil
	case "failed":
		return OutcomeFailed, nil
	default:
		return 0, ErrUnknownOutcome
	}
}

// FetchResult records what happened to a single artifact. It is created once
// per artifact and never mutated afterwards.
type FetchResult struct {
	Spec         ArtifactSpec
	Outcome      FetchOutcome
	BytesWritten int64
	ErrorDetail  string
}

// Succeeded reports whether the artifact is usable after this result,
// counting an existing plausible copy the same as a fresh download.
func (r FetchResult) Succeeded() bool {
	return r.Outcome == OutcomeSkippedExisting || r.Outcome == OutcomeDownloaded
}

// FetchTally aggregates results over one batch invocation
type FetchTally struct {
	Successful int
	Failed     int
}

// Add folds a result into the tally
func (t *FetchTally) Add(r FetchResult) {
	if r.Succeeded() {
		t.Successful++
	} else {
		t.Failed++
	}
}

// PlausibilityThreshold is the byte size above which an existing local file
// is treated as already fetched. This is a heuristic carried over from the
// original tooling, not an integrity check: a truncated file above the
// threshold is accepted as-is, and a legitimately small complete file at or
// below it is fetched again.
const PlausibilityThreshold = 1000
