package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
	"github.com/nickc01/rvc-model-fetcher/internal/fetcher"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
)

// Reporter prints per-artifact progress lines and the final summary. It is
// a presentation concern only; fetch correctness never depends on it.
type Reporter struct {
	out        io.Writer
	inProgress bool
}

// Ensure Reporter implements fetcher.Observer
var _ fetcher.Observer = (*Reporter)(nil)

// New creates a reporter writing to out
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// ArtifactStarted announces a download
func (r *Reporter) ArtifactStarted(spec domain.ArtifactSpec) {
	fmt.Fprintf(r.out, "Downloading %s...\n", spec.Name())
}

// ArtifactProgress redraws the running progress line. With an unknown total
// only the byte count is shown.
func (r *Reporter) ArtifactProgress(spec domain.ArtifactSpec, written, total int64) {
	r.inProgress = true
	if total > 0 {
		pct := float64(written) / float64(total) * 100
		fmt.Fprintf(r.out, "\r  %s / %s (%.1f%%)", humanize.IBytes(uint64(written)), humanize.IBytes(uint64(total)), pct)
	} else {
		fmt.Fprintf(r.out, "\r  %s", humanize.IBytes(uint64(written)))
	}
}

// ArtifactFinished prints the outcome line for one artifact
func (r *Reporter) ArtifactFinished(result domain.FetchResult) {
	if r.inProgress {
		fmt.Fprint(r.out, "\n")
		r.inProgress = false
	}

	name := result.Spec.Name()
	switch result.Outcome {
	case domain.OutcomeSkippedExisting:
		fmt.Fprintf(r.out, "%s %s already exists, skipping...\n", okMark("✓"), name)
	case domain.OutcomeDownloaded:
		fmt.Fprintf(r.out, "%s Downloaded %s (%s)\n", okMark("✓"), name, humanize.IBytes(uint64(result.BytesWritten)))
	case domain.OutcomeFailed:
		fmt.Fprintf(r.out, "%s Failed to download %s: %s\n", failMark("✗"), name, result.ErrorDetail)
	}
}

// Summary prints the final tally and, when anything failed, a reminder of
// the models that are mandatory for voice conversion to work.
func (r *Reporter) Summary(results []domain.FetchResult, tally domain.FetchTally) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "Download Summary")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Successful: %d\n", tally.Successful)
	fmt.Fprintf(r.out, "Failed: %d\n", tally.Failed)
	fmt.Fprintln(r.out)

	if tally.Failed == 0 {
		fmt.Fprintf(r.out, "%s All models downloaded successfully!\n", okMark("✓"))
		return
	}

	fmt.Fprintf(r.out, "%s Some downloads failed. Check your internet connection and rerun; existing files are skipped.\n", warnMark("⚠"))
	for _, result := range results {
		if result.Outcome == domain.OutcomeFailed {
			fmt.Fprintf(r.out, "  failed: %s\n", result.Spec.RemotePath)
		}
	}

	var essential []string
	for _, result := range results {
		if result.Spec.Tier == domain.TierEssential {
			essential = append(essential, result.Spec.Name())
		}
	}
	if len(essential) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Note: %s are REQUIRED for voice conversion to work.\n", strings.Join(essential, ", "))
	}
}
