package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"inquest/internal/logging"
	"inquest/internal/results"
	"inquest/internal/segment"
)

// RerunPolicy controls how existing per-respondent output files are treated.
type RerunPolicy int

const (
	// RerunNever fails when any output file already exists.
	RerunNever RerunPolicy = iota
	// RerunMissing skips respondents whose output file exists.
	RerunMissing
	// RerunOverwrite replaces every output file.
	RerunOverwrite
)

// ParseRerunPolicy maps a CLI string to a policy. An unsupported value is a
// configuration contract violation and fails hard.
func ParseRerunPolicy(s string) (RerunPolicy, error) {
	switch s {
	case "never":
		return RerunNever, nil
	case "missing":
		return RerunMissing, nil
	case "overwrite":
		return RerunOverwrite, nil
	default:
		return 0, fmt.Errorf("extract: unsupported rerun policy %q (never, missing, overwrite)", s)
	}
}

// Job is one respondent's clustered transcript to score.
type Job struct {
	RespondentID   string
	TranscriptPath string
}

// Runner scores many respondents, each independently, with bounded
// parallelism. Clusters within one respondent keep their configured order;
// respondents carry no ordering dependency between each other.
type Runner struct {
	Extractor *Extractor
	Policy    RerunPolicy
	Workers   int
	log       *slog.Logger
}

// NewRunner wires an extractor with a rerun policy and worker bound.
func NewRunner(e *Extractor, policy RerunPolicy, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{Extractor: e, Policy: policy, Workers: workers, log: logging.New("runner")}
}

// Run scores every job and writes <outDir>/<respondent-id>.jsonl per
// respondent. The rerun policy is enforced up front so a "never" violation
// aborts before any model call.
func (r *Runner) Run(ctx context.Context, jobs []Job, outDir string) error {
	pending := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		out := r.outPath(outDir, job)
		if _, err := os.Stat(out); err == nil {
			switch r.Policy {
			case RerunNever:
				return fmt.Errorf("extract: output exists and rerun policy is never: %s", out)
			case RerunMissing:
				r.log.Info("skipping existing output", slog.String("respondent", job.RespondentID))
				continue
			}
		}
		pending = append(pending, job)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for _, job := range pending {
		g.Go(func() error {
			t, err := segment.LoadTranscript(job.TranscriptPath)
			if err != nil {
				return err
			}
			recs := r.Extractor.Extract(ctx, t)
			r.log.Info("scored respondent",
				slog.String("respondent", job.RespondentID),
				slog.Int("clusters", len(recs)),
			)
			return results.SaveJSONL(r.outPath(outDir, job), recs)
		})
	}
	return g.Wait()
}

func (r *Runner) outPath(outDir string, job Job) string {
	return filepath.Join(outDir, job.RespondentID+".jsonl")
}
