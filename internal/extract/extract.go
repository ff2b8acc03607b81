package extract

import (
	"context"
	"log/slog"

	"inquest/internal/llm"
	"inquest/internal/logging"
	"inquest/internal/parse"
	"inquest/internal/results"
	"inquest/internal/segment"
)

// NoClusterData marks a cluster whose transcript carried no lines; the
// model is never invoked for it.
const NoClusterData = "no cluster data"

// unusableOutput marks a cluster where every sub-parser was exhausted.
const unusableOutput = "model output unusable"

// Extractor scores one transcript cluster by cluster. Model errors and
// unparsable output are recorded per cluster, never returned — a bad answer
// for one cluster must not abort the rest.
type Extractor struct {
	prompts PromptBuilder
	client  llm.Client
	log     *slog.Logger
}

// NewExtractor wires a prompt builder and a model client.
func NewExtractor(prompts PromptBuilder, client llm.Client) *Extractor {
	return &Extractor{
		prompts: prompts,
		client:  client,
		log:     logging.New("extract"),
	}
}

// Extract returns one record per cluster, in configured cluster order.
func (e *Extractor) Extract(ctx context.Context, t *segment.Transcript) []results.ClusterScore {
	prompts := e.prompts.Build(t)
	recs := make([]results.ClusterScore, 0, len(prompts))
	for _, p := range prompts {
		recs = append(recs, e.extractCluster(ctx, p))
	}
	return recs
}

func (e *Extractor) extractCluster(ctx context.Context, p ClusterPrompt) results.ClusterScore {
	rec := results.ClusterScore{ClusterName: p.Name}

	if p.User == "" {
		rec.ErrorMessage = NoClusterData
		return rec
	}

	text, err := e.client.Invoke(ctx, p.System, p.User)
	if err != nil {
		e.log.Warn("model invocation failed",
			slog.String("cluster", p.Name),
			slog.String("error", err.Error()),
		)
		rec.ErrorMessage = err.Error()
		return rec
	}

	cascade := parse.NewScoreCascade(p.Bounds)
	score, ok := cascade.Parse(text)
	if !ok {
		e.log.Warn("no usable score in model output", slog.String("cluster", p.Name))
		rec.ErrorMessage = unusableOutput
		return rec
	}
	rec.Score = &score
	return rec
}
