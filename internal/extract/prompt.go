// Package extract turns clustered transcripts into per-cluster score
// records: it builds one prompt per cluster, invokes the model client, and
// pulls a score out of the raw output with the parser cascade.
package extract

import (
	"strings"

	"inquest/internal/config"
	"inquest/internal/parse"
	"inquest/internal/segment"
)

// ClusterPrompt is the assembled prompt for one cluster. An empty User
// prompt means the transcript had no lines for the cluster and the model
// must not be invoked.
type ClusterPrompt struct {
	Name   string
	System string
	User   string
	Bounds parse.Bounds
}

// PromptBuilder fills the configured cluster template per cluster.
type PromptBuilder struct {
	cfg config.Clusters
}

// NewPromptBuilder builds a PromptBuilder for a cluster configuration.
func NewPromptBuilder(cfg config.Clusters) PromptBuilder {
	return PromptBuilder{cfg: cfg}
}

// Build produces prompts for every cluster of the transcript, in the
// configuration's declared order.
func (b PromptBuilder) Build(t *segment.Transcript) []ClusterPrompt {
	prompts := make([]ClusterPrompt, 0, len(t.Order))
	for _, name := range t.Order {
		cluster := t.Clusters[name]
		if cluster == nil {
			continue
		}
		p := ClusterPrompt{
			Name:   name,
			System: b.cfg.SystemPrompt,
			Bounds: cluster.Def.Parser,
		}
		if len(cluster.Lines) > 0 {
			p.User = b.fill(cluster)
		}
		prompts = append(prompts, p)
	}
	return prompts
}

func (b PromptBuilder) fill(c *segment.Cluster) string {
	text := scrub(strings.Join(c.Lines, "\n"))
	out := strings.ReplaceAll(b.cfg.ClusterTemplate, "{cluster_prompt}", c.Def.Prompt)
	return strings.ReplaceAll(out, "{cluster_text}", text)
}

// scrub removes brace characters from transcript text so they cannot be
// mistaken for template placeholders.
func scrub(text string) string {
	text = strings.ReplaceAll(text, "{", "")
	return strings.ReplaceAll(text, "}", "")
}
