package segment

import (
	"fmt"
	"strings"

	"inquest/internal/config"
)

// Cluster is the assembled text for one cluster definition: the stripped
// lines of all member-question spans, merged and in ascending line order.
type Cluster struct {
	Def   config.ClusterDef `json:"def"`
	Lines []string          `json:"lines"`
}

// Transcript maps cluster names to assembled clusters, preserving the
// configuration's declared cluster order. One Transcript is built per input
// document and owned by the pipeline invocation that built it.
type Transcript struct {
	Order    []string            `json:"order"`
	Clusters map[string]*Cluster `json:"clusters"`
}

// Segmenter converts tagged lines into a Transcript.
type Segmenter struct {
	cfg config.Clusters
	// questionToCluster routes each question id to the cluster that owns
	// it. Last write wins when a question appears in several clusters — an
	// ambiguity the configuration is expected to avoid.
	questionToCluster map[int]string
}

// NewSegmenter builds a Segmenter for a cluster configuration.
func NewSegmenter(cfg config.Clusters) *Segmenter {
	idx := make(map[int]string)
	for _, def := range cfg.Clusters {
		for _, qid := range def.Questions {
			idx[qid] = def.Name
		}
	}
	return &Segmenter{cfg: cfg, questionToCluster: idx}
}

// Build assembles a Transcript from lines and their tags. The only error is
// a length mismatch between the two — a caller bug, not noisy input.
// Unmapped question ids and clusters whose questions never match degrade to
// empty spans and empty line lists.
func (s *Segmenter) Build(lines []string, tags []*Tag) (*Transcript, error) {
	if len(lines) != len(tags) {
		return nil, fmt.Errorf("segment: %d lines but %d tags", len(lines), len(tags))
	}

	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = stripTag(line, tags[i])
	}

	spans := make(map[int]Span)
	for qid := range s.questionToCluster {
		if span, ok := findSpan(qid, tags); ok {
			spans[qid] = span
		}
	}

	t := &Transcript{
		Order:    s.cfg.Names(),
		Clusters: make(map[string]*Cluster, len(s.cfg.Clusters)),
	}
	for _, def := range s.cfg.Clusters {
		t.Clusters[def.Name] = &Cluster{
			Def:   def,
			Lines: clusterLines(def, stripped, spans),
		}
	}
	return t, nil
}

// clusterLines concatenates the merged member-question spans of one cluster
// in ascending line order. Questions without a span contribute nothing.
func clusterLines(def config.ClusterDef, lines []string, spans map[int]Span) []string {
	var found []Span
	for _, qid := range def.Questions {
		if span, ok := spans[qid]; ok {
			found = append(found, span)
		}
	}

	var out []string
	for _, span := range mergeSpans(found) {
		out = append(out, lines[span.Start:span.End+1]...)
	}
	return out
}

// stripTag removes the matched marker substring from a line and trims the
// surrounding whitespace. Untagged lines pass through unchanged.
func stripTag(line string, tag *Tag) string {
	if tag == nil {
		return line
	}
	return strings.TrimSpace(strings.ReplaceAll(line, tag.Match, ""))
}
