// Package config defines the pipeline configuration: file layout, tag
// patterns, cluster definitions, extraction settings, and consolidation
// filters. One file configures the whole pipeline.
package config

import (
	"fmt"
	"path/filepath"

	"inquest/internal/consolidate"
	"inquest/internal/parse"
)

// Tags configures the inline question-marker patterns.
type Tags struct {
	// PrimaryRegex matches the question marker in a transcript line.
	PrimaryRegex string `yaml:"primary_regex" json:"primary_regex"`
	// QuestionGroup is the capture group holding the question identifier.
	QuestionGroup int `yaml:"question_group" json:"question_group"`
	// QuestionIDRegex extracts digit groups from a composite identifier.
	QuestionIDRegex string `yaml:"question_id_regex" json:"question_id_regex"`
}

// ClusterDef is one named topical grouping of questions, scored as a unit.
// Question order is irrelevant for matching; output lines are always in
// ascending transcript order.
type ClusterDef struct {
	Name      string       `yaml:"name" json:"name"`
	Prompt    string       `yaml:"prompt" json:"prompt"`
	Questions []int        `yaml:"questions" json:"questions"`
	Parser    parse.Bounds `yaml:"parser" json:"parser"`
}

// Clusters holds the cluster definitions in declared order plus the prompt
// scaffolding shared by all of them.
type Clusters struct {
	SystemPrompt    string       `yaml:"system_prompt" json:"system_prompt"`
	ClusterTemplate string       `yaml:"cluster_template" json:"cluster_template"`
	Clusters        []ClusterDef `yaml:"clusters" json:"clusters"`
}

// Names returns the cluster names in declared order.
func (c Clusters) Names() []string {
	names := make([]string, len(c.Clusters))
	for i, def := range c.Clusters {
		names[i] = def.Name
	}
	return names
}

// Def returns the definition for a cluster name.
func (c Clusters) Def(name string) (ClusterDef, bool) {
	for _, def := range c.Clusters {
		if def.Name == name {
			return def, true
		}
	}
	return ClusterDef{}, false
}

// Paths is the on-disk layout. Only Root is required; every other path
// defaults to a location under it.
type Paths struct {
	Root         string `yaml:"root" json:"root"`
	Transcripts  string `yaml:"transcripts" json:"transcripts"`
	Clustered    string `yaml:"clustered" json:"clustered"`
	RawScores    string `yaml:"raw_scores" json:"raw_scores"`
	Consolidated string `yaml:"consolidated" json:"consolidated"`
}

// TranscriptsDir is where JSON line-array transcript files live.
func (p Paths) TranscriptsDir() string {
	return p.orDefault(p.Transcripts, "resources", "transcripts", "json")
}

// ClusteredDir is where segmented transcripts are written.
func (p Paths) ClusteredDir() string {
	return p.orDefault(p.Clustered, "resources", "transcripts", "clustered")
}

// RawScoresDir is the root of the per-run score tree.
func (p Paths) RawScoresDir() string {
	return p.orDefault(p.RawScores, "results", "raw_scores")
}

// ConsolidatedFile is the consolidated CSV output path.
func (p Paths) ConsolidatedFile() string {
	return p.orDefault(p.Consolidated, "results", "consolidated.csv")
}

func (p Paths) orDefault(explicit string, parts ...string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(append([]string{p.Root}, parts...)...)
}

// Extract configures the model client used during extraction.
type Extract struct {
	RunID          string `yaml:"run_id" json:"run_id"`
	Client         string `yaml:"client" json:"client"` // "dummy" or "openai"
	Model          string `yaml:"model" json:"model"`
	BaseURL        string `yaml:"base_url" json:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env" json:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	Workers        int    `yaml:"workers" json:"workers"`
}

// Config is the root configuration document.
type Config struct {
	Paths       Paths              `yaml:"paths" json:"paths"`
	Tags        Tags               `yaml:"tags" json:"tags"`
	Clusters    Clusters           `yaml:"clusters" json:"clusters"`
	Extract     Extract            `yaml:"extract" json:"extract"`
	Consolidate consolidate.Config `yaml:"consolidate" json:"consolidate"`
}

func (c *Config) applyDefaults() {
	if c.Tags.PrimaryRegex == "" {
		c.Tags.PrimaryRegex = `^(Answered)?\s*Question\s*(.+?)\s*(Ite(ra|ar)tion.+?)?\.\.`
		if c.Tags.QuestionGroup == 0 {
			c.Tags.QuestionGroup = 2
		}
	}
	if c.Tags.QuestionGroup == 0 {
		c.Tags.QuestionGroup = 1
	}
	if c.Tags.QuestionIDRegex == "" {
		c.Tags.QuestionIDRegex = `([0-9]+)\s*\w?\s*[0-9]*`
	}
	if c.Clusters.ClusterTemplate == "" {
		c.Clusters.ClusterTemplate = "{cluster_prompt}\nBe concise.\n\n{cluster_text}"
	}
	for i := range c.Clusters.Clusters {
		b := &c.Clusters.Clusters[i].Parser
		if *b == (parse.Bounds{}) {
			*b = parse.DefaultBounds()
		}
	}
	if c.Extract.Client == "" {
		c.Extract.Client = "dummy"
	}
	if c.Extract.Workers <= 0 {
		c.Extract.Workers = 1
	}
	if c.Extract.TimeoutSeconds <= 0 {
		c.Extract.TimeoutSeconds = 60
	}
	if c.Consolidate.RespondentColumn == "" {
		c.Consolidate.RespondentColumn = "respondent_id"
	}
	if c.Consolidate.ModelColumn == "" {
		c.Consolidate.ModelColumn = "model"
	}
}

// Validate reports configuration contract violations. Malformed cluster
// content (unknown question ids, empty question lists) is deliberately not
// an error — it degrades to empty spans downstream.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Clusters.Clusters))
	for _, def := range c.Clusters.Clusters {
		if def.Name == "" {
			return fmt.Errorf("config: cluster with empty name")
		}
		if seen[def.Name] {
			return fmt.Errorf("config: duplicate cluster %q", def.Name)
		}
		seen[def.Name] = true
		if def.Parser.Min > def.Parser.Max {
			return fmt.Errorf("config: cluster %q: min score %v above max %v",
				def.Name, def.Parser.Min, def.Parser.Max)
		}
	}
	return nil
}
