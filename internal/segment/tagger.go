// Package segment turns raw transcript lines into per-cluster transcripts:
// inline question markers are extracted per line, each question's answer is
// resolved to a contiguous line span, and overlapping spans are merged into
// ordered cluster text.
package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"inquest/internal/config"
)

// Tag marks one transcript line as the start of the questions it answers.
// A line whose marker names several questions belongs to every one of their
// spans; its content is replicated, not split. An empty QuestionIDs list
// means the marker matched but carried no usable identifier — the line is
// tagged but unroutable and participates in no span.
type Tag struct {
	QuestionIDs []int
	Match       string
}

func (t *Tag) contains(qid int) bool {
	for _, id := range t.QuestionIDs {
		if id == qid {
			return true
		}
	}
	return false
}

// Tagger scans transcript lines for the configured question-marker pattern.
type Tagger struct {
	primary *regexp.Regexp
	digits  *regexp.Regexp
	group   int
	// digitGroup is 1 when the question-id regex captures a group, 0 when
	// it has none and the full match is the identifier.
	digitGroup int
}

// NewTagger compiles the configured patterns case-insensitively. A pattern
// that does not compile is a broken deployment and fails hard.
func NewTagger(cfg config.Tags) (*Tagger, error) {
	primary, err := regexp.Compile(`(?i)` + cfg.PrimaryRegex)
	if err != nil {
		return nil, fmt.Errorf("segment: compile primary regex: %w", err)
	}
	digits, err := regexp.Compile(`(?i)` + cfg.QuestionIDRegex)
	if err != nil {
		return nil, fmt.Errorf("segment: compile question-id regex: %w", err)
	}
	digitGroup := 0
	if digits.NumSubexp() >= 1 {
		digitGroup = 1
	}
	return &Tagger{primary: primary, digits: digits, group: cfg.QuestionGroup, digitGroup: digitGroup}, nil
}

// Tag produces exactly one entry per input line, in order; nil means the
// line carries no marker.
func (t *Tagger) Tag(lines []string) []*Tag {
	tags := make([]*Tag, len(lines))
	for i, line := range lines {
		tags[i] = t.tagLine(line)
	}
	return tags
}

func (t *Tagger) tagLine(line string) *Tag {
	m := t.primary.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	tag := &Tag{Match: m[0]}
	if t.group >= len(m) {
		return tag
	}
	capture := m[t.group]

	// A directly parsable identifier is a single question.
	if id, err := strconv.Atoi(strings.TrimSpace(capture)); err == nil {
		tag.QuestionIDs = []int{id}
		return tag
	}

	// Otherwise extract digit groups. Identical repeated groups are a
	// mangled single identifier (e.g. "11" captured as "1","1"); distinct
	// groups are a composite marker spanning several questions.
	groups := t.digits.FindAllStringSubmatch(capture, -1)
	var ids []int
	identical := true
	for _, g := range groups {
		if g[t.digitGroup] != groups[0][t.digitGroup] {
			identical = false
		}
		id, err := strconv.Atoi(g[t.digitGroup])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 && identical {
		ids = ids[:1]
	}
	tag.QuestionIDs = ids
	return tag
}
