package segment

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"inquest/internal/config"
)

func defaultTags() config.Tags {
	return config.Tags{
		PrimaryRegex:    `^(Answered)?\s*Question\s*(.+?)\s*(Ite(ra|ar)tion.+?)?\.\.`,
		QuestionGroup:   2,
		QuestionIDRegex: `([0-9]+)\s*\w?\s*[0-9]*`,
	}
}

func mustTagger(t *testing.T) *Tagger {
	t.Helper()
	tagger, err := NewTagger(defaultTags())
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	return tagger
}

func TestTagger_NoMarker(t *testing.T) {
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"just a plain answer line"})
	if tags[0] != nil {
		t.Errorf("tag = %+v, want nil", tags[0])
	}
}

func TestTagger_OneTagPerLine(t *testing.T) {
	tagger := mustTagger(t)
	lines := []string{"Question 1.. hello", "more text", "Question 2.. bye"}
	tags := tagger.Tag(lines)
	if len(tags) != len(lines) {
		t.Fatalf("len(tags) = %d, want %d", len(tags), len(lines))
	}
	if tags[0] == nil || tags[1] != nil || tags[2] == nil {
		t.Errorf("tag placement = [%v %v %v], want [tag nil tag]", tags[0], tags[1], tags[2])
	}
}

func TestTagger_GrouplessQuestionIDRegex(t *testing.T) {
	cfg := defaultTags()
	cfg.QuestionIDRegex = `[0-9]+`
	tagger, err := NewTagger(cfg)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}

	tags := tagger.Tag([]string{"Question 1/6.. answer"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if diff := cmp.Diff([]int{1, 6}, tags[0].QuestionIDs); diff != "" {
		t.Errorf("QuestionIDs mismatch:\n%s", diff)
	}
}

func TestTagger_DirectInteger(t *testing.T) {
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"Question 11.. answer starts here"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if diff := cmp.Diff([]int{11}, tags[0].QuestionIDs); diff != "" {
		t.Errorf("QuestionIDs mismatch:\n%s", diff)
	}
	if tags[0].Match == "" {
		t.Error("expected matched substring to be recorded")
	}
}

func TestTagger_CompositeMarker(t *testing.T) {
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"Question 1/6.. shared answer"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if diff := cmp.Diff([]int{1, 6}, tags[0].QuestionIDs); diff != "" {
		t.Errorf("QuestionIDs mismatch:\n%s", diff)
	}
}

func TestTagger_RepeatedDigitsCollapse(t *testing.T) {
	// A mangled capture like "1 1" is a single question, not two.
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"Question 1 1.. answer"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if diff := cmp.Diff([]int{1}, tags[0].QuestionIDs); diff != "" {
		t.Errorf("QuestionIDs mismatch:\n%s", diff)
	}
}

func TestTagger_UnroutableMarker(t *testing.T) {
	// The marker matches but carries no digits: tagged, empty id list.
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"Question ??.. something"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if len(tags[0].QuestionIDs) != 0 {
		t.Errorf("QuestionIDs = %v, want empty", tags[0].QuestionIDs)
	}
}

func TestTagger_CaseInsensitive(t *testing.T) {
	tagger := mustTagger(t)
	tags := tagger.Tag([]string{"question 3.. lower-case marker"})
	if tags[0] == nil {
		t.Fatal("expected a tag")
	}
	if diff := cmp.Diff([]int{3}, tags[0].QuestionIDs); diff != "" {
		t.Errorf("QuestionIDs mismatch:\n%s", diff)
	}
}

func TestNewTagger_BadPattern(t *testing.T) {
	cfg := defaultTags()
	cfg.PrimaryRegex = `([unclosed`
	if _, err := NewTagger(cfg); err == nil {
		t.Fatal("expected error for invalid primary regex")
	}
}
