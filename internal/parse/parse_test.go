package parse

import (
	"testing"
)

func bounds01() Bounds { return Bounds{Min: 0, Max: 1, IntTol: 0.0001} }
func bounds05() Bounds { return Bounds{Min: 0, Max: 5, IntTol: 0.0001} }

func TestScoreCascade_ExactFloat(t *testing.T) {
	c := NewScoreCascade(bounds01())
	got, ok := c.Parse("0.8")
	if !ok || got != 0.8 {
		t.Errorf("Parse(%q) = %v, %v; want 0.8, true", "0.8", got, ok)
	}
}

func TestScoreCascade_ExactFloatWithWhitespace(t *testing.T) {
	c := NewScoreCascade(bounds01())
	got, ok := c.Parse("  0.5\n")
	if !ok || got != 0.5 {
		t.Errorf("Parse = %v, %v; want 0.5, true", got, ok)
	}
}

func TestScoreCascade_JSONObject(t *testing.T) {
	c := NewScoreCascade(bounds05())
	got, ok := c.Parse(`{"score": 3}`)
	if !ok || got != 3 {
		t.Errorf("Parse = %v, %v; want 3, true", got, ok)
	}
}

func TestScoreCascade_JSONEmbeddedInProse(t *testing.T) {
	c := NewScoreCascade(bounds05())
	got, ok := c.Parse(`Sure! Here is my rating: {"score": 4} as requested.`)
	if !ok || got != 4 {
		t.Errorf("Parse = %v, %v; want 4, true", got, ok)
	}
}

func TestScoreCascade_MarkdownFence(t *testing.T) {
	c := NewScoreCascade(bounds05())
	got, ok := c.Parse("```json\n{\"score\": 3}\n```")
	if !ok || got != 3 {
		t.Errorf("Parse = %v, %v; want 3, true", got, ok)
	}
}

func TestScoreCascade_OutOfRange(t *testing.T) {
	c := NewScoreCascade(bounds05())
	if got, ok := c.Parse("7"); ok {
		t.Errorf("Parse(%q) = %v, true; want rejection", "7", got)
	}
}

func TestScoreCascade_RejectsNaN(t *testing.T) {
	c := NewScoreCascade(bounds01())
	for _, text := range []string{"NaN", "nan", `{"score": "NaN"}`} {
		if got, ok := c.Parse(text); ok {
			t.Errorf("Parse(%q) = %v, true; NaN must fail the range check", text, got)
		}
	}
}

func TestScoreCascade_ForceIntAccepts(t *testing.T) {
	b := bounds05()
	b.ForceInt = true
	c := NewScoreCascade(b)
	got, ok := c.Parse("Score: 1")
	if !ok || got != 1 {
		t.Errorf("Parse = %v, %v; want 1, true", got, ok)
	}
}

func TestScoreCascade_ForceIntRejectsFraction(t *testing.T) {
	b := bounds05()
	b.ForceInt = true
	c := NewScoreCascade(b)
	if got, ok := c.Parse("Score: 1.5"); ok {
		t.Errorf("Parse = %v, true; want rejection of non-integer", got)
	}
}

func TestScoreCascade_RejectedCandidateDoesNotStopCascade(t *testing.T) {
	// The JSON object is out of range; a later label parser still gets a
	// chance and its candidate is accepted.
	c := NewScoreCascade(bounds05())
	got, ok := c.Parse("{\"score\": 9}\nAnswer: 3")
	if !ok || got != 3 {
		t.Errorf("Parse = %v, %v; want 3, true", got, ok)
	}
}

func TestScoreCascade_Exhausted(t *testing.T) {
	c := NewScoreCascade(bounds05())
	if got, ok := c.Parse("the respondent seemed fine"); ok {
		t.Errorf("Parse = %v, true; want exhaustion", got)
	}
}

func TestScoreCascade_BareLeadingToken(t *testing.T) {
	c := NewScoreCascade(bounds05())
	got, ok := c.Parse("4\nbecause the answer was detailed")
	if !ok || got != 4 {
		t.Errorf("Parse = %v, %v; want 4, true", got, ok)
	}
}

func TestStringCascade_JSONAnswer(t *testing.T) {
	c := NewStringCascade()
	got, ok := c.Parse(`{"answer": "dutch"}`)
	if !ok || got != "dutch" {
		t.Errorf("Parse = %q, %v; want \"dutch\", true", got, ok)
	}
}

func TestStringCascade_LabelPattern(t *testing.T) {
	c := NewStringCascade()
	got, ok := c.Parse("Answer: yes")
	if !ok || got != "yes" {
		t.Errorf("Parse = %q, %v; want \"yes\", true", got, ok)
	}
}

func TestStringCascade_Exhausted(t *testing.T) {
	c := NewStringCascade()
	if got, ok := c.Parse("total gibberish"); ok {
		t.Errorf("Parse = %q, true; want exhaustion", got)
	}
}

func TestEnum_ExactCaseInsensitiveMatch(t *testing.T) {
	e := Enum{Options: []string{"Agree", "Disagree"}}
	got, ok := e.TryParse("  agree \n")
	if !ok || got != "Agree" {
		t.Errorf("TryParse = %q, %v; want canonical \"Agree\", true", got, ok)
	}
}

func TestEnum_NoSubstringMatch(t *testing.T) {
	e := Enum{Options: []string{"Agree"}}
	if got, ok := e.TryParse("I agree completely"); ok {
		t.Errorf("TryParse = %q, true; want rejection of non-exact match", got)
	}
}

func TestStringCascade_EnumVariant(t *testing.T) {
	c := NewStringCascade(Enum{Options: []string{"Yes", "No"}})
	got, ok := c.Parse("no")
	if !ok || got != "No" {
		t.Errorf("Parse = %q, %v; want \"No\", true", got, ok)
	}
}

func TestDefaultSubParsers_FreshPerCall(t *testing.T) {
	a := DefaultScoreSubParsers()
	b := DefaultScoreSubParsers()
	if len(a) != len(b) {
		t.Fatalf("catalog sizes differ: %d vs %d", len(a), len(b))
	}
	// Mutating one caller's copy must not leak into the next.
	a[0] = Enum{Options: []string{"x"}}
	if _, isEnum := DefaultScoreSubParsers()[0].(Enum); isEnum {
		t.Error("default catalog was mutated through a returned slice")
	}
}
