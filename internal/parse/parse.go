// Package parse extracts structured scores and labels from free-text model
// output. A cascade tries an ordered list of sub-parsers, most confident
// first; syntactic success does not imply acceptance — range and integer
// checks are applied to every candidate regardless of which sub-parser
// produced it.
package parse

import (
	"math"
	"strconv"
	"strings"
)

// SubParser is one attempt at pulling a candidate value out of model output.
// Implementations are total: they report failure via ok, never an error.
type SubParser interface {
	// TryParse returns the raw candidate string and whether one was found.
	TryParse(text string) (string, bool)
}

// Bounds is the validation applied to numeric candidates.
type Bounds struct {
	Min      float64 `yaml:"min" json:"min"`
	Max      float64 `yaml:"max" json:"max"`
	ForceInt bool    `yaml:"force_integer" json:"force_integer"`
	IntTol   float64 `yaml:"integer_tolerance" json:"integer_tolerance"`
}

// DefaultBounds matches the common binary-indicator configuration.
func DefaultBounds() Bounds {
	return Bounds{Min: 0, Max: 1, IntTol: 0.0001}
}

// ScoreCascade parses a numeric score from model output.
type ScoreCascade struct {
	Bounds
	Subs []SubParser
}

// NewScoreCascade builds a cascade with the given bounds. When no
// sub-parsers are supplied the default catalog is used.
func NewScoreCascade(b Bounds, subs ...SubParser) ScoreCascade {
	if len(subs) == 0 {
		subs = DefaultScoreSubParsers()
	}
	return ScoreCascade{Bounds: b, Subs: subs}
}

// Parse returns the first candidate that parses as a float and passes the
// bounds checks. Candidates that match syntactically but fail validation do
// not stop the cascade; exhaustion reports ok=false.
func (c ScoreCascade) Parse(text string) (float64, bool) {
	for _, sub := range c.Subs {
		raw, ok := sub.TryParse(text)
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		// Written as one chained comparison so NaN, which fails every
		// ordering, is rejected with the rest.
		if !(score >= c.Min && score <= c.Max) {
			continue
		}
		if c.ForceInt && math.Abs(score-math.Round(score)) >= c.IntTol {
			continue
		}
		return score, true
	}
	return 0, false
}

// StringCascade parses a string label from model output. The first
// sub-parser to yield a candidate wins; there is no further validation.
type StringCascade struct {
	Subs []SubParser
}

// NewStringCascade builds a cascade, defaulting the sub-parser catalog when
// none is supplied.
func NewStringCascade(subs ...SubParser) StringCascade {
	if len(subs) == 0 {
		subs = DefaultStringSubParsers()
	}
	return StringCascade{Subs: subs}
}

// Parse returns the first candidate any sub-parser yields.
func (c StringCascade) Parse(text string) (string, bool) {
	for _, sub := range c.Subs {
		if raw, ok := sub.TryParse(text); ok {
			return raw, true
		}
	}
	return "", false
}

// DefaultScoreSubParsers returns a fresh copy of the standard numeric
// catalog, in descending order of confidence in the pattern.
func DefaultScoreSubParsers() []SubParser {
	return []SubParser{
		FloatExact{},
		NewJSONKey("score"),
		NewPattern(`"?score"?\s*:\s*"?([\w.]+)"?`, 1),
		NewPattern(`Score:\s*"?([\w.]+)"?`, 1),
		NewPattern(`Answer:\s*"?([\w.]+)"?`, 1),
		NewPattern(`\{\s*"?score"?\s*:\s*"?([\w.]+)"?\s*\}`, 1),
		NewPattern(`\{\s*"?score"?\s*:\s*"([\w.]+)"\s*\}?`, 1),
		NewPattern(`score is:?\s*"?([\w.]+)"?`, 1),
		NewPattern(`^\s*"?([\w.]+)"?\n`, 1),
	}
}

// DefaultStringSubParsers returns a fresh copy of the standard label
// catalog, in descending order of confidence in the pattern.
func DefaultStringSubParsers() []SubParser {
	return []SubParser{
		NewJSONKey("answer"),
		NewJSONKey("Answer"),
		NewPattern(`"?score"?\s*:\s*"?([\w.]+)"?`, 1),
		NewPattern(`Score:\s*"?([\w.]+)"?`, 1),
		NewPattern(`Answer:\s*"?([\w.]+)"?`, 1),
		NewPattern(`\{\s*"?score"?\s*:\s*"?([\w.]+)"?\s*\}`, 1),
		NewPattern(`\{\s*"?score"?\s*:\s*"([\w.]+)"\s*\}?`, 1),
		NewPattern(`score is:?\s*"?([\w.]+)"?`, 1),
		NewPattern(`^\s*"?([\w.]+)"?\n`, 1),
	}
}
