package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FloatExact accepts text that is, after trimming (and fence stripping),
// exactly one number.
type FloatExact struct{}

func (FloatExact) TryParse(text string) (string, bool) {
	for _, s := range []string{strings.TrimSpace(text), stripFences(text)} {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s, true
		}
	}
	return "", false
}

// jsonObjectPattern extracts {...}-delimited substrings. Nested objects are
// not supported; the whole text is always tried first anyway.
var jsonObjectPattern = regexp.MustCompile(`(?i)(\{.*?\})`)

// JSONKey scans the text, the fence-stripped text, and every extracted
// {...} substring for a JSON object carrying the configured key.
type JSONKey struct {
	Key string
}

// NewJSONKey builds a JSONKey sub-parser for the given schema key.
func NewJSONKey(key string) JSONKey {
	return JSONKey{Key: key}
}

func (p JSONKey) TryParse(text string) (string, bool) {
	candidates := []string{text, stripFences(text)}
	for _, m := range jsonObjectPattern.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, m[1])
	}
	for _, c := range candidates {
		var obj map[string]any
		if err := json.Unmarshal([]byte(c), &obj); err != nil {
			continue
		}
		v, ok := obj[p.Key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			return val, true
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(val), true
		case nil:
			continue
		default:
			return fmt.Sprint(val), true
		}
	}
	return "", false
}

// Pattern searches case-insensitively for a regex and returns the configured
// capture group.
type Pattern struct {
	re    *regexp.Regexp
	group int
}

// NewPattern compiles expr with case-insensitive matching. The pattern
// catalog is fixed at configuration time, so a bad expression is a
// programming error and panics at construction.
func NewPattern(expr string, group int) Pattern {
	return Pattern{re: regexp.MustCompile(`(?i)` + expr), group: group}
}

func (p Pattern) TryParse(text string) (string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil || p.group >= len(m) || m[p.group] == "" {
		return "", false
	}
	return m[p.group], true
}

// Enum accepts only an exact case-insensitive match (after trimming) against
// a closed option set, returning the canonical option spelling.
type Enum struct {
	Options []string
}

func (e Enum) TryParse(text string) (string, bool) {
	s := strings.TrimSpace(text)
	for _, opt := range e.Options {
		if strings.EqualFold(s, opt) {
			return opt, true
		}
	}
	return "", false
}

// stripFences removes a surrounding markdown code fence from model output.
// Models often wrap their answer in ```json ... ``` blocks.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
