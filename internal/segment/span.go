package segment

import "sort"

// Span is the inclusive line-index range in which one question's answer
// occurs. Each question is assumed to occupy exactly one contiguous run of
// lines.
type Span struct {
	Start int
	End   int
}

// spanState is the per-question scanner state. The scan is an explicit
// three-state machine: untagged lines never close a span once tracking has
// started, only a different non-blank tag does.
type spanState int

const (
	spanNotStarted spanState = iota
	spanTracking
	spanClosed
)

// findSpan scans tags left to right for the single span of one question id.
// ok is false when no tag ever names the question.
func findSpan(qid int, tags []*Tag) (Span, bool) {
	var span Span
	state := spanNotStarted

	for i, tag := range tags {
		switch state {
		case spanNotStarted:
			// Lines without the id, tagged or not, are skipped until the
			// first marker naming it.
			if tag != nil && tag.contains(qid) {
				span = Span{Start: i, End: i}
				state = spanTracking
			}
		case spanTracking:
			// Untagged lines extend the span (the answer continues); a
			// repeated marker for the same id extends it too. Any other
			// marker ends the scan for this id entirely.
			if tag == nil || tag.contains(qid) {
				span.End = i
			} else {
				state = spanClosed
			}
		}
		if state == spanClosed {
			break
		}
	}
	return span, state != spanNotStarted
}

// mergeSpans sorts spans and coalesces overlapping or touching ranges into
// a minimal ordered set. A gap of at least one index keeps spans separate.
func mergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if s.Start > cur.End {
			merged = append(merged, s)
			continue
		}
		if s.End > cur.End {
			cur.End = s.End
		}
	}
	return merged
}
