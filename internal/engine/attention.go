package engine

import "github.com/tcfprep/backend/internal/model"

// DeservesAttention reports whether a question should resurface in
// practice. Never-attempted questions are excluded — "unknown" is not
// "struggling". Otherwise a question deserves attention while its
// outcome history stays within one answer of a coin flip: 3/2 is still
// contested, 5/0 is mastered and stays out of the way.
//
// Pure function over the record; it is re-evaluated live as the
// counters change and caches nothing.
func DeservesAttention(rec model.AnswerRecord) bool {
	if rec.Attempts() == 0 {
		return false
	}
	diff := rec.Correct - rec.Wrong
	if diff < 0 {
		diff = -diff
	}
	return diff < 2
}
