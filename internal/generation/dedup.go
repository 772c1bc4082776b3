package generation

import "strings"

// DedupTracker records the question texts already produced during one
// generation session. Matching is exact on the normalized form (trimmed,
// lower-cased); paraphrases that differ in any character pass. The tracker
// is scoped to a single call and is not safe for concurrent use.
type DedupTracker struct {
	seen  map[string]struct{}
	order []string
}

func NewDedupTracker() *DedupTracker {
	return &DedupTracker{seen: make(map[string]struct{})}
}

// NormalizeKey returns the deduplication key for a question text.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Accept reports whether the candidate text is new to this session. New
// texts are recorded; duplicates are rejected without side effects.
func (t *DedupTracker) Accept(candidate string) bool {
	key := NormalizeKey(candidate)
	if _, dup := t.seen[key]; dup {
		return false
	}
	t.seen[key] = struct{}{}
	t.order = append(t.order, key)
	return true
}

// Len returns the number of accepted texts.
func (t *DedupTracker) Len() int {
	return len(t.order)
}

// Recent returns up to n of the most recently accepted keys, oldest first.
// The cap keeps the "do not repeat" prompt hint bounded for high target
// counts.
func (t *DedupTracker) Recent(n int) []string {
	if n <= 0 || len(t.order) == 0 {
		return nil
	}
	if len(t.order) <= n {
		return append([]string(nil), t.order...)
	}
	return append([]string(nil), t.order[len(t.order)-n:]...)
}
