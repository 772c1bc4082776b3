// Package generation contains the parsing and bookkeeping units of the
// quiz/flashcard generation pipeline: tolerant JSON extraction from noisy
// model output, strict artifact validation, and per-session deduplication.
package generation

import "strings"

// sanitize strips the decorations models like to wrap around their JSON:
// <think> blocks and markdown code fences.
func sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			s = s[:thinkStart] + s[thinkEnd+len("</think>"):]
			s = strings.TrimSpace(s)
		}
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractBalanced returns the first balanced open...close run in s, starting
// at index start. Braces and brackets inside JSON strings are ignored.
func extractBalanced(s string, start int, open, close byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// ExtractObject locates the first balanced JSON object within raw text that
// may contain surrounding prose. It does not validate the payload shape.
func ExtractObject(raw string) (string, bool) {
	s := sanitize(raw)
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}
	return extractBalanced(s, start, '{', '}')
}

// ExtractArray locates the first balanced JSON array of objects within raw
// text. Arrays whose first element is not an object are skipped, matching
// the expected batch response shape.
func ExtractArray(raw string) (string, bool) {
	s := sanitize(raw)
	for start := strings.IndexByte(s, '['); start != -1; {
		rest := strings.TrimSpace(s[start+1:])
		if strings.HasPrefix(rest, "{") {
			return extractBalanced(s, start, '[', ']')
		}
		next := strings.IndexByte(s[start+1:], '[')
		if next == -1 {
			return "", false
		}
		start += 1 + next
	}
	return "", false
}
