package domain

import (
	"context"
	"errors"
)

var (
	// ErrGeneratorUnavailable is returned by a TextGenerator whose backing
	// credential was missing or malformed at construction time. The state is
	// permanent for the process lifetime; callers must not retry a network
	// call on it.
	ErrGeneratorUnavailable = errors.New("text generator is not configured")

	// ErrNoOutput is returned when a model call was attempted but produced
	// nothing usable (network error, rate limit, empty completion).
	ErrNoOutput = errors.New("text generator produced no output")
)

// TextGenerator is the capability object wrapping a single external LLM
// call. Exactly one model call is made per invocation when available.
type TextGenerator interface {
	// Available reports whether the generator can issue model calls at all.
	Available() bool

	// GenerateQuestion asks the model for one multiple-choice question based
	// on the given study-material context. previous is a best-effort
	// "do not repeat" hint list; it does not guarantee uniqueness.
	GenerateQuestion(ctx context.Context, contextText string, previous []string) (string, error)

	// GenerateFlashcards asks the model for a batch of count flashcards in a
	// single call.
	GenerateFlashcards(ctx context.Context, contextText string, count int) (string, error)
}

// ContextRetriever supplies study-material chunks for a subject/unit.
// Implementations degrade every underlying failure (database down, cache
// error, timeout) to an empty result so that callers treat it as
// insufficient content rather than crashing the request.
type ContextRetriever interface {
	Retrieve(ctx context.Context, subjectID, unitID int64, topK int) []Chunk
}
