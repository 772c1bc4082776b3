package generation

import (
	"encoding/json"
	"errors"
	"strings"

	"dcet-prep/internal/domain"
)

// ErrMalformed is returned when the model output contains no artifact of the
// expected shape. Callers consume one attempt and move on; the error carries
// no recoverable detail beyond logging.
var ErrMalformed = errors.New("generation: malformed model response")

const optionCount = 4

// ParseQuestion extracts and validates a single multiple-choice question
// from raw model output. The extraction is tolerant of surrounding prose;
// the shape check is strict: question, exactly four options, an integer
// correct_index in range, and an explanation must all be present, or the
// whole artifact is discarded.
func ParseQuestion(raw string) (*domain.Question, error) {
	payload, ok := ExtractObject(raw)
	if !ok {
		return nil, ErrMalformed
	}

	var aux struct {
		Question     *string  `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex *int     `json:"correct_index"`
		Explanation  *string  `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(payload), &aux); err != nil {
		return nil, ErrMalformed
	}

	if aux.Question == nil || aux.Explanation == nil || aux.CorrectIndex == nil {
		return nil, ErrMalformed
	}
	if len(aux.Options) != optionCount {
		return nil, ErrMalformed
	}
	if *aux.CorrectIndex < 0 || *aux.CorrectIndex >= optionCount {
		return nil, ErrMalformed
	}

	return &domain.Question{
		Question:     *aux.Question,
		Options:      aux.Options,
		CorrectIndex: *aux.CorrectIndex,
		Explanation:  *aux.Explanation,
	}, nil
}

// ParseFlashcards extracts a JSON array of cards from raw model output and
// keeps only elements whose front and back are non-empty after trimming.
// Malformed elements are dropped silently; a batch that parses but yields
// zero valid cards is a valid empty result, not an error.
func ParseFlashcards(raw string) ([]domain.Flashcard, error) {
	payload, ok := ExtractArray(raw)
	if !ok {
		return nil, ErrMalformed
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &elements); err != nil {
		return nil, ErrMalformed
	}

	cards := make([]domain.Flashcard, 0, len(elements))
	for _, el := range elements {
		var c struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		}
		if err := json.Unmarshal(el, &c); err != nil {
			continue
		}
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		cards = append(cards, domain.Flashcard{Front: front, Back: back})
	}
	return cards, nil
}
