package dto

import "dcet-prep/internal/domain"

// GenerateRequest is the request body for both quiz and flashcard generation.
// @Description Request body for content generation
type GenerateRequest struct {
	SubjectID  int64  `json:"subject_id"`
	UnitID     int64  `json:"unit_id"`
	Difficulty string `json:"difficulty"`
}

// QuizResult is the envelope returned by quiz generation. It is constructed
// once per call and returned as-is; business failures are success:false with
// a human-readable message, never an HTTP error.
type QuizResult struct {
	Success    bool              `json:"success"`
	Difficulty string            `json:"difficulty,omitempty"`
	Message    string            `json:"message,omitempty"`
	Questions  []domain.Question `json:"questions"`
}

// FlashcardView exposes a card under both the canonical front/back names and
// the legacy question/answer aliases older clients still read.
type FlashcardView struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Front    string `json:"front"`
	Back     string `json:"back"`
}

// FlashcardResult is the envelope returned by flashcard generation.
type FlashcardResult struct {
	Success    bool            `json:"success"`
	Difficulty string          `json:"difficulty,omitempty"`
	Message    string          `json:"message,omitempty"`
	Flashcards []FlashcardView `json:"flashcards"`
}

// NewFlashcardView builds the dual-named view from a domain card.
func NewFlashcardView(card domain.Flashcard) FlashcardView {
	return FlashcardView{
		Question: card.Front,
		Answer:   card.Back,
		Front:    card.Front,
		Back:     card.Back,
	}
}
