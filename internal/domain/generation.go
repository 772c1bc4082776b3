package domain

import "strings"

// Question is a single generated multiple-choice question. A question is
// only constructed after every field passed shape validation; there are no
// partially filled questions.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Flashcard is a single generated study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Chunk is one piece of retrieved study material.
type Chunk struct {
	Text string `json:"text"`
}

// TargetCount maps a difficulty to the number of artifacts to generate.
// Unrecognized difficulties fall back to the medium count.
func TargetCount(difficulty string) int {
	switch strings.ToLower(difficulty) {
	case "easy":
		return 5
	case "medium":
		return 8
	case "hard":
		return 10
	default:
		return 8
	}
}

// JoinChunks concatenates chunk texts into a single context blob, joining
// with single spaces and skipping empty texts.
func JoinChunks(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, " ")
}
