// Package textgen wraps the external LLM behind the domain.TextGenerator
// capability. Groq serves an OpenAI-compatible API, so the LangchainGo
// OpenAI client is pointed at the Groq base URL.
package textgen

import (
	"context"
	"fmt"
	"strings"

	"dcet-prep/internal/config"
	"dcet-prep/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	// Context passed to the model is truncated to bound prompt size no
	// matter how much material retrieval returned.
	questionContextLimit  = 3000
	flashcardContextLimit = 4000

	questionTemperature  = 0.6
	questionMaxTokens    = 500
	flashcardTemperature = 0.2
	flashcardMaxTokens   = 1200

	groqKeyPrefix = "gsk_"
)

// GroqGenerator implements domain.TextGenerator. A generator constructed
// without a usable credential is permanently unavailable: every call returns
// domain.ErrGeneratorUnavailable without touching the network.
type GroqGenerator struct {
	llm    *openai.LLM
	model  string
	logger *zap.Logger
}

// NewGroqGenerator builds the generator from config. Construction never
// fails; a missing or malformed API key yields an unavailable generator so
// the rest of the application can still serve requests.
func NewGroqGenerator(cfg config.LLMConfig, logger *zap.Logger) *GroqGenerator {
	g := &GroqGenerator{model: cfg.Model, logger: logger}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" || !strings.HasPrefix(apiKey, groqKeyPrefix) {
		logger.Warn("GROQ_API_KEY missing or invalid; generation disabled")
		return g
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		logger.Error("Failed to initialize Groq client; generation disabled", zap.Error(err))
		return g
	}

	g.llm = llm
	logger.Info("Groq client initialized", zap.String("model", cfg.Model))
	return g
}

// Available reports whether model calls can be issued at all.
func (g *GroqGenerator) Available() bool {
	return g.llm != nil
}

// GenerateQuestion issues one model call for a single MCQ.
func (g *GroqGenerator) GenerateQuestion(ctx context.Context, contextText string, previous []string) (string, error) {
	if g.llm == nil {
		return "", domain.ErrGeneratorUnavailable
	}

	prompt := buildQuestionPrompt(truncate(contextText, questionContextLimit), previous)
	raw, err := g.llm.Call(ctx, prompt,
		llms.WithTemperature(questionTemperature),
		llms.WithMaxTokens(questionMaxTokens),
	)
	if err != nil {
		g.logger.Warn("MCQ generation call failed", zap.Error(err))
		return "", domain.ErrNoOutput
	}
	return raw, nil
}

// GenerateFlashcards issues one model call for a batch of count cards.
func (g *GroqGenerator) GenerateFlashcards(ctx context.Context, contextText string, count int) (string, error) {
	if g.llm == nil {
		return "", domain.ErrGeneratorUnavailable
	}

	prompt := buildFlashcardPrompt(truncate(contextText, flashcardContextLimit), count)
	raw, err := g.llm.Call(ctx, prompt,
		llms.WithTemperature(flashcardTemperature),
		llms.WithMaxTokens(flashcardMaxTokens),
	)
	if err != nil {
		g.logger.Warn("Flashcard generation call failed", zap.Error(err))
		return "", domain.ErrNoOutput
	}
	return raw, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func buildQuestionPrompt(contextText string, previous []string) string {
	prev := "None"
	if len(previous) > 0 {
		var b strings.Builder
		for _, q := range previous {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
		prev = strings.TrimSuffix(b.String(), "\n")
	}

	return fmt.Sprintf(`Generate ONE UNIQUE exam-oriented MCQ.

STRICT RULES:
- Must NOT repeat or paraphrase previous questions
- Focus on a NEW concept
- DCET / Diploma level
- Exactly 4 options
- One correct answer
- Short explanation
- Return ONLY ONE JSON object

PREVIOUS QUESTIONS:
%s

STUDY MATERIAL:
%s

JSON FORMAT ONLY:
{
  "question": "",
  "options": ["", "", "", ""],
  "correct_index": 0,
  "explanation": ""
}`, prev, contextText)
}

func buildFlashcardPrompt(contextText string, count int) string {
	return fmt.Sprintf(`Generate EXACTLY %d exam-oriented flashcards.

RULES:
- Front: Question only
- Back: Explanation only
- Simple language

STUDY MATERIAL:
%s

Return JSON ARRAY ONLY:
[
  {
    "front": "",
    "back": ""
  }
]`, count, contextText)
}

var _ domain.TextGenerator = (*GroqGenerator)(nil)
