package service

import (
	"context"
	"errors"

	"dcet-prep/internal/domain"
	"dcet-prep/internal/dto"
	"dcet-prep/internal/generation"
	"dcet-prep/internal/logger"

	"go.uber.org/zap"
)

const (
	// Context shorter than this is not enough material to generate from.
	minContextLength = 200

	// attemptMultiplier bounds the retry loop: budget = target * multiplier.
	attemptMultiplier = 4

	// Retrieval breadth differs by artifact kind to balance context
	// coverage against prompt token budget.
	questionTopK  = 40
	flashcardTopK = 30

	// The "do not repeat" hint list sent to the model is capped to keep
	// prompt growth bounded at high target counts.
	maxPreviousHints = 20

	msgInsufficientContent = "Insufficient content"
	msgGenerationFailed    = "MCQ generation failed"
)

// GenerationService turns retrieved study material into quiz questions or
// flashcards. Both operations are total: every failure mode is returned as
// a success:false envelope, never as an error.
type GenerationService interface {
	GenerateQuiz(ctx context.Context, subjectID, unitID int64, difficulty string) *dto.QuizResult
	GenerateFlashcards(ctx context.Context, subjectID, unitID int64, difficulty string) *dto.FlashcardResult
}

type generationService struct {
	generator domain.TextGenerator
	retriever domain.ContextRetriever
}

// NewGenerationService wires the orchestrator with its two collaborators.
func NewGenerationService(generator domain.TextGenerator, retriever domain.ContextRetriever) GenerationService {
	return &generationService{
		generator: generator,
		retriever: retriever,
	}
}

// GenerateQuiz drives the bounded-retry loop: it keeps invoking the model
// until the difficulty's target count of unique, well-formed questions is
// collected or the attempt budget is spent. Partial results are a success;
// only zero accepted questions is a failure.
func (s *generationService) GenerateQuiz(ctx context.Context, subjectID, unitID int64, difficulty string) *dto.QuizResult {
	l := logger.Get()

	target := domain.TargetCount(difficulty)
	chunks := s.retriever.Retrieve(ctx, subjectID, unitID, questionTopK)
	contextText := domain.JoinChunks(chunks)
	if len(contextText) < minContextLength {
		l.Info("Quiz generation short-circuited on insufficient content",
			zap.Int64("subject_id", subjectID),
			zap.Int64("unit_id", unitID),
			zap.Int("context_len", len(contextText)))
		return failedQuiz(msgInsufficientContent)
	}

	tracker := generation.NewDedupTracker()
	budget := target * attemptMultiplier
	questions := make([]domain.Question, 0, target)

	for attempts := 0; len(questions) < target && attempts < budget; attempts++ {
		raw, err := s.generator.GenerateQuestion(ctx, contextText, tracker.Recent(maxPreviousHints))
		if err != nil {
			// Unavailable and no-output both consume an attempt and keep
			// the loop going; the budget is the only terminator.
			if !errors.Is(err, domain.ErrGeneratorUnavailable) {
				l.Debug("MCQ attempt produced no output", zap.Error(err))
			}
			continue
		}

		q, err := generation.ParseQuestion(raw)
		if err != nil {
			l.Debug("Discarding malformed MCQ response")
			continue
		}

		if !tracker.Accept(q.Question) {
			continue
		}
		questions = append(questions, *q)
	}

	if len(questions) == 0 {
		l.Warn("Quiz generation exhausted its attempt budget with no accepted questions",
			zap.Int64("subject_id", subjectID),
			zap.Int64("unit_id", unitID),
			zap.Int("budget", budget))
		return failedQuiz(msgGenerationFailed)
	}

	l.Info("Quiz generated",
		zap.Int64("subject_id", subjectID),
		zap.Int64("unit_id", unitID),
		zap.String("difficulty", difficulty),
		zap.Int("requested", target),
		zap.Int("generated", len(questions)))

	return &dto.QuizResult{
		Success:    true,
		Difficulty: difficulty,
		Questions:  questions,
	}
}

// GenerateFlashcards issues exactly one batch call and returns whatever
// valid cards the parser extracted. Once the context precondition is met
// the result is a success even when the card list comes back empty.
func (s *generationService) GenerateFlashcards(ctx context.Context, subjectID, unitID int64, difficulty string) *dto.FlashcardResult {
	l := logger.Get()

	count := domain.TargetCount(difficulty)
	chunks := s.retriever.Retrieve(ctx, subjectID, unitID, flashcardTopK)
	contextText := domain.JoinChunks(chunks)
	if len(contextText) < minContextLength {
		l.Info("Flashcard generation short-circuited on insufficient content",
			zap.Int64("subject_id", subjectID),
			zap.Int64("unit_id", unitID),
			zap.Int("context_len", len(contextText)))
		return &dto.FlashcardResult{
			Success:    false,
			Message:    msgInsufficientContent,
			Flashcards: []dto.FlashcardView{},
		}
	}

	views := []dto.FlashcardView{}
	raw, err := s.generator.GenerateFlashcards(ctx, contextText, count)
	if err == nil {
		cards, parseErr := generation.ParseFlashcards(raw)
		if parseErr != nil {
			l.Debug("Discarding malformed flashcard batch")
		}
		for _, card := range cards {
			views = append(views, dto.NewFlashcardView(card))
		}
	}

	l.Info("Flashcards generated",
		zap.Int64("subject_id", subjectID),
		zap.Int64("unit_id", unitID),
		zap.String("difficulty", difficulty),
		zap.Int("requested", count),
		zap.Int("generated", len(views)))

	return &dto.FlashcardResult{
		Success:    true,
		Difficulty: difficulty,
		Flashcards: views,
	}
}

func failedQuiz(message string) *dto.QuizResult {
	return &dto.QuizResult{
		Success:   false,
		Message:   message,
		Questions: []domain.Question{},
	}
}
