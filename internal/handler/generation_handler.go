package handler

import (
	"dcet-prep/internal/domain"
	"dcet-prep/internal/dto"
	"dcet-prep/internal/logger"
	"dcet-prep/internal/service"
	"dcet-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerationHandler handles quiz and flashcard generation requests.
type GenerationHandler struct {
	service   service.GenerationService
	validator *validation.Validator
}

func NewGenerationHandler(service service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz handles POST /api/quiz/generate.
// The generation service is total: business failures come back as
// success:false envelopes with HTTP 200, directly renderable by clients.
func (h *GenerationHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.QuizResult{
			Success:   false,
			Message:   "Invalid request body",
			Questions: []domain.Question{},
		})
	}

	if msg := h.validator.ValidateGenerateRequest(req.SubjectID, req.UnitID); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.QuizResult{
			Success:   false,
			Message:   msg,
			Questions: []domain.Question{},
		})
	}

	logger.Get().Info("Quiz generation requested",
		zap.Int64("subject_id", req.SubjectID),
		zap.Int64("unit_id", req.UnitID),
		zap.String("difficulty", req.Difficulty))

	result := h.service.GenerateQuiz(c.Context(), req.SubjectID, req.UnitID, req.Difficulty)
	return c.JSON(result)
}

// GenerateFlashcards handles POST /api/flashcards/generate.
func (h *GenerationHandler) GenerateFlashcards(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FlashcardResult{
			Success:    false,
			Message:    "Invalid request body",
			Flashcards: []dto.FlashcardView{},
		})
	}

	if msg := h.validator.ValidateGenerateRequest(req.SubjectID, req.UnitID); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FlashcardResult{
			Success:    false,
			Message:    msg,
			Flashcards: []dto.FlashcardView{},
		})
	}

	logger.Get().Info("Flashcard generation requested",
		zap.Int64("subject_id", req.SubjectID),
		zap.Int64("unit_id", req.UnitID),
		zap.String("difficulty", req.Difficulty))

	result := h.service.GenerateFlashcards(c.Context(), req.SubjectID, req.UnitID, req.Difficulty)
	return c.JSON(result)
}
