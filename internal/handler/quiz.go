package handler

import (
	"io"

	"docquiz/internal/domain"
	"docquiz/internal/dto"
	"docquiz/internal/logger"
	"docquiz/internal/service"
	"docquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests. Handlers stay thin:
// they parse the request, call the service and return errors for the
// centralized error handler to render.
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// UploadQuiz godoc
// @Summary Create a quiz from an uploaded PDF
// @Description Extracts text from the PDF, generates five multiple-choice questions and stores the quiz
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 201 {object} dto.UploadQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/upload [post]
func (h *QuizHandler) UploadQuiz(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return domain.NewNoFileProvidedError()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	logger.Get().Info("PDF upload received",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)

	resp, err := h.service.CreateQuizFromPDF(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SubmitAnswers godoc
// @Summary Submit answers for a quiz
// @Description Grades the submitted option indices against the stored quiz and records the result
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param request body dto.SubmitAnswersRequest true "Selected option indices, -1 for unanswered"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id}/submit [post]
func (h *QuizHandler) SubmitAnswers(c *fiber.Ctx) error {
	quizID, errs := h.validator.ValidateQuizID(c.Params("id"))
	if len(errs) > 0 {
		return errs
	}

	var req dto.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidSubmitPayloadError()
	}
	if errs := h.validator.ValidateSubmitRequest(&req); len(errs) > 0 {
		return domain.NewInvalidSubmitPayloadError()
	}

	resp, err := h.service.SubmitAnswers(c.Context(), quizID, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a single quiz
// @Description Returns one stored quiz with its full question set
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, errs := h.validator.ValidateQuizID(c.Params("id"))
	if len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetQuiz(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List all quizzes
// @Description Returns every stored quiz, most recent first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	resp, err := h.service.GetAllQuizzes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
