package service

import (
	"context"

	"docquiz/internal/config"
	"docquiz/internal/domain"
	"docquiz/internal/dto"
	"docquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// CreateQuizFromPDF runs the full upload pipeline: extract text,
	// generate questions, persist the quiz.
	CreateQuizFromPDF(ctx context.Context, originalFilename string, data []byte) (*dto.UploadQuizResponse, error)

	// SubmitAnswers grades a submission against the stored quiz and
	// appends a result record.
	SubmitAnswers(ctx context.Context, quizID int64, answers []int) (*dto.SubmitAnswersResponse, error)

	GetQuiz(ctx context.Context, quizID int64) (*dto.QuizResponse, error)
	GetAllQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	extractor domain.TextExtractor
	generator domain.QuizGenerator
	cfg       *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	extractor domain.TextExtractor,
	generator domain.QuizGenerator,
	cfg *config.Config,
) QuizService {
	return &quizService{
		repo:      repo,
		extractor: extractor,
		generator: generator,
		cfg:       cfg,
	}
}

// CreateQuizFromPDF implements QuizService. Each step is sequential and
// terminal on failure; nothing is written to the store until generation
// succeeded.
func (s *quizService) CreateQuizFromPDF(ctx context.Context, originalFilename string, data []byte) (*dto.UploadQuizResponse, error) {
	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	logger.Get().Debug("Extracted text from upload",
		zap.String("filename", originalFilename),
		zap.Int("text_length", len(text)),
	)

	if len(text) < s.cfg.Quiz.MinTextLength {
		return nil, domain.NewTextTooShortError()
	}

	content, err := s.generator.Generate(ctx, text, s.cfg.Quiz.QuestionCount)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.CreateQuiz(ctx, originalFilename, *content)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.Int64("quiz_id", quiz.ID),
		zap.String("filename", quiz.OriginalFilename),
		zap.Int("questions", len(quiz.QuizContent.Questions)),
	)

	return &dto.UploadQuizResponse{
		ID:               quiz.ID,
		OriginalFilename: quiz.OriginalFilename,
		Questions:        toQuestionResponses(quiz.QuizContent.Questions),
	}, nil
}

// SubmitAnswers implements QuizService. The server re-grades every
// submission from stored content; nothing the client computed is trusted.
func (s *quizService) SubmitAnswers(ctx context.Context, quizID int64, answers []int) (*dto.SubmitAnswersResponse, error) {
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	report, err := domain.Grade(quiz.QuizContent.Questions, answers)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreateResult(ctx, quizID, report.Score, report.Total); err != nil {
		return nil, domain.NewInternalError("Failed to save result", err)
	}

	logger.Get().Info("Submission graded",
		zap.Int64("quiz_id", quizID),
		zap.Int("score", report.Score),
		zap.Int("total", report.Total),
	)

	results := make([]dto.QuestionResultResponse, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, dto.QuestionResultResponse{
			QuestionText:  r.QuestionText,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
		})
	}

	return &dto.SubmitAnswersResponse{
		Score:   report.Score,
		Total:   report.Total,
		Results: results,
	}, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, quizID int64) (*dto.QuizResponse, error) {
	quiz, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	resp := toQuizResponse(quiz)
	return &resp, nil
}

// GetAllQuizzes implements QuizService
func (s *quizService) GetAllQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.repo.GetAllQuizzes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, toQuizResponse(quiz))
	}
	return responses, nil
}

func toQuizResponse(quiz *domain.Quiz) dto.QuizResponse {
	return dto.QuizResponse{
		ID:               quiz.ID,
		OriginalFilename: quiz.OriginalFilename,
		QuizContent: dto.QuizContentPayload{
			Questions: toQuestionResponses(quiz.QuizContent.Questions),
		},
		CreatedAt: quiz.CreatedAt,
	}
}

func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.QuestionResponse{
			QuestionText:       q.QuestionText,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Explanation:        q.Explanation,
		})
	}
	return responses
}
