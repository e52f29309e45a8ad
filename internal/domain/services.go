package domain

import "context"

// TextExtractor converts an uploaded PDF byte buffer into plain text
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// QuizGenerator produces quiz content from extracted document text.
// Implementations call an external generative model synchronously.
type QuizGenerator interface {
	Generate(ctx context.Context, text string, numQuestions int) (*QuizContent, error)
}

// QuizRepository owns the persisted quizzes and results collections
type QuizRepository interface {
	// CreateQuiz persists a new quiz and returns the stored record with
	// its assigned id and creation timestamp.
	CreateQuiz(ctx context.Context, originalFilename string, content QuizContent) (*Quiz, error)

	// GetQuiz returns the quiz with the given id, or (nil, nil) when absent.
	GetQuiz(ctx context.Context, id int64) (*Quiz, error)

	// GetAllQuizzes returns every quiz, most recent first.
	GetAllQuizzes(ctx context.Context) ([]*Quiz, error)

	// CreateResult appends one scored submission. The caller is responsible
	// for having loaded the referenced quiz.
	CreateResult(ctx context.Context, quizID int64, score, totalQuestions int) (*Result, error)
}
