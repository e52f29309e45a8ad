package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docquiz/internal/domain"
	"docquiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB.
// Id assignment is delegated to the database's autoincrement sequence, so
// concurrent inserts never collide and ids stay monotonic with creation time.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, originalFilename string, content domain.QuizContent) (*domain.Quiz, error) {
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to persist invalid quiz content: %w", err)
	}

	createdAt := time.Now().UTC()
	query := `INSERT INTO quizzes (original_filename, quiz_content, created_at)
	VALUES (?, ?, ?)`

	result, err := a.db.ExecContext(ctx, query,
		originalFilename,
		models.QuizContentBlob(content),
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz id: %w", err)
	}

	return &domain.Quiz{
		ID:               id,
		OriginalFilename: originalFilename,
		QuizContent:      content,
		CreatedAt:        createdAt,
	}, nil
}

// GetQuiz implements domain.QuizRepository. Returns (nil, nil) when absent.
func (a *QuizDatabaseAdapter) GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	var modelQuiz models.Quiz
	query := `SELECT id, original_filename, quiz_content, created_at
	FROM quizzes
	WHERE id = ?`

	err := a.db.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %d: %w", id, err)
	}
	return toDomainQuiz(&modelQuiz), nil
}

// GetAllQuizzes implements domain.QuizRepository. Most recent first, ids
// break ties when timestamps collide.
func (a *QuizDatabaseAdapter) GetAllQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	var modelQuizzes []models.Quiz
	query := `SELECT id, original_filename, quiz_content, created_at
	FROM quizzes
	ORDER BY created_at DESC, id DESC`

	if err := a.db.SelectContext(ctx, &modelQuizzes, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// CreateResult implements domain.QuizRepository. Append-only; rows are never
// updated or deleted.
func (a *QuizDatabaseAdapter) CreateResult(ctx context.Context, quizID int64, score, totalQuestions int) (*domain.Result, error) {
	createdAt := time.Now().UTC()
	query := `INSERT INTO results (quiz_id, score, total_questions, created_at)
	VALUES (?, ?, ?, ?)`

	result, err := a.db.ExecContext(ctx, query, quizID, score, totalQuestions, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get result id: %w", err)
	}

	return &domain.Result{
		ID:             id,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: totalQuestions,
		CreatedAt:      createdAt,
	}, nil
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:               m.ID,
		OriginalFilename: m.OriginalFilename,
		QuizContent:      domain.QuizContent(m.QuizContent),
		CreatedAt:        m.CreatedAt,
	}
}
