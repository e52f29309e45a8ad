package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"docquiz/internal/domain"
	"docquiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func sampleContent() domain.QuizContent {
	return domain.QuizContent{
		Questions: []domain.Question{
			{
				QuestionText:       "What is Angular built with?",
				Options:            []string{"TypeScript", "Rust", "Elm", "C"},
				CorrectOptionIndex: 0,
				Explanation:        "Angular applications are written in TypeScript.",
			},
			{
				QuestionText:       "Who develops Angular?",
				Options:            []string{"Mozilla", "Google"},
				CorrectOptionIndex: 1,
			},
		},
	}
}

func TestCreateQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	content := sampleContent()
	blobValue, err := models.QuizContentBlob(content).Value()
	assert.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quizzes`)).
		WithArgs("lecture.pdf", blobValue, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	quiz, err := adapter.CreateQuiz(context.Background(), "lecture.pdf", content)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), quiz.ID)
	assert.Equal(t, "lecture.pdf", quiz.OriginalFilename)
	assert.Equal(t, content, quiz.QuizContent)
	assert.False(t, quiz.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateQuiz_RejectsInvalidContent(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	invalid := domain.QuizContent{
		Questions: []domain.Question{
			{QuestionText: "Q", Options: []string{"a", "b"}, CorrectOptionIndex: 5},
		},
	}

	_, err := adapter.CreateQuiz(context.Background(), "bad.pdf", invalid)
	assert.Error(t, err)
	// No write may reach the database for invalid content.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	content := sampleContent()
	blobValue, err := models.QuizContentBlob(content).Value()
	assert.NoError(t, err)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "original_filename", "quiz_content", "created_at"}).
		AddRow(int64(42), "lecture.pdf", blobValue, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, original_filename, quiz_content, created_at`)).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	quiz, err := adapter.GetQuiz(context.Background(), 42)
	assert.NoError(t, err)
	assert.NotNil(t, quiz)
	assert.Equal(t, int64(42), quiz.ID)
	assert.Equal(t, content, quiz.QuizContent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuiz_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, original_filename, quiz_content, created_at`)).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "original_filename", "quiz_content", "created_at"}))

	quiz, err := adapter.GetQuiz(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllQuizzes_OrdersMostRecentFirst(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	blobValue, err := models.QuizContentBlob(sampleContent()).Value()
	assert.NoError(t, err)
	t1 := time.Now().UTC().Add(-2 * time.Hour)
	t3 := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "original_filename", "quiz_content", "created_at"}).
		AddRow(int64(3), "third.pdf", blobValue, t3).
		AddRow(int64(2), "second.pdf", blobValue, t3.Add(-time.Hour)).
		AddRow(int64(1), "first.pdf", blobValue, t1)
	mock.ExpectQuery(`SELECT id, original_filename, quiz_content, created_at\s+FROM quizzes\s+ORDER BY created_at DESC, id DESC`).
		WillReturnRows(rows)

	quizzes, err := adapter.GetAllQuizzes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, quizzes, 3)
	assert.Equal(t, int64(3), quizzes[0].ID)
	assert.Equal(t, int64(1), quizzes[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateResult(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO results`)).
		WithArgs(int64(42), 3, 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	result, err := adapter.CreateResult(context.Background(), 42, 3, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.ID)
	assert.Equal(t, int64(42), result.QuizID)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
