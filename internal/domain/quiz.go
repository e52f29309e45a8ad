package domain

import (
	"fmt"
	"time"
)

// Question is a single multiple-choice question inside a quiz.
// CorrectOptionIndex is zero-based and must index into Options.
type Question struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
}

// Validate checks the structural invariants of a single question
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return NewFieldError("questionText", "question text is required")
	}
	if len(q.Options) < 2 {
		return NewFieldError("options", fmt.Sprintf("at least 2 options are required, got %d", len(q.Options)))
	}
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return NewFieldError("correctOptionIndex",
			fmt.Sprintf("correct option index %d is out of range [0, %d)", q.CorrectOptionIndex, len(q.Options)))
	}
	return nil
}

// QuizContent is the structured question set embedded in a Quiz.
// It is persisted as an opaque JSON blob but validated on every write.
type QuizContent struct {
	Questions []Question `json:"questions"`
}

// Validate validates every question in the content
func (c *QuizContent) Validate() error {
	if len(c.Questions) == 0 {
		return NewFieldError("questions", "quiz content must contain at least one question")
	}
	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return NewFieldError(fmt.Sprintf("questions[%d]", i), err.Error())
		}
	}
	return nil
}

// Quiz pairs an uploaded document's filename with its generated questions.
// Immutable after creation.
type Quiz struct {
	ID               int64
	OriginalFilename string
	QuizContent      QuizContent
	CreatedAt        time.Time
}

// Result records one scored submission against a quiz. Append-only.
type Result struct {
	ID             int64
	QuizID         int64
	Score          int
	TotalQuestions int
	CreatedAt      time.Time
}
