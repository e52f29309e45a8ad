package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"docquiz/internal/domain"
)

// QuizContentBlob stores a domain.QuizContent as a JSON text column.
// The storage engine treats it as opaque; validation happens at the
// application boundary before any write.
type QuizContentBlob domain.QuizContent

// Value implements the driver.Valuer interface
func (c QuizContentBlob) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(domain.QuizContent(c))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (c *QuizContentBlob) Scan(value interface{}) error {
	if value == nil {
		*c = QuizContentBlob{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return fmt.Errorf("QuizContentBlob Scan: unsupported type %T", value)
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*c = QuizContentBlob{}
		return nil
	}
	return json.Unmarshal(bytesToParse, (*domain.QuizContent)(c))
}

// Quiz is the quizzes table row
type Quiz struct {
	ID               int64           `db:"id"`
	OriginalFilename string          `db:"original_filename"`
	QuizContent      QuizContentBlob `db:"quiz_content"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Result is the results table row
type Result struct {
	ID             int64     `db:"id"`
	QuizID         int64     `db:"quiz_id"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	CreatedAt      time.Time `db:"created_at"`
}
