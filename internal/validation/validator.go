package validation

import (
	"strconv"

	"docquiz/internal/domain"
	"docquiz/internal/dto"
)

// Validator provides request-shape validation for the quiz API
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizID parses a path parameter into a quiz id
func (v *Validator) ValidateQuizID(raw string) (int64, domain.ValidationErrors) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{
			domain.NewFieldError("id", "quiz id must be a positive integer"),
		}
	}
	return id, nil
}

// ValidateSubmitRequest checks the submission body shape. Answer values are
// not range-checked here: -1 and out-of-range indices are legal inputs that
// grade as incorrect.
func (v *Validator) ValidateSubmitRequest(req *dto.SubmitAnswersRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if req.Answers == nil {
		errs = append(errs, domain.NewFieldError("answers", "answers array is required"))
	}
	return errs
}
