package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Upload / generation errors
	CodeNoFileProvided      ErrorCode = "NO_FILE_PROVIDED"
	CodeCredentialMissing   ErrorCode = "CREDENTIAL_MISSING"
	CodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	CodeTextTooShort        ErrorCode = "TEXT_TOO_SHORT"
	CodeAIUnavailable       ErrorCode = "AI_UNAVAILABLE"
	CodeGenerationTimeout   ErrorCode = "GENERATION_TIMEOUT"
	CodeMalformedAIResponse ErrorCode = "MALFORMED_AI_RESPONSE"

	// Submission errors
	CodeQuizNotFound         ErrorCode = "QUIZ_NOT_FOUND"
	CodeAnswerCountMismatch  ErrorCode = "ANSWER_COUNT_MISMATCH"
	CodeInvalidSubmitPayload ErrorCode = "INVALID_SUBMIT_PAYLOAD"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for the error taxonomy

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewNoFileProvidedError() *DomainError {
	return NewError(CodeNoFileProvided, "No file uploaded", nil)
}

func NewCredentialMissingError() *DomainError {
	return NewError(CodeCredentialMissing, "Generative AI credential is not configured", nil)
}

func NewExtractionFailedError(cause error) *DomainError {
	return NewError(CodeExtractionFailed, "Failed to parse PDF", cause)
}

func NewTextTooShortError() *DomainError {
	return NewError(CodeTextTooShort, "PDF text is too short to generate a quiz", nil)
}

func NewAIUnavailableError(cause error) *DomainError {
	return NewError(CodeAIUnavailable, "Quiz generation service is unavailable", cause)
}

func NewGenerationTimeoutError(cause error) *DomainError {
	return NewError(CodeGenerationTimeout, "Quiz generation timed out", cause)
}

func NewMalformedAIResponseError(cause error) *DomainError {
	return NewError(CodeMalformedAIResponse, "Received an invalid response from the AI model", cause)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %d", quizID), nil)
}

func NewAnswerCountMismatchError(want, got int) *DomainError {
	e := NewError(CodeAnswerCountMismatch, "Number of answers does not match number of questions", nil)
	e.Context = map[string]interface{}{"expected": want, "received": got}
	return e
}

func NewInvalidSubmitPayloadError() *DomainError {
	return NewError(CodeInvalidSubmitPayload, "Invalid submission payload", nil)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}

func NewFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
