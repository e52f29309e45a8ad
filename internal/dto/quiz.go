package dto

import "time"

// QuestionResponse represents one generated question in the API response.
// Correct indices and explanations are included so the client can show
// progress feedback while answering; the server still re-grades on submit.
// @Description A single multiple-choice question
type QuestionResponse struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
}

// UploadQuizResponse is the 201 body returned for a successful upload
// @Description Newly created quiz with its generated questions
type UploadQuizResponse struct {
	ID               int64              `json:"id"`
	OriginalFilename string             `json:"originalFilename"`
	Questions        []QuestionResponse `json:"questions"`
}

// QuizResponse represents a stored quiz in list and single-quiz responses
// @Description Stored quiz record
type QuizResponse struct {
	ID               int64              `json:"id"`
	OriginalFilename string             `json:"originalFilename"`
	QuizContent      QuizContentPayload `json:"quizContent"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// QuizContentPayload mirrors the stored question set
type QuizContentPayload struct {
	Questions []QuestionResponse `json:"questions"`
}

// SubmitAnswersRequest is the body for submitting answers to a quiz.
// One zero-based option index per question; -1 marks a question unanswered.
// @Description Request body for submitting quiz answers
type SubmitAnswersRequest struct {
	Answers []int `json:"answers"`
}

// QuestionResultResponse is the per-question grading feedback
type QuestionResultResponse struct {
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// SubmitAnswersResponse is the 200 body returned for a graded submission
// @Description Score and per-question breakdown
type SubmitAnswersResponse struct {
	Score   int                      `json:"score"`
	Total   int                      `json:"total"`
	Results []QuestionResultResponse `json:"results"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
