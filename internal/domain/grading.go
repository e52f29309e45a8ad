package domain

// QuestionResult is the per-question breakdown of a graded submission.
// UserAnswer stays empty when the submitted index does not select an option.
type QuestionResult struct {
	QuestionText  string `json:"questionText"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// GradingReport is the aggregate outcome of grading one submission
type GradingReport struct {
	Score   int
	Total   int
	Results []QuestionResult
}

// Grade compares submitted option indices against the stored correct indices.
// One answer per question is required; -1 (or any index outside the question's
// options) counts as unanswered and therefore incorrect. Pure function.
func Grade(questions []Question, answers []int) (*GradingReport, error) {
	if len(answers) != len(questions) {
		return nil, NewAnswerCountMismatchError(len(questions), len(answers))
	}

	report := &GradingReport{
		Total:   len(questions),
		Results: make([]QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		selected := answers[i]
		isCorrect := selected == q.CorrectOptionIndex

		var userAnswer string
		if selected >= 0 && selected < len(q.Options) {
			userAnswer = q.Options[selected]
		}

		var correctAnswer string
		if q.CorrectOptionIndex >= 0 && q.CorrectOptionIndex < len(q.Options) {
			correctAnswer = q.Options[q.CorrectOptionIndex]
		}

		if isCorrect {
			report.Score++
		}

		report.Results = append(report.Results, QuestionResult{
			QuestionText:  q.QuestionText,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
		})
	}

	return report, nil
}
