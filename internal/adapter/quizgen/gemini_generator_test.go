package quizgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"docquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// stubModel implements llms.Model with a canned response
type stubModel struct {
	response string
	err      error
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return s.response, s.err
}

const canonicalJSON = `[
  {"questionText": "Q1?", "options": ["a", "b", "c", "d"], "correctOptionIndex": 0, "explanation": "because"},
  {"questionText": "Q2?", "options": ["a", "b", "c", "d"], "correctOptionIndex": 1, "explanation": ""},
  {"questionText": "Q3?", "options": ["a", "b", "c", "d"], "correctOptionIndex": 2, "explanation": "x"},
  {"questionText": "Q4?", "options": ["a", "b", "c", "d"], "correctOptionIndex": 3, "explanation": "y"},
  {"questionText": "Q5?", "options": ["a", "b", "c", "d"], "correctOptionIndex": 0, "explanation": "z"}
]`

func testGenerator(response string, err error) *GeminiGenerator {
	return newGenerator(&stubModel{response: response, err: err}, 5*time.Second, 15000, zap.NewNop())
}

func TestGenerate_CanonicalResponse(t *testing.T) {
	g := testGenerator(canonicalJSON, nil)

	content, err := g.Generate(context.Background(), "Angular is a framework developed by Google for building web applications.", 5)
	assert.NoError(t, err)
	assert.Len(t, content.Questions, 5)
	assert.Equal(t, "Q1?", content.Questions[0].QuestionText)
	assert.Equal(t, 3, content.Questions[3].CorrectOptionIndex)
	assert.Equal(t, "because", content.Questions[0].Explanation)
}

func TestGenerate_ToleratesSurroundingProse(t *testing.T) {
	g := testGenerator("Sure! Here is the quiz you asked for:\n```json\n"+canonicalJSON+"\n```\nHope this helps.", nil)

	content, err := g.Generate(context.Background(), "Some sufficiently long document text for generation.", 5)
	assert.NoError(t, err)
	assert.Len(t, content.Questions, 5)
}

func TestGenerate_CredentialMissing(t *testing.T) {
	g := newGenerator(nil, time.Second, 15000, zap.NewNop())

	_, err := g.Generate(context.Background(), "text", 5)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeCredentialMissing, domainErr.Code)
}

func TestGenerate_TransportFailure(t *testing.T) {
	g := testGenerator("", errors.New("connection refused"))

	_, err := g.Generate(context.Background(), "text", 5)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAIUnavailable, domainErr.Code)
}

func TestGenerate_Timeout(t *testing.T) {
	g := testGenerator("", context.DeadlineExceeded)

	_, err := g.Generate(context.Background(), "text", 5)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeGenerationTimeout, domainErr.Code)
}

func TestGenerate_TruncatesLongInput(t *testing.T) {
	g := newGenerator(&stubModel{response: canonicalJSON}, time.Second, 100, zap.NewNop())

	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}
	_, err := g.Generate(context.Background(), string(long), 5)
	assert.NoError(t, err)
}

func TestParseQuizContent_AlternateKeys(t *testing.T) {
	// The original upstream format: question/answer instead of
	// questionText/correctOptionIndex, and no explanation at all.
	raw := `[
	  {"question": "Q1?", "options": ["a", "b"], "answer": 1},
	  {"question": "Q2?", "choices": ["a", "b"], "correctIndex": 0},
	  {"text": "Q3?", "options": ["a", "b"], "answer_index": "1"},
	  {"question": "Q4?", "options": ["a", "b"], "correct_option_index": 0, "rationale": "why"},
	  {"question": "Q5?", "options": ["a", "b"], "correctAnswer": 1}
	]`

	content, err := parseQuizContent(raw, 5)
	assert.NoError(t, err)
	assert.Len(t, content.Questions, 5)
	assert.Equal(t, "Q1?", content.Questions[0].QuestionText)
	assert.Equal(t, 1, content.Questions[0].CorrectOptionIndex)
	assert.Equal(t, "", content.Questions[0].Explanation)
	assert.Equal(t, []string{"a", "b"}, content.Questions[1].Options)
	assert.Equal(t, 1, content.Questions[2].CorrectOptionIndex)
	assert.Equal(t, "why", content.Questions[3].Explanation)
}

func TestParseQuizContent_WrappedQuestionsObject(t *testing.T) {
	raw := `{"questions": [
	  {"question": "Q1?", "options": ["a", "b"], "answer": 0}
	]}`

	content, err := parseQuizContent(raw, 1)
	assert.NoError(t, err)
	assert.Len(t, content.Questions, 1)
}

func TestParseQuizContent_IndexOutOfRangeIsMalformed(t *testing.T) {
	raw := `[{"question": "Q1?", "options": ["a", "b"], "answer": 7}]`

	_, err := parseQuizContent(raw, 1)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedAIResponse, domainErr.Code)
}

func TestParseQuizContent_WrongQuestionCount(t *testing.T) {
	raw := `[{"question": "Q1?", "options": ["a", "b"], "answer": 0}]`

	_, err := parseQuizContent(raw, 5)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedAIResponse, domainErr.Code)
}

func TestParseQuizContent_NoJSONRegion(t *testing.T) {
	_, err := parseQuizContent("I could not generate a quiz for this document.", 5)
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedAIResponse, domainErr.Code)
}

func TestExtractJSONRegion(t *testing.T) {
	assert.Equal(t, `[1, 2]`, extractJSONRegion("noise [1, 2] trailing"))
	assert.Equal(t, `{"a": [1]}`, extractJSONRegion("prefix {\"a\": [1]} suffix"))
	assert.Equal(t, "", extractJSONRegion("no json here"))
	assert.Equal(t, "", extractJSONRegion("only an opening ["))
}
