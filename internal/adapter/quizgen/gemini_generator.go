package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"docquiz/internal/config"
	"docquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const quizPrompt = `Generate exactly %d multiple-choice questions based on the text below.
RESPOND ONLY WITH A PURE JSON ARRAY. NO TEXT BEFORE OR AFTER. NO MARKDOWN FENCES.
Format: [ { "questionText": "...", "options": ["...", "...", "...", "..."], "correctOptionIndex": 0, "explanation": "..." } ]
Each question must have 4 options and a zero-based correct answer index.

Text: %s`

// Accepted alternate keys for each canonical question field. Models drift
// from the requested format; all tolerated spellings live in this one table.
var (
	questionTextKeys = []string{"questionText", "question", "text"}
	optionsKeys      = []string{"options", "choices"}
	correctIndexKeys = []string{"correctOptionIndex", "answer", "correctIndex", "correct_option_index", "answer_index", "correctAnswer"}
	explanationKeys  = []string{"explanation", "rationale"}
)

// GeminiGenerator implements domain.QuizGenerator against the Gemini API
// through langchaingo. The model call is synchronous and bounded by the
// configured timeout; all failures are terminal, nothing is retried.
type GeminiGenerator struct {
	llm            llms.Model
	timeout        time.Duration
	maxPromptChars int
	logger         *zap.Logger
}

// NewGeminiGenerator creates a GeminiGenerator. A missing API key does not
// fail construction: the server must still start and reject uploads with a
// credential error instead.
func NewGeminiGenerator(cfg config.GeminiConfig, maxPromptChars int, logger *zap.Logger) (domain.QuizGenerator, error) {
	g := &GeminiGenerator{
		timeout:        cfg.Timeout,
		maxPromptChars: maxPromptChars,
		logger:         logger,
	}
	if cfg.APIKey == "" {
		logger.Warn("Gemini API key is not configured; uploads will be rejected")
		return g, nil
	}

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.llm = llm
	logger.Info("Gemini quiz generator initialized", zap.String("model", cfg.Model))
	return g, nil
}

// newGenerator wires an already constructed model, used by tests.
func newGenerator(llm llms.Model, timeout time.Duration, maxPromptChars int, logger *zap.Logger) *GeminiGenerator {
	return &GeminiGenerator{llm: llm, timeout: timeout, maxPromptChars: maxPromptChars, logger: logger}
}

// Generate implements domain.QuizGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, text string, numQuestions int) (*domain.QuizContent, error) {
	if g.llm == nil {
		return nil, domain.NewCredentialMissingError()
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewTextTooShortError()
	}

	// Lossy deterministic truncation to respect upstream token limits.
	if len(text) > g.maxPromptChars {
		text = text[:g.maxPromptChars]
	}

	prompt := fmt.Sprintf(quizPrompt, numQuestions, text)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(callCtx, g.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error("Gemini request timed out", zap.Duration("timeout", g.timeout))
			return nil, domain.NewGenerationTimeoutError(err)
		}
		g.logger.Error("Gemini request failed", zap.Error(err))
		return nil, domain.NewAIUnavailableError(err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewMalformedAIResponseError(fmt.Errorf("empty response"))
	}

	content, err := parseQuizContent(raw, numQuestions)
	if err != nil {
		g.logger.Error("Failed to parse Gemini response",
			zap.Error(err),
			zap.String("raw_prefix", raw[:min(200, len(raw))]),
		)
		return nil, err
	}

	g.logger.Info("Generated quiz content", zap.Int("questions", len(content.Questions)))
	return content, nil
}

// parseQuizContent extracts the JSON region from the raw model output,
// normalizes heterogeneous field names and validates the result.
func parseQuizContent(raw string, numQuestions int) (*domain.QuizContent, error) {
	payload := extractJSONRegion(raw)
	if payload == "" {
		return nil, domain.NewMalformedAIResponseError(fmt.Errorf("no JSON region found in response"))
	}

	rawQuestions, err := decodeQuestionList(payload)
	if err != nil {
		return nil, domain.NewMalformedAIResponseError(err)
	}

	content := &domain.QuizContent{Questions: make([]domain.Question, 0, len(rawQuestions))}
	for i, rq := range rawQuestions {
		q, err := normalizeQuestion(rq)
		if err != nil {
			return nil, domain.NewMalformedAIResponseError(fmt.Errorf("question %d: %w", i, err))
		}
		content.Questions = append(content.Questions, q)
	}

	if len(content.Questions) != numQuestions {
		return nil, domain.NewMalformedAIResponseError(
			fmt.Errorf("expected %d questions, model returned %d", numQuestions, len(content.Questions)))
	}
	if err := content.Validate(); err != nil {
		return nil, domain.NewMalformedAIResponseError(err)
	}
	return content, nil
}

// extractJSONRegion locates the outermost JSON array or object in text the
// model may have wrapped in prose despite instructions: first '['/'{' to the
// last matching ']'/'}'.
func extractJSONRegion(s string) string {
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return ""
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

// decodeQuestionList accepts either a bare array of question objects or an
// object wrapping them under a "questions" key.
func decodeQuestionList(payload string) ([]map[string]json.RawMessage, error) {
	var list []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Questions []map[string]json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode question list: %w", err)
	}
	if wrapped.Questions == nil {
		return nil, fmt.Errorf("response contains no questions array")
	}
	return wrapped.Questions, nil
}

// normalizeQuestion maps one raw question object onto the canonical shape
func normalizeQuestion(rq map[string]json.RawMessage) (domain.Question, error) {
	var q domain.Question

	text, ok := pickString(rq, questionTextKeys)
	if !ok {
		return q, fmt.Errorf("missing question text (accepted keys: %s)", strings.Join(questionTextKeys, ", "))
	}

	options, ok := pickStringSlice(rq, optionsKeys)
	if !ok {
		return q, fmt.Errorf("missing options (accepted keys: %s)", strings.Join(optionsKeys, ", "))
	}

	index, ok := pickInt(rq, correctIndexKeys)
	if !ok {
		return q, fmt.Errorf("missing correct answer index (accepted keys: %s)", strings.Join(correctIndexKeys, ", "))
	}

	// Missing explanation defaults to an empty string.
	explanation, _ := pickString(rq, explanationKeys)

	q.QuestionText = text
	q.Options = options
	q.CorrectOptionIndex = index
	q.Explanation = explanation
	return q, nil
}

func pickString(m map[string]json.RawMessage, keys []string) (string, bool) {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return "", false
}

func pickStringSlice(m map[string]json.RawMessage, keys []string) ([]string, bool) {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, true
		}
	}
	return nil, false
}

// pickInt accepts a JSON number or a numeric string under any accepted key
func pickInt(m map[string]json.RawMessage, keys []string) (int, bool) {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return n, true
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Static assertion that GeminiGenerator implements QuizGenerator
var _ domain.QuizGenerator = (*GeminiGenerator)(nil)
