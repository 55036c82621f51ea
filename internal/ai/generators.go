package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
)

// Caller abstracts the gateway so generators can be exercised against a
// stub in tests.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// Client builds task-specific prompts, sends them through the gateway and
// normalizes the semi-structured replies into typed records.
type Client struct {
	gw Caller
}

func NewClient(gw Caller) *Client {
	return &Client{gw: gw}
}

// GenerateSummary produces the summary text for a single level so that
// each level is an independent unit of failure.
func (c *Client) GenerateSummary(ctx context.Context, transcript, language, level string) (string, error) {
	prompt := fmt.Sprintf(`Analyze the following video transcript and provide summaries in %s. Focus on the %q level of detail.
Return only a JSON object with the key %q. Do not wrap the response in markdown fences.

Transcript:
%s`, language, level, level, transcript)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return "", err
	}

	if !json.Valid([]byte(result)) {
		return "", fmt.Errorf("%w: %w: summary payload", ErrGeneration, ErrParse)
	}

	var levels map[string]string
	if err := json.Unmarshal([]byte(result), &levels); err != nil {
		return "", fmt.Errorf("%w: %w: %v", ErrGeneration, ErrParse, err)
	}

	content := strings.TrimSpace(levels[level])
	if content == "" {
		content = strings.TrimSpace(levels["summary"])
	}
	if content == "" {
		return "", fmt.Errorf("%w: empty %s summary", ErrGeneration, level)
	}

	return content, nil
}

// ExtractTopics returns the transcript's major topics with timestamps.
// Start and end are clamped to sane values; coverage gaps and overlaps are
// passed through for downstream consumers to tolerate.
func (c *Client) ExtractTopics(ctx context.Context, transcript string) ([]domain.Topic, error) {
	prompt := fmt.Sprintf(`Analyze the following transcript and extract a list of major topics with their start and end timestamps (in seconds).
For each topic, provide a brief key insight.
Return only a JSON array of objects with keys: "topic", "start", "end", "keyInsight". Do not wrap the response in markdown fences.

Transcript:
%s`, transcript)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(result)) {
		return nil, fmt.Errorf("%w: %w: topics payload", ErrGeneration, ErrParse)
	}

	var topics []domain.Topic
	if err := json.Unmarshal(CoerceToArray([]byte(result)), &topics); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrGeneration, ErrParse, err)
	}

	for i := range topics {
		if topics[i].Start < 0 {
			topics[i].Start = 0
		}
		if topics[i].End < topics[i].Start {
			topics[i].End = topics[i].Start
		}
	}

	return topics, nil
}

// GenerateQuestions returns up to maxCount questions of one type. A model
// type of "open" is canonicalized to "open-ended"; other unrecognized
// values pass through for persistence to reject.
func (c *Client) GenerateQuestions(ctx context.Context, transcript, qType, difficulty, language string, maxCount int) ([]domain.Question, error) {
	prompt := fmt.Sprintf(`Generate up to %d questions of type %q at %s difficulty based on the transcript below.
Valid question types are: "mcq", "open-ended", "short-answer", "interview".
Answer in %s.
For MCQs, provide 4 options and the correct option index (0-3).
For others, provide a model answer.
Include a related timestamp (in seconds) for each question.
Return only a JSON array of objects with keys: "type", "difficulty", "text", "options" (array), "correctOptionIndex", "answerExplanation", "timestampSeconds". Do not wrap the response in markdown fences.

Transcript:
%s`, maxCount, qType, difficulty, language, transcript)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(result)) {
		return nil, fmt.Errorf("%w: %w: questions payload", ErrGeneration, ErrParse)
	}

	var questions []domain.Question
	if err := json.Unmarshal(CoerceToArray([]byte(result)), &questions); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrGeneration, ErrParse, err)
	}

	for i := range questions {
		if questions[i].Type == "open" {
			questions[i].Type = domain.QuestionOpenEnded
		}
		if questions[i].TimestampSeconds < 0 {
			questions[i].TimestampSeconds = 0
		}
	}

	if len(questions) > maxCount {
		questions = questions[:maxCount]
	}

	return questions, nil
}

// DetectAmbiguities flags transcript passages a student may find unclear.
func (c *Client) DetectAmbiguities(ctx context.Context, transcript string) ([]domain.AmbiguitySpan, error) {
	prompt := fmt.Sprintf(`Detect ambiguous or unclear segments in the following transcript where a student might need more clarification.
Return only a JSON array of objects with keys: "snippet", "reason", "timestampSeconds". Do not wrap the response in markdown fences.

Transcript:
%s`, transcript)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(result)) {
		return nil, fmt.Errorf("%w: %w: ambiguity payload", ErrGeneration, ErrParse)
	}

	var spans []domain.AmbiguitySpan
	if err := json.Unmarshal(CoerceToArray([]byte(result)), &spans); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrGeneration, ErrParse, err)
	}

	return spans, nil
}

// Placeholder content for clarifications whose payload could not be
// parsed. A clarification must always be renderable.
const (
	clarificationUnavailable = "Could not generate clarification for this segment."
	clarificationNoText      = "No clarification available."
	definitionUnavailable    = "Not available."
	definitionNotProvided    = "Definition not provided."
)

// ClarifyAmbiguity resolves one ambiguity span. Gateway errors propagate
// so the caller can drop the span, but parse and validation failures never
// do: they yield a fixed placeholder instead.
func (c *Client) ClarifyAmbiguity(ctx context.Context, span domain.AmbiguitySpan, language string) (domain.Clarification, error) {
	prompt := fmt.Sprintf(`Clarify the following ambiguous segment from a video transcript in %s.
Reason for ambiguity: %s
Snippet: %q

Please provide:
1. A simple definition of key terms.
2. A step-by-step explanation.
3. A real-world analogy.
4. A practical example.

IMPORTANT: You must return a JSON object with strictly these keys: "clarificationText", "examples" (array), "definition".`, language, span.Reason, span.Snippet)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return domain.Clarification{}, err
	}

	clar := domain.Clarification{
		TranscriptSnippet: span.Snippet,
		Reason:            span.Reason,
	}

	var payload struct {
		ClarificationText string          `json:"clarificationText"`
		Clarification     string          `json:"clarification"`
		Examples          json.RawMessage `json:"examples"`
		Definition        string          `json:"definition"`
	}
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		clar.ClarificationText = clarificationUnavailable
		clar.Examples = []string{}
		clar.Definition = definitionUnavailable
		return clar, nil
	}

	clar.ClarificationText = strings.TrimSpace(payload.ClarificationText)
	if clar.ClarificationText == "" {
		clar.ClarificationText = strings.TrimSpace(payload.Clarification)
	}
	if clar.ClarificationText == "" {
		clar.ClarificationText = clarificationNoText
	}

	clar.Examples = normalizeExamples(payload.Examples)

	clar.Definition = strings.TrimSpace(payload.Definition)
	if clar.Definition == "" {
		clar.Definition = definitionNotProvided
	}

	return clar, nil
}

func normalizeExamples(raw json.RawMessage) []string {
	examples := []string{}
	if len(raw) == 0 {
		return examples
	}

	var items []json.RawMessage
	if err := json.Unmarshal(CoerceToArray(raw), &items); err != nil {
		return examples
	}

	for _, item := range items {
		examples = append(examples, flattenExample(item))
	}
	return examples
}

// AnswerDoubt answers a free-form student question against a transcript
// excerpt. Each call is stateless; no conversation history is threaded in.
func (c *Client) AnswerDoubt(ctx context.Context, transcriptChunk, question, language string) (string, error) {
	prompt := fmt.Sprintf(`As an AI tutor, answer the student's doubt based on the transcript context provided.
Answer in %s.

Context: %s
Student's Question: %s

Return only a JSON object with key "answer". Do not wrap the response in markdown fences.`, language, transcriptChunk, question)

	result, err := c.gw.Call(ctx, prompt)
	if err != nil {
		return "", err
	}

	var payload struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		return "", fmt.Errorf("%w: %w: %v", ErrGeneration, ErrParse, err)
	}

	if strings.TrimSpace(payload.Answer) == "" {
		return "", fmt.Errorf("%w: empty answer", ErrGeneration)
	}

	return payload.Answer, nil
}
