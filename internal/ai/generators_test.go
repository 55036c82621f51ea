package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
)

// stubCaller returns a canned payload or error for every call.
type stubCaller struct {
	payload string
	err     error
	prompts []string
}

func (s *stubCaller) Call(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.payload, nil
}

func TestGenerateSummaryPicksRequestedLevel(t *testing.T) {
	client := NewClient(&stubCaller{payload: `{"short":"brief","medium":"more","detailed":"all of it"}`})

	content, err := client.GenerateSummary(context.Background(), "transcript", "English", "medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "more" {
		t.Fatalf("expected medium summary, got %q", content)
	}
}

func TestGenerateSummaryInvalidJSON(t *testing.T) {
	client := NewClient(&stubCaller{payload: `not json at all`})

	_, err := client.GenerateSummary(context.Background(), "transcript", "English", "short")
	if !errors.Is(err, ErrParse) || !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected generation+parse error, got %v", err)
	}
}

func TestExtractTopicsCoercesWrappedArray(t *testing.T) {
	client := NewClient(&stubCaller{payload: `{"topics":[{"topic":"Intro","start":-5,"end":-10,"keyInsight":"x"}]}`})

	topics, err := client.ExtractTopics(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	if topics[0].Start != 0 || topics[0].End != 0 {
		t.Fatalf("expected timestamps clamped, got start=%v end=%v", topics[0].Start, topics[0].End)
	}
}

func TestGenerateQuestionsNormalizesOpenType(t *testing.T) {
	client := NewClient(&stubCaller{payload: `[
		{"type":"open","difficulty":"easy","text":"Q1","timestampSeconds":10},
		{"type":"mcq","difficulty":"easy","text":"Q2","options":["a","b","c","d"],"correctOptionIndex":2,"timestampSeconds":20},
		{"type":"essay","difficulty":"easy","text":"Q3","timestampSeconds":30}
	]`})

	questions, err := client.GenerateQuestions(context.Background(), "transcript", "open-ended", "easy", "English", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if questions[0].Type != "open-ended" {
		t.Fatalf("expected open canonicalized to open-ended, got %q", questions[0].Type)
	}
	if questions[1].Type != "mcq" {
		t.Fatalf("expected mcq untouched, got %q", questions[1].Type)
	}
	// Unrecognized types pass through; persistence decides.
	if questions[2].Type != "essay" {
		t.Fatalf("expected unknown type passed through, got %q", questions[2].Type)
	}
}

func TestGenerateQuestionsTruncatesToMax(t *testing.T) {
	client := NewClient(&stubCaller{payload: `[
		{"type":"mcq","text":"1"},{"type":"mcq","text":"2"},{"type":"mcq","text":"3"},
		{"type":"mcq","text":"4"},{"type":"mcq","text":"5"},{"type":"mcq","text":"6"}
	]`})

	questions, err := client.GenerateQuestions(context.Background(), "transcript", "mcq", "easy", "English", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
}

func TestClarifyAmbiguityPlaceholderOnParseFailure(t *testing.T) {
	client := NewClient(&stubCaller{payload: `this is not json`})

	clar, err := client.ClarifyAmbiguity(context.Background(), spanFixture(), "English")
	if err != nil {
		t.Fatalf("parse failure must not propagate, got %v", err)
	}
	if clar.ClarificationText != clarificationUnavailable {
		t.Fatalf("expected placeholder text, got %q", clar.ClarificationText)
	}
	if len(clar.Examples) != 0 {
		t.Fatalf("expected empty examples, got %v", clar.Examples)
	}
	if clar.Definition != definitionUnavailable {
		t.Fatalf("expected placeholder definition, got %q", clar.Definition)
	}
}

func TestClarifyAmbiguityGatewayErrorPropagates(t *testing.T) {
	client := NewClient(&stubCaller{err: ErrRateLimit})

	_, err := client.ClarifyAmbiguity(context.Background(), spanFixture(), "English")
	if !errors.Is(err, ErrRateLimit) {
		t.Fatalf("expected gateway error to propagate, got %v", err)
	}
}

func TestClarifyAmbiguityDefaults(t *testing.T) {
	client := NewClient(&stubCaller{payload: `{}`})

	clar, err := client.ClarifyAmbiguity(context.Background(), spanFixture(), "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clar.ClarificationText != clarificationNoText {
		t.Fatalf("expected default clarification text, got %q", clar.ClarificationText)
	}
	if clar.Definition != definitionNotProvided {
		t.Fatalf("expected default definition, got %q", clar.Definition)
	}
	if clar.Examples == nil || len(clar.Examples) != 0 {
		t.Fatalf("expected empty non-nil examples, got %#v", clar.Examples)
	}
}

func TestClarifyAmbiguityFlattensObjectExamples(t *testing.T) {
	client := NewClient(&stubCaller{payload: `{
		"clarificationText": "explained",
		"definition": "a term",
		"examples": [
			"bare string",
			{"name":"sync","tags":["a","b"],"empty":null},
			7
		]
	}`})

	clar, err := client.ClarifyAmbiguity(context.Background(), spanFixture(), "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"bare string", "name: sync | tags: a, b", "7"}
	if len(clar.Examples) != len(want) {
		t.Fatalf("expected %d examples, got %v", len(want), clar.Examples)
	}
	for i := range want {
		if clar.Examples[i] != want[i] {
			t.Fatalf("example %d: expected %q, got %q", i, want[i], clar.Examples[i])
		}
	}
}

func TestAnswerDoubt(t *testing.T) {
	client := NewClient(&stubCaller{payload: `{"answer":"because the state changed"}`})

	answer, err := client.AnswerDoubt(context.Background(), "context", "why?", "English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "because the state changed" {
		t.Fatalf("unexpected answer %q", answer)
	}
}

func spanFixture() domain.AmbiguitySpan {
	return domain.AmbiguitySpan{
		Snippet: "a 3-step synchronization process",
		Reason:  "needs a breakdown",
	}
}
