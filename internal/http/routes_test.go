package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/TejasKabotula/youtube-genai-learning/internal/ai"
	"github.com/TejasKabotula/youtube-genai-learning/internal/config"
	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
	"github.com/TejasKabotula/youtube-genai-learning/internal/pipeline"
	"github.com/TejasKabotula/youtube-genai-learning/internal/services"
	"github.com/TejasKabotula/youtube-genai-learning/internal/storage"
	"github.com/TejasKabotula/youtube-genai-learning/internal/transcript"
)

type fakeTranscripts struct {
	text string
}

func (f *fakeTranscripts) Acquire(context.Context, transcript.Request) (string, error) {
	return f.text, nil
}

// setupTestServer wires the full stack with an empty API key, so every AI
// call is served by deterministic mock content with no network I/O.
func setupTestServer(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()

	cfg := config.Config{
		Port:           "8080",
		DataDir:        t.TempDir(),
		MaxUploadBytes: 1 * 1024 * 1024,
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	aiClient := ai.NewClient(ai.NewGateway(cfg))
	analyzer := pipeline.NewAnalyzer(aiClient, &fakeTranscripts{text: "a lecture about synchronization and state"}, store)
	report := services.NewReportService()

	engine := gin.New()
	engine.Use(gin.Recovery())
	api := NewAPI(cfg, store, aiClient, analyzer, report)
	registerRoutes(engine, api)

	return engine, store
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, _ := setupTestServer(t)

	body := `{"sourceType":"youtube","summaryLevels":["short"],"questionTypes":["mcq"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/videos/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing url, got %d", rec.Code)
	}

	body = `{"sourceType":"carrier-pigeon"}`
	req = httptest.NewRequest(http.MethodPost, "/api/videos/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid source type, got %d", rec.Code)
	}
}

func TestAnalyzeEndToEndInMockMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, store := setupTestServer(t)

	payload := pipeline.Request{
		SourceType:    domain.SourceYouTube,
		YouTubeURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		SummaryLevels: []string{"short", "medium"},
		QuestionTypes: []string{"mcq"},
		Difficulty:    "medium",
		Language:      "English",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/videos/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.VideoID == "" {
		t.Fatalf("expected video id in response")
	}

	video, err := store.GetVideo(result.VideoID)
	if err != nil {
		t.Fatalf("video not persisted: %v", err)
	}
	if len(video.Topics) == 0 {
		t.Fatalf("expected topics on the video record")
	}

	summaries := store.ListSummariesByVideo(result.VideoID)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	if len(store.ListQuestionsByVideo(result.VideoID)) == 0 {
		t.Fatalf("expected questions persisted")
	}
	if len(store.ListClarificationsByVideo(result.VideoID)) == 0 {
		t.Fatalf("expected clarifications persisted")
	}
}

func TestAskDoubt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, store := setupTestServer(t)

	video, err := store.CreateVideo(domain.Video{Title: "V", Language: "English", Transcript: "the lecture text"})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/videos/"+video.ID+"/doubts", strings.NewReader(`{"question":"what is sync?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var doubt domain.Doubt
	if err := json.Unmarshal(rec.Body.Bytes(), &doubt); err != nil {
		t.Fatalf("decode doubt: %v", err)
	}
	if doubt.Answer == "" {
		t.Fatalf("expected an answer")
	}

	if len(store.ListDoubtsByVideo(video.ID)) != 1 {
		t.Fatalf("expected doubt persisted")
	}
}

func TestReportPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, store := setupTestServer(t)

	video, err := store.CreateVideo(domain.Video{
		Title:      "V",
		Language:   "English",
		Transcript: "text",
		Topics:     []domain.Topic{{Topic: "Intro", Start: 0, End: 60, KeyInsight: "x"}},
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if _, err := store.CreateSummary(domain.Summary{VideoID: video.ID, Level: "short", Content: "short summary"}); err != nil {
		t.Fatalf("create summary: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/"+video.ID+"/report/pdf", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF payload")
	}
}

func TestQuestionUpdateAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, store := setupTestServer(t)

	question, err := store.CreateQuestion(domain.Question{VideoID: "vid", Type: "mcq", Text: "before"})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/questions/"+question.ID, strings.NewReader(`{"type":"mcq","difficulty":"easy","text":"after"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := store.UpdateQuestion(domain.Question{ID: question.ID, Text: "after again"})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.VideoID != "vid" {
		t.Fatalf("video binding lost")
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/questions/"+question.ID, nil)
	rec = httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/questions/"+question.ID, nil)
	rec = httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing question, got %d", rec.Code)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/does-not-exist", nil)
	rec := httptest.NewRecorder()

	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
