package storage

import (
	"testing"

	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store, dir
}

func TestCreateAndGetVideo(t *testing.T) {
	store, _ := newTestStore(t)

	video, err := store.CreateVideo(domain.Video{
		SourceType: domain.SourceYouTube,
		Title:      "Test Video",
		Language:   "English",
		Transcript: "hello",
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if video.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if video.CreatedAt == 0 {
		t.Fatalf("expected createdAt assigned")
	}

	got, err := store.GetVideo(video.ID)
	if err != nil {
		t.Fatalf("get video: %v", err)
	}
	if got.Title != "Test Video" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestDeleteVideoCascades(t *testing.T) {
	store, _ := newTestStore(t)

	video, err := store.CreateVideo(domain.Video{Title: "V", Transcript: "t"})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}

	if _, err := store.CreateSummary(domain.Summary{VideoID: video.ID, Level: "short", Content: "s"}); err != nil {
		t.Fatalf("create summary: %v", err)
	}
	if _, err := store.CreateQuestion(domain.Question{VideoID: video.ID, Type: "mcq", Text: "q"}); err != nil {
		t.Fatalf("create question: %v", err)
	}
	if _, err := store.CreateClarification(domain.Clarification{VideoID: video.ID, TranscriptSnippet: "x", ClarificationText: "c"}); err != nil {
		t.Fatalf("create clarification: %v", err)
	}
	if _, err := store.CreateDoubt(domain.Doubt{VideoID: video.ID, Question: "?", Answer: "!"}); err != nil {
		t.Fatalf("create doubt: %v", err)
	}

	if err := store.DeleteVideo(video.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}

	if len(store.ListSummariesByVideo(video.ID)) != 0 {
		t.Fatalf("expected summaries removed")
	}
	if len(store.ListQuestionsByVideo(video.ID)) != 0 {
		t.Fatalf("expected questions removed")
	}
	if len(store.ListClarificationsByVideo(video.ID)) != 0 {
		t.Fatalf("expected clarifications removed")
	}
	if len(store.ListDoubtsByVideo(video.ID)) != 0 {
		t.Fatalf("expected doubts removed")
	}
}

func TestStoreSurvivesReload(t *testing.T) {
	store, dir := newTestStore(t)

	video, err := store.CreateVideo(domain.Video{Title: "persisted", Transcript: "t"})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if _, err := store.CreateSummary(domain.Summary{VideoID: video.ID, Level: "short", Content: "s"}); err != nil {
		t.Fatalf("create summary: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	got, err := reopened.GetVideo(video.ID)
	if err != nil {
		t.Fatalf("get video after reload: %v", err)
	}
	if got.Title != "persisted" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if len(reopened.ListSummariesByVideo(video.ID)) != 1 {
		t.Fatalf("expected summary after reload")
	}
}

func TestUpdateQuestionKeepsVideoBinding(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.CreateQuestion(domain.Question{VideoID: "vid-1", Type: "mcq", Text: "before"})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	updated, err := store.UpdateQuestion(domain.Question{ID: created.ID, VideoID: "someone-else", Type: "mcq", Text: "after"})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.Text != "after" {
		t.Fatalf("expected text updated, got %q", updated.Text)
	}
	if updated.VideoID != "vid-1" {
		t.Fatalf("video binding must not change, got %q", updated.VideoID)
	}

	if _, err := store.UpdateQuestion(domain.Question{ID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown question")
	}
}
