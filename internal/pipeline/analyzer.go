package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/TejasKabotula/youtube-genai-learning/internal/ai"
	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
	"github.com/TejasKabotula/youtube-genai-learning/internal/storage"
	"github.com/TejasKabotula/youtube-genai-learning/internal/transcript"
)

const (
	maxQuestionsPerType = 10
	maxClarifiedSpans   = 5
)

// ErrNoTranscript rejects a request before any generation runs. The text
// is user-facing.
var ErrNoTranscript = errors.New("no transcript could be generated for this video, please ensure the video has subtitles or captions enabled")

// Generator is the slice of the AI client the pipeline depends on.
type Generator interface {
	GenerateSummary(ctx context.Context, transcript, language, level string) (string, error)
	ExtractTopics(ctx context.Context, transcript string) ([]domain.Topic, error)
	GenerateQuestions(ctx context.Context, transcript, qType, difficulty, language string, maxCount int) ([]domain.Question, error)
	DetectAmbiguities(ctx context.Context, transcript string) ([]domain.AmbiguitySpan, error)
	ClarifyAmbiguity(ctx context.Context, span domain.AmbiguitySpan, language string) (domain.Clarification, error)
}

type Request struct {
	SourceType    string   `json:"sourceType"`
	YouTubeURL    string   `json:"youtubeUrl"`
	FilePath      string   `json:"filePath"`
	SummaryLevels []string `json:"summaryLevels"`
	QuestionTypes []string `json:"questionTypes"`
	Difficulty    string   `json:"difficulty"`
	Language      string   `json:"language"`
}

type Result struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// Analyzer drives the end-to-end analysis for one video: transcript, then
// topics, then a concurrent fan-out of summaries, questions and
// clarifications with per-branch failure isolation.
type Analyzer struct {
	gen         Generator
	transcripts transcript.Provider
	store       *storage.Store
}

func NewAnalyzer(gen Generator, transcripts transcript.Provider, store *storage.Store) *Analyzer {
	return &Analyzer{gen: gen, transcripts: transcripts, store: store}
}

func (a *Analyzer) Analyze(ctx context.Context, req Request) (Result, error) {
	text, err := a.transcripts.Acquire(ctx, transcript.Request{
		SourceType: req.SourceType,
		YouTubeURL: req.YouTubeURL,
		FilePath:   req.FilePath,
		Language:   req.Language,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrNoTranscript
	}

	// Topics gate the rest of the analysis: a failure here is fatal.
	topics, err := a.gen.ExtractTopics(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("topic extraction failed: %w", err)
	}

	video, err := a.store.CreateVideo(a.buildVideo(req, text, topics))
	if err != nil {
		return Result{}, fmt.Errorf("save video: %w", err)
	}

	summaries, questions, clarifications, err := a.fanOut(ctx, text, req)
	if err != nil {
		return Result{}, err
	}

	for _, level := range req.SummaryLevels {
		content, ok := summaries[level]
		if !ok {
			continue
		}
		if _, err := a.store.CreateSummary(domain.Summary{VideoID: video.ID, Level: level, Content: content}); err != nil {
			return Result{}, fmt.Errorf("save summary: %w", err)
		}
	}
	for _, q := range questions {
		q.VideoID = video.ID
		if _, err := a.store.CreateQuestion(q); err != nil {
			return Result{}, fmt.Errorf("save question: %w", err)
		}
	}
	for _, clar := range clarifications {
		clar.VideoID = video.ID
		if _, err := a.store.CreateClarification(clar); err != nil {
			return Result{}, fmt.Errorf("save clarification: %w", err)
		}
	}

	return Result{VideoID: video.ID, Title: video.Title}, nil
}

func (a *Analyzer) buildVideo(req Request, text string, topics []domain.Topic) domain.Video {
	video := domain.Video{
		SourceType: req.SourceType,
		YouTubeURL: req.YouTubeURL,
		FilePath:   req.FilePath,
		Language:   req.Language,
		Transcript: text,
		Topics:     topics,
		Title:      "Untitled Video",
	}

	switch req.SourceType {
	case domain.SourceYouTube:
		videoID := transcript.ExtractVideoID(req.YouTubeURL)
		video.Title = fmt.Sprintf("YouTube Video (%s)", videoID)
		video.ThumbnailURL = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)
	case domain.SourceUpload:
		video.Title = "Uploaded Video"
	}

	return video
}

// fanOut runs the summary, question and ambiguity branches concurrently.
// A failed branch is logged and its artifact omitted; only a rate limit
// fails the whole request, after all branches have been joined.
func (a *Analyzer) fanOut(ctx context.Context, text string, req Request) (map[string]string, []domain.Question, []domain.Clarification, error) {
	var mu sync.Mutex
	summaries := make(map[string]string)
	questions := make([]domain.Question, 0)
	clarifications := make([]domain.Clarification, 0)

	g, ctx := errgroup.WithContext(ctx)

	for _, level := range req.SummaryLevels {
		level := level
		g.Go(func() error {
			content, err := a.gen.GenerateSummary(ctx, text, req.Language, level)
			if err != nil {
				if errors.Is(err, ai.ErrRateLimit) {
					return err
				}
				log.Printf("summary generation failed for level %s: %v", level, err)
				return nil
			}
			mu.Lock()
			summaries[level] = content
			mu.Unlock()
			return nil
		})
	}

	for _, qType := range req.QuestionTypes {
		qType := qType
		g.Go(func() error {
			qs, err := a.gen.GenerateQuestions(ctx, text, qType, req.Difficulty, req.Language, maxQuestionsPerType)
			if err != nil {
				if errors.Is(err, ai.ErrRateLimit) {
					return err
				}
				log.Printf("question generation failed for type %s: %v", qType, err)
				return nil
			}
			mu.Lock()
			questions = append(questions, qs...)
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		spans, err := a.gen.DetectAmbiguities(ctx, text)
		if err != nil {
			if errors.Is(err, ai.ErrRateLimit) {
				return err
			}
			log.Printf("ambiguity detection failed: %v", err)
			return nil
		}
		if len(spans) > maxClarifiedSpans {
			spans = spans[:maxClarifiedSpans]
		}

		cg, ctx := errgroup.WithContext(ctx)
		for _, span := range spans {
			span := span
			cg.Go(func() error {
				clar, err := a.gen.ClarifyAmbiguity(ctx, span, req.Language)
				if err != nil {
					if errors.Is(err, ai.ErrRateLimit) {
						return err
					}
					log.Printf("dropping clarification for span %q: %v", span.Snippet, err)
					return nil
				}
				mu.Lock()
				clarifications = append(clarifications, clar)
				mu.Unlock()
				return nil
			})
		}
		return cg.Wait()
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return summaries, questions, clarifications, nil
}
