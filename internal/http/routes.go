package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TejasKabotula/youtube-genai-learning/internal/ai"
	"github.com/TejasKabotula/youtube-genai-learning/internal/config"
	"github.com/TejasKabotula/youtube-genai-learning/internal/domain"
	"github.com/TejasKabotula/youtube-genai-learning/internal/pipeline"
	"github.com/TejasKabotula/youtube-genai-learning/internal/services"
	"github.com/TejasKabotula/youtube-genai-learning/internal/storage"
)

// Transcript excerpt length for doubt answering. The full transcript can
// blow past the model context window; a prefix is enough for a tutor-style
// answer.
const doubtContextChars = 5000

const questionsPerRegenerate = 5

type API struct {
	cfg      config.Config
	store    *storage.Store
	ai       *ai.Client
	analyzer *pipeline.Analyzer
	report   *services.ReportService
}

func NewAPI(cfg config.Config, store *storage.Store, aiClient *ai.Client, analyzer *pipeline.Analyzer, report *services.ReportService) *API {
	return &API{cfg: cfg, store: store, ai: aiClient, analyzer: analyzer, report: report}
}

func registerRoutes(r *gin.Engine, api *API) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)

		apiGroup.POST("/videos/analyze", api.handleAnalyzeVideo)
		apiGroup.GET("/videos", api.handleListVideos)
		apiGroup.GET("/videos/:id", api.handleGetVideo)
		apiGroup.DELETE("/videos/:id", api.handleDeleteVideo)

		apiGroup.GET("/videos/:id/questions", api.handleListQuestions)
		apiGroup.POST("/videos/:id/questions/regenerate", api.handleRegenerateQuestions)
		apiGroup.PUT("/questions/:id", api.handleUpdateQuestion)
		apiGroup.DELETE("/questions/:id", api.handleDeleteQuestion)

		apiGroup.GET("/videos/:id/clarifications", api.handleListClarifications)

		apiGroup.POST("/videos/:id/doubts", api.handleAskDoubt)
		apiGroup.GET("/videos/:id/doubts", api.handleListDoubts)

		apiGroup.GET("/videos/:id/report/pdf", api.handleReportPDF)
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleAnalyzeVideo(c *gin.Context) {
	var req pipeline.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.SourceType {
	case domain.SourceYouTube:
		if strings.TrimSpace(req.YouTubeURL) == "" {
			respondMessage(c, http.StatusBadRequest, "YouTube URL is required")
			return
		}
	case domain.SourceUpload:
		if strings.TrimSpace(req.FilePath) == "" {
			respondMessage(c, http.StatusBadRequest, "file path is required")
			return
		}
	default:
		respondMessage(c, http.StatusBadRequest, "invalid source type")
		return
	}

	result, err := a.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		log.Printf("analysis failed: %v", err)
		switch {
		case errors.Is(err, pipeline.ErrNoTranscript):
			respondMessage(c, http.StatusBadRequest, pipeline.ErrNoTranscript.Error())
		case errors.Is(err, ai.ErrRateLimit):
			respondMessage(c, http.StatusTooManyRequests, ai.ErrRateLimit.Error())
		default:
			respondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (a *API) handleListVideos(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.ListVideos())
}

func (a *API) handleGetVideo(c *gin.Context) {
	video, err := a.store.GetVideo(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "video not found")
		return
	}

	summaries := a.store.ListSummariesByVideo(video.ID)
	c.JSON(http.StatusOK, gin.H{"video": video, "summaries": summaries})
}

func (a *API) handleDeleteVideo(c *gin.Context) {
	if err := a.store.DeleteVideo(c.Param("id")); err != nil {
		respondMessage(c, http.StatusNotFound, "video not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) handleListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.ListQuestionsByVideo(c.Param("id")))
}

func (a *API) handleRegenerateQuestions(c *gin.Context) {
	video, err := a.store.GetVideo(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "video not found")
		return
	}

	var payload struct {
		Type       string `json:"type" binding:"required"`
		Difficulty string `json:"difficulty"`
		Language   string `json:"language"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Difficulty == "" {
		payload.Difficulty = "mixed"
	}
	if payload.Language == "" {
		payload.Language = video.Language
	}

	questions, err := a.ai.GenerateQuestions(c.Request.Context(), video.Transcript, payload.Type, payload.Difficulty, payload.Language, questionsPerRegenerate)
	if err != nil {
		log.Printf("question regeneration failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ai.ErrRateLimit) {
			status = http.StatusTooManyRequests
		}
		respondMessage(c, status, "regeneration failed")
		return
	}

	saved := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		q.VideoID = video.ID
		created, err := a.store.CreateQuestion(q)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err)
			return
		}
		saved = append(saved, created)
	}

	c.JSON(http.StatusCreated, saved)
}

func (a *API) handleUpdateQuestion(c *gin.Context) {
	var payload domain.Question
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	payload.ID = c.Param("id")
	question, err := a.store.UpdateQuestion(payload)
	if err != nil {
		respondMessage(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, question)
}

func (a *API) handleDeleteQuestion(c *gin.Context) {
	if err := a.store.DeleteQuestion(c.Param("id")); err != nil {
		respondMessage(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

func (a *API) handleListClarifications(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.ListClarificationsByVideo(c.Param("id")))
}

func (a *API) handleAskDoubt(c *gin.Context) {
	video, err := a.store.GetVideo(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "video not found")
		return
	}

	var payload struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	chunk := video.Transcript
	if len(chunk) > doubtContextChars {
		chunk = chunk[:doubtContextChars]
	}

	answer, err := a.ai.AnswerDoubt(c.Request.Context(), chunk, payload.Question, video.Language)
	if err != nil {
		log.Printf("doubt answering failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ai.ErrRateLimit) {
			status = http.StatusTooManyRequests
		}
		respondMessage(c, status, "failed to answer doubt")
		return
	}

	doubt, err := a.store.CreateDoubt(domain.Doubt{
		VideoID:  video.ID,
		Question: payload.Question,
		Answer:   answer,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, doubt)
}

func (a *API) handleListDoubts(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.ListDoubtsByVideo(c.Param("id")))
}

func (a *API) handleReportPDF(c *gin.Context) {
	video, err := a.store.GetVideo(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusNotFound, "video not found")
		return
	}

	summaries := a.store.ListSummariesByVideo(video.ID)
	questions := a.store.ListQuestionsByVideo(video.ID)
	clarifications := a.store.ListClarificationsByVideo(video.ID)

	data, err := a.report.GenerateReport(video, summaries, questions, clarifications)
	if err != nil {
		log.Printf("report generation failed: %v", err)
		respondMessage(c, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.pdf", video.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
