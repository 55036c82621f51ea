package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/TejasKabotula/youtube-genai-learning/internal/ai"
	"github.com/TejasKabotula/youtube-genai-learning/internal/config"
	"github.com/TejasKabotula/youtube-genai-learning/internal/pipeline"
	"github.com/TejasKabotula/youtube-genai-learning/internal/services"
	"github.com/TejasKabotula/youtube-genai-learning/internal/storage"
	"github.com/TejasKabotula/youtube-genai-learning/internal/transcript"
)

type Server struct {
	engine *gin.Engine
	cfg    config.Config
}

func NewServer(cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	gateway := ai.NewGateway(cfg)
	aiClient := ai.NewClient(gateway)
	transcripts := transcript.NewYouTube()
	analyzer := pipeline.NewAnalyzer(aiClient, transcripts, store)
	report := services.NewReportService()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(MaxBodySize(cfg.MaxUploadBytes))
	engine.Use(CORS())

	api := NewAPI(cfg, store, aiClient, analyzer, report)
	registerRoutes(engine, api)

	return &Server{engine: engine, cfg: cfg}, nil
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	return s.engine.Run(addr)
}
