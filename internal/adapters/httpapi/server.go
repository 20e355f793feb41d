package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/core"
	"github.com/riskdash/riskdash/internal/utils"
)

// Server exposes the analysis service as a JSON API for the dashboard.
type Server struct {
	service         *core.AnalysisService
	textProc        *utils.TextProcessor
	logger          *zap.Logger
	listenAddr      string
	maxContentBytes int
	httpServer      *http.Server
}

// NewServer creates a new API server. Mode should be one of gin's modes
// ("release" in production, "test" in tests).
func NewServer(
	service *core.AnalysisService,
	textProc *utils.TextProcessor,
	logger *zap.Logger,
	listenAddr string,
	mode string,
	maxContentBytes int,
) *Server {
	gin.SetMode(mode)

	s := &Server{
		service:         service,
		textProc:        textProc,
		logger:          logger,
		listenAddr:      listenAddr,
		maxContentBytes: maxContentBytes,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	s.registerRoutes(engine)

	s.httpServer = &http.Server{
		Addr:         listenAddr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/analyze", s.analyze)
		api.POST("/social-media/analyze", s.analyzeSocialMedia)
		api.GET("/scans", s.listScans)
		api.GET("/scans/:id", s.getScan)
		api.DELETE("/scans/:id", s.deleteScan)
		api.GET("/analytics", s.analytics)
		api.GET("/health", s.health)
	}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.logger.Info("API server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down, letting in-flight requests finish.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
