package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"newsbrief/config"
	"newsbrief/orchestrator"
	"newsbrief/types"

	"github.com/gin-gonic/gin"
)

// Server holds run state for the HTTP surface: at most one pipeline run
// at a time, plus the most recent batch result.
type Server struct {
	cfg *config.Config

	mu      sync.Mutex
	running bool
	latest  *types.BatchResult
	lastErr string
}

// NewServer creates the API server state.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// RegisterRunRoutes registers pipeline-run endpoints.
func (s *Server) RegisterRunRoutes(r *gin.Engine) {
	g := r.Group("/api/runs")
	g.POST("", s.handleStartRun)
	g.GET("/latest", s.handleLatestBatch)
	g.GET("/status", s.handleStatus)
}

// handleStartRun triggers one pipeline cycle asynchronously and returns
// 202 Accepted immediately. A second trigger while a run is in flight
// gets 409.
func (s *Server) handleStartRun(c *gin.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		batch, err := orchestrator.RunOnce(context.Background(), s.cfg)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.running = false
		if err != nil {
			s.lastErr = err.Error()
			log.Printf("❌ Run failed: %v", err)
			return
		}
		s.lastErr = ""
		s.latest = batch
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "run started"})
}

// handleLatestBatch returns the most recent completed batch result.
func (s *Server) handleLatestBatch(c *gin.Context) {
	s.mu.Lock()
	batch := s.latest
	s.mu.Unlock()

	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed run yet"})
		return
	}
	c.JSON(http.StatusOK, batch)
}

// handleStatus reports whether a run is in flight and the last run
// error, if any.
func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"running":    s.running,
		"has_result": s.latest != nil,
		"last_error": s.lastErr,
	})
}
