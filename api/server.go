package api

import (
	"github.com/gin-gonic/gin"

	"newsbrief/config"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s := NewServer(cfg)
	s.RegisterRunRoutes(r)
	RegisterHealthRoutes(r)
	return r
}
