package api

import (
	"github.com/gin-gonic/gin"

	"socialbot/orchestrator"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(runner *orchestrator.Runner) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	RegisterPostRoutes(r, runner)
	return r
}
