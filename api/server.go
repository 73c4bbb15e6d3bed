package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lessoncast/auth"
	"lessoncast/config"
	"lessoncast/narration"
	"lessoncast/search"
	"lessoncast/store"
)

// JobQueue is the narration enqueue surface the API needs.
type JobQueue interface {
	EnqueueAll(jobs []narration.Job) error
}

// Deps bundles everything the HTTP layer serves from.
type Deps struct {
	Store    *store.Store
	Sessions *auth.Sessions
	Jobs     JobQueue
	Index    *search.Index
	Voices   *config.VoiceCatalog
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	(&authController{sessions: deps.Sessions}).Register(r)
	(&chaptersController{deps: deps}).Register(r)
	(&sectionsController{deps: deps}).Register(r)
	(&quizController{deps: deps}).Register(r)
	(&searchController{deps: deps}).Register(r)
	(&prefsController{deps: deps}).Register(r)
	(&narrationsController{deps: deps}).Register(r)
	return r
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
