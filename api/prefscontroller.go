package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lessoncast/playback"
)

type prefsController struct {
	deps Deps
}

// Register registers per-user preference endpoints. All of them require a
// signed-in session.
func (pc *prefsController) Register(r *gin.Engine) {
	g := r.Group("/api/prefs")
	g.Use(withIdentity(pc.deps.Sessions))
	g.GET("/playback-rate", pc.handleGetRate)
	g.PUT("/playback-rate", pc.handleSetRate)
}

// RateRequest updates the preferred playback rate.
type RateRequest struct {
	Rate float64 `json:"rate" binding:"required"`
}

func (pc *prefsController) handleGetRate(c *gin.Context) {
	ident := identity(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": pc.deps.Store.Rates(ident.UserID).PlaybackRate()})
}

func (pc *prefsController) handleSetRate(c *gin.Context) {
	ident := identity(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !playback.ValidRate(req.Rate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported playback rate"})
		return
	}

	if err := pc.deps.Store.Rates(ident.UserID).SetPlaybackRate(req.Rate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": req.Rate})
}
