package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lessoncast/importer"
	"lessoncast/narration"
	"lessoncast/store"
	"lessoncast/types"
)

type sectionsController struct {
	deps Deps
}

// Register registers section endpoints. Reads are public; writes, imports and
// narration require an editor session.
func (sc *sectionsController) Register(r *gin.Engine) {
	g := r.Group("/api/sections")
	g.Use(withIdentity(sc.deps.Sessions))
	g.GET("/:id", sc.handleGet)

	edit := g.Group("")
	edit.Use(requireEditor())
	edit.POST("", sc.handleCreate)
	edit.PUT("/:id", sc.handleUpdate)
	edit.DELETE("/:id", sc.handleDelete)
	edit.POST("/:id/narrate", sc.handleNarrate)
	edit.POST("/import", sc.handleImport)
}

// SectionRequest creates or updates a section.
type SectionRequest struct {
	ChapterID  string          `json:"chapter_id" binding:"required"`
	Order      int             `json:"order"`
	Title      string          `json:"title" binding:"required"`
	Text       string          `json:"text"`
	Type       string          `json:"type"`
	Objectives []string        `json:"objectives"`
	KeyTerms   []types.KeyTerm `json:"key_terms"`
}

// NarrateRequest queues narration, optionally pinning a voice.
type NarrateRequest struct {
	Voice string `json:"voice"`
}

// ImportRequest extracts a draft section from an external page.
type ImportRequest struct {
	URL       string `json:"url" binding:"required,url"`
	ChapterID string `json:"chapter_id" binding:"required"`
	Order     int    `json:"order"`
}

func (sc *sectionsController) handleGet(c *gin.Context) {
	sec := sc.sectionByIDParam(c)
	if sec == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": sec})
}

func (sc *sectionsController) handleCreate(c *gin.Context) {
	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := sc.deps.Store.GetChapter(ctx, req.ChapterID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	sec := &types.Section{
		ID:         uuid.NewString(),
		ChapterID:  req.ChapterID,
		Order:      req.Order,
		Title:      req.Title,
		Text:       req.Text,
		Type:       req.Type,
		Objectives: req.Objectives,
		KeyTerms:   req.KeyTerms,
		UpdatedAt:  time.Now().UTC(),
	}
	if sec.Type == "" {
		sec.Type = "content"
	}
	if err := sc.deps.Store.PutSection(ctx, sec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": sec})
}

// handleUpdate replaces the editable fields. Narration URLs are cleared when
// the text changes so the player never highlights against stale timestamps.
func (sc *sectionsController) handleUpdate(c *gin.Context) {
	sec := sc.sectionByIDParam(c)
	if sec == nil {
		return
	}

	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Text != sec.Text {
		sec.AudioURL = ""
		sec.TimestampsURL = ""
		sec.Duration = 0
	}
	sec.ChapterID = req.ChapterID
	sec.Order = req.Order
	sec.Title = req.Title
	sec.Text = req.Text
	if req.Type != "" {
		sec.Type = req.Type
	}
	sec.Objectives = req.Objectives
	sec.KeyTerms = req.KeyTerms
	sec.UpdatedAt = time.Now().UTC()

	if err := sc.deps.Store.PutSection(c.Request.Context(), sec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": sec})
}

func (sc *sectionsController) handleDelete(c *gin.Context) {
	sec := sc.sectionByIDParam(c)
	if sec == nil {
		return
	}
	if err := sc.deps.Store.DeleteSection(c.Request.Context(), sec.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (sc *sectionsController) handleNarrate(c *gin.Context) {
	sec := sc.sectionByIDParam(c)
	if sec == nil {
		return
	}

	var req NarrateRequest
	// Body is optional; an empty narrate request uses the default voice.
	_ = c.ShouldBindJSON(&req)

	voice := sc.deps.Voices.Resolve("section", req.Voice)
	jobs := narration.JobsForSection(sec, voice)
	if len(jobs) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "section has no text to narrate"})
		return
	}

	ids, err := enqueueJobs(c, sc.deps, jobs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "jobs": ids})
}

func (sc *sectionsController) handleImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := sc.deps.Store.GetChapter(ctx, req.ChapterID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	draft, err := importer.FromURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	sec := draft.Section(req.ChapterID, req.Order)
	if err := sc.deps.Store.PutSection(ctx, sec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": sec})
}

func (sc *sectionsController) sectionByIDParam(c *gin.Context) *types.Section {
	sec, err := sc.deps.Store.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil
	}
	return sec
}
