package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lessoncast/store"
	"lessoncast/types"
)

type chaptersController struct {
	deps Deps
}

// Register registers chapter endpoints. Reads are public; writes require an
// editor session.
func (cc *chaptersController) Register(r *gin.Engine) {
	g := r.Group("/api/chapters")
	g.Use(withIdentity(cc.deps.Sessions))
	g.GET("", cc.handleList)
	g.GET("/:number", cc.handleGet)

	edit := g.Group("")
	edit.Use(requireEditor())
	edit.POST("", cc.handleCreate)
	edit.PUT("/:number", cc.handleUpdate)
	edit.DELETE("/:number", cc.handleDelete)
}

// ChapterRequest creates or updates a chapter.
type ChapterRequest struct {
	Number      int    `json:"number" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (cc *chaptersController) handleList(c *gin.Context) {
	chapters, err := cc.deps.Store.ListChapters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

// handleGet returns a chapter with its sections and quiz questions, the full
// payload the lesson player needs.
func (cc *chaptersController) handleGet(c *gin.Context) {
	ch := cc.chapterByNumberParam(c)
	if ch == nil {
		return
	}

	ctx := c.Request.Context()
	sections, err := cc.deps.Store.ListSections(ctx, ch.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	questions, err := cc.deps.Store.ListQuizQuestions(ctx, ch.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chapter":   ch,
		"sections":  sections,
		"questions": questions,
	})
}

func (cc *chaptersController) handleCreate(c *gin.Context) {
	var req ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := cc.deps.Store.GetChapterByNumber(ctx, req.Number); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "chapter number already in use"})
		return
	}

	now := time.Now().UTC()
	ch := &types.Chapter{
		ID:          uuid.NewString(),
		Number:      req.Number,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := cc.deps.Store.PutChapter(ctx, ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chapter": ch})
}

func (cc *chaptersController) handleUpdate(c *gin.Context) {
	ch := cc.chapterByNumberParam(c)
	if ch == nil {
		return
	}

	var req ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch.Number = req.Number
	ch.Title = req.Title
	ch.Description = req.Description
	ch.UpdatedAt = time.Now().UTC()
	if err := cc.deps.Store.PutChapter(c.Request.Context(), ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapter": ch})
}

func (cc *chaptersController) handleDelete(c *gin.Context) {
	ch := cc.chapterByNumberParam(c)
	if ch == nil {
		return
	}
	if err := cc.deps.Store.DeleteChapter(c.Request.Context(), ch.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// chapterByNumberParam resolves the :number path param, writing the error
// response itself when the chapter cannot be found.
func (cc *chaptersController) chapterByNumberParam(c *gin.Context) *types.Chapter {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chapter number must be an integer"})
		return nil
	}
	ch, err := cc.deps.Store.GetChapterByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil
	}
	return ch
}
