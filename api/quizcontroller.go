package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lessoncast/narration"
	"lessoncast/store"
	"lessoncast/types"
)

type quizController struct {
	deps Deps
}

// Register registers quiz question endpoints.
func (qc *quizController) Register(r *gin.Engine) {
	g := r.Group("/api/questions")
	g.Use(withIdentity(qc.deps.Sessions))
	g.GET("/:id", qc.handleGet)

	edit := g.Group("")
	edit.Use(requireEditor())
	edit.POST("", qc.handleCreate)
	edit.PUT("/:id", qc.handleUpdate)
	edit.DELETE("/:id", qc.handleDelete)
	edit.POST("/:id/narrate", qc.handleNarrate)
}

// QuestionRequest creates or updates a quiz question.
type QuestionRequest struct {
	ChapterID            string   `json:"chapter_id" binding:"required"`
	Order                int      `json:"order"`
	Question             string   `json:"question" binding:"required"`
	Options              []string `json:"options" binding:"required,min=2"`
	CorrectAnswer        int      `json:"correct_answer"`
	Explanation          string   `json:"explanation"`
	CorrectExplanation   string   `json:"correct_explanation"`
	IncorrectExplanation []string `json:"incorrect_explanations"`
}

func (qc *quizController) handleGet(c *gin.Context) {
	q := qc.questionByIDParam(c)
	if q == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func (qc *quizController) handleCreate(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct_answer out of range"})
		return
	}

	ctx := c.Request.Context()
	if _, err := qc.deps.Store.GetChapter(ctx, req.ChapterID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	q := &types.QuizQuestion{
		ID:                   uuid.NewString(),
		ChapterID:            req.ChapterID,
		Order:                req.Order,
		Question:             req.Question,
		Options:              req.Options,
		CorrectAnswer:        req.CorrectAnswer,
		Explanation:          req.Explanation,
		CorrectExplanation:   req.CorrectExplanation,
		IncorrectExplanation: req.IncorrectExplanation,
		UpdatedAt:            time.Now().UTC(),
	}
	if err := qc.deps.Store.PutQuizQuestion(ctx, q); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": q})
}

// handleUpdate replaces the editable fields and drops all narration URLs; the
// question's clips are re-queued as a set so option indexes stay aligned.
func (qc *quizController) handleUpdate(c *gin.Context) {
	q := qc.questionByIDParam(c)
	if q == nil {
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct_answer out of range"})
		return
	}

	*q = types.QuizQuestion{
		ID:                   q.ID,
		ChapterID:            req.ChapterID,
		Order:                req.Order,
		Question:             req.Question,
		Options:              req.Options,
		CorrectAnswer:        req.CorrectAnswer,
		Explanation:          req.Explanation,
		CorrectExplanation:   req.CorrectExplanation,
		IncorrectExplanation: req.IncorrectExplanation,
		UpdatedAt:            time.Now().UTC(),
	}
	if err := qc.deps.Store.PutQuizQuestion(c.Request.Context(), q); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": q})
}

func (qc *quizController) handleDelete(c *gin.Context) {
	q := qc.questionByIDParam(c)
	if q == nil {
		return
	}
	if err := qc.deps.Store.DeleteQuizQuestion(c.Request.Context(), q.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (qc *quizController) handleNarrate(c *gin.Context) {
	q := qc.questionByIDParam(c)
	if q == nil {
		return
	}

	var req NarrateRequest
	_ = c.ShouldBindJSON(&req)

	voice := qc.deps.Voices.Resolve("quiz", req.Voice)
	jobs := narration.JobsForQuestion(q, voice)
	if len(jobs) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "question has no text to narrate"})
		return
	}

	ids, err := enqueueJobs(c, qc.deps, jobs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "jobs": ids})
}

func (qc *quizController) questionByIDParam(c *gin.Context) *types.QuizQuestion {
	q, err := qc.deps.Store.GetQuizQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil
	}
	return q
}
