package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lessoncast/narration"
	"lessoncast/store"
)

type narrationsController struct {
	deps Deps
}

// Register registers the narration job status endpoint.
func (nc *narrationsController) Register(r *gin.Engine) {
	g := r.Group("/api/narrations")
	g.Use(withIdentity(nc.deps.Sessions))
	g.Use(requireEditor())
	g.GET("/:id", nc.handleStatus)
}

func (nc *narrationsController) handleStatus(c *gin.Context) {
	st, err := nc.deps.Store.GetNarrationStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired job"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": st})
}

// enqueueJobs publishes the jobs and records a queued status for each, so the
// authoring side can poll /api/narrations/:id. Returns the job IDs.
func enqueueJobs(c *gin.Context, deps Deps, jobs []narration.Job) ([]string, error) {
	if err := deps.Jobs.EnqueueAll(jobs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
		err := deps.Store.SetNarrationStatus(c.Request.Context(), &store.NarrationStatus{
			JobID:    job.ID,
			Kind:     job.Target.Kind,
			EntityID: job.Target.EntityID,
			State:    store.NarrationQueued,
		})
		if err != nil {
			// The job is already on the queue; a missing status record only
			// degrades polling.
			log.Printf("Could not record queued status for job %s: %v", job.ID, err)
		}
	}
	return ids, nil
}
