package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lessoncast/types"
)

type searchController struct {
	deps Deps
}

// Register registers search endpoints. Querying is public; reindexing is an
// editor action.
func (sc *searchController) Register(r *gin.Engine) {
	g := r.Group("/api/search")
	g.Use(withIdentity(sc.deps.Sessions))
	g.GET("", sc.handleSearch)

	edit := g.Group("")
	edit.Use(requireEditor())
	edit.POST("/reindex", sc.handleReindex)
}

func (sc *searchController) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	results := sc.deps.Index.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// handleReindex rebuilds the search index from every section in the store.
func (sc *searchController) handleReindex(c *gin.Context) {
	ctx := c.Request.Context()
	chapters, err := sc.deps.Store.ListChapters(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var sections []*types.Section
	for _, ch := range chapters {
		secs, err := sc.deps.Store.ListSections(ctx, ch.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		sections = append(sections, secs...)
	}

	sc.deps.Index.Rebuild(ctx, sections)
	c.JSON(http.StatusOK, gin.H{"indexed": sc.deps.Index.Len()})
}
