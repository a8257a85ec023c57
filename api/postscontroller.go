package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialbot/orchestrator"
	"socialbot/types"
)

// CreatePostRequest is the payload for scheduling or publishing a post.
type CreatePostRequest struct {
	ContentItem   types.ContentItem `json:"content_item"`
	ScheduledTime string            `json:"scheduled_time"`
	PostNow       bool              `json:"post_now"`
}

// RegisterPostRoutes registers the scheduled-post endpoints.
func RegisterPostRoutes(r *gin.Engine, runner *orchestrator.Runner) {
	posts := r.Group("/api/posts")

	posts.GET("", func(c *gin.Context) {
		list, err := runner.ListScheduled(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": list, "count": len(list)})
	})

	posts.POST("", func(c *gin.Context) {
		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := runner.CreatePost(c.Request.Context(), req.ContentItem, req.ScheduledTime, req.PostNow)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if req.PostNow {
			c.JSON(http.StatusOK, gin.H{"media_id": res.MediaID, "caption": res.Caption})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": res.PostID, "caption": res.Caption})
	})

	posts.POST("/:id/publish", func(c *gin.Context) {
		id := c.Param("id")
		mediaID, err := runner.PublishScheduled(c.Request.Context(), id)
		if err != nil {
			if orchestrator.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "post not found", "id": id})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"media_id": mediaID, "id": id})
	})

	posts.DELETE("/:id", func(c *gin.Context) {
		id := c.Param("id")
		removed, err := runner.DeleteScheduled(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found", "id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
	})
}
