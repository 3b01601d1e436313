package v1

import (
	"net/http"
	"strconv"

	"inkwell/api/v1/request"
	"inkwell/service"

	"github.com/gin-gonic/gin"
)

// CommentAPI 聚合了评论相关的 HTTP Handler。
type CommentAPI struct {
	comments *service.CommentService
}

func NewCommentAPI(comments *service.CommentService) *CommentAPI {
	return &CommentAPI{comments: comments}
}

// Create adds a comment to a visible article.
func (a *CommentAPI) Create(c *gin.Context) {
	var req request.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := a.comments.Create(mustUserID(c), c.Param("slug"), req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": view})
}

// List returns a visible article's comments for the viewer.
func (a *CommentAPI) List(c *gin.Context) {
	views, err := a.comments.List(viewerID(c), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// Delete removes the viewer's own comment.
func (a *CommentAPI) Delete(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	if err := a.comments.Delete(mustUserID(c), c.Param("slug"), commentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
