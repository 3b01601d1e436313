package v1

import (
	"errors"
	"net/http"

	"inkwell/service"

	"github.com/gin-gonic/gin"
)

// viewerID extracts the optional viewer identity set by the auth
// middleware. nil means anonymous.
func viewerID(c *gin.Context) *uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint64); ok {
			return &id
		}
	}
	return nil
}

// mustUserID reads the authenticated user id; only valid behind the
// required-auth middleware.
func mustUserID(c *gin.Context) uint64 {
	return c.GetUint64("user_id")
}

// writeError maps a classified domain error to its HTTP response. Services
// never decide status codes.
func writeError(c *gin.Context, err error) {
	var publishErr *service.PublishNotFoundError
	if errors.As(err, &publishErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": publishErr.Error(), "slugs": publishErr.Slugs})
		return
	}

	switch {
	case errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrArticleConflict),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrCannotFollowSelf),
		errors.Is(err, service.ErrCannotUnfollowSelf),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// status returns the metrics label for an operation outcome.
func status(err error) string {
	if err == nil {
		return "success"
	}
	return "error"
}
