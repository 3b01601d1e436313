package v1

import (
	"net/http"

	"inkwell/internal/metrics"
	"inkwell/service"

	"github.com/gin-gonic/gin"
)

// ProfileAPI 聚合了用户主页与关注关系的 HTTP Handler。
type ProfileAPI struct {
	profiles *service.ProfileService
}

func NewProfileAPI(profiles *service.ProfileService) *ProfileAPI {
	return &ProfileAPI{profiles: profiles}
}

// Get returns a user's profile; the following flag depends on the viewer.
func (p *ProfileAPI) Get(c *gin.Context) {
	view, err := p.profiles.GetProfile(viewerID(c), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": view})
}

// Follow creates the follow edge from the viewer to the target user.
func (p *ProfileAPI) Follow(c *gin.Context) {
	view, err := p.profiles.Follow(mustUserID(c), c.Param("username"))
	metrics.IncFollow("follow", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": view})
}

// Unfollow removes the follow edge.
func (p *ProfileAPI) Unfollow(c *gin.Context) {
	view, err := p.profiles.Unfollow(mustUserID(c), c.Param("username"))
	metrics.IncFollow("unfollow", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": view})
}
