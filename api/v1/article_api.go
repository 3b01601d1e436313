package v1

import (
	"net/http"

	"inkwell/api/v1/request"
	"inkwell/internal/metrics"
	"inkwell/service"

	"github.com/gin-gonic/gin"
)

// ArticleAPI exposes HTTP handlers for article CRUD, listing, feed,
// favorites, bulk publish and stats.
// ArticleAPI 聚合了所有与文章相关的 HTTP Handler。
type ArticleAPI struct {
	articles *service.ArticleService
	stats    *service.StatsService
}

// NewArticleAPI wires the service layer into the HTTP handlers.
func NewArticleAPI(articles *service.ArticleService, stats *service.StatsService) *ArticleAPI {
	return &ArticleAPI{articles: articles, stats: stats}
}

// Get returns one article under the viewer's visibility.
func (a *ArticleAPI) Get(c *gin.Context) {
	view, err := a.articles.GetBySlug(c.Param("slug"), viewerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": view})
}

// List returns filtered, paginated articles for the viewer.
func (a *ArticleAPI) List(c *gin.Context) {
	var q request.ListArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	views, err := a.articles.List(viewerID(c), service.ListFilter{
		Tag:         q.Tag,
		Author:      q.Author,
		FavoritedBy: q.Favorited,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": views, "articlesCount": len(views)})
}

// Feed returns the authenticated viewer's personalized feed.
func (a *ArticleAPI) Feed(c *gin.Context) {
	var q request.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	views, err := a.articles.Feed(mustUserID(c), q.Limit, q.Offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": views, "articlesCount": len(views)})
}

// Create handles new article creation; articles default to drafts.
func (a *ArticleAPI) Create(c *gin.Context) {
	var req request.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncArticleWrite("create", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isDraft := true
	if req.IsDraft != nil {
		isDraft = *req.IsDraft
	}
	view, err := a.articles.Create(mustUserID(c), service.CreateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
		IsDraft:     isDraft,
	})
	metrics.IncArticleWrite("create", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": view})
}

// Update mutates the author's own article.
func (a *ArticleAPI) Update(c *gin.Context) {
	var req request.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncArticleWrite("update", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := a.articles.Update(mustUserID(c), c.Param("slug"), service.UpdateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	})
	metrics.IncArticleWrite("update", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": view})
}

// Delete removes the author's own article with its comments and favorites.
func (a *ArticleAPI) Delete(c *gin.Context) {
	err := a.articles.Delete(mustUserID(c), c.Param("slug"))
	metrics.IncArticleWrite("delete", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Favorite marks the article as favorited by the viewer.
func (a *ArticleAPI) Favorite(c *gin.Context) {
	view, err := a.articles.Favorite(mustUserID(c), c.Param("slug"))
	metrics.IncFavorite("favorite", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": view})
}

// Unfavorite removes the viewer's favorite edge.
func (a *ArticleAPI) Unfavorite(c *gin.Context) {
	view, err := a.articles.Unfavorite(mustUserID(c), c.Param("slug"))
	metrics.IncFavorite("unfavorite", status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": view})
}

// Publish flips a batch of the author's drafts to published, all or nothing.
func (a *ArticleAPI) Publish(c *gin.Context) {
	var req request.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncPublish("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	views, err := a.articles.PublishDrafts(mustUserID(c), req.Slugs)
	metrics.IncPublish(status(err))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": views, "articlesCount": len(views)})
}

// MonthlyStats returns the author's months with high interaction totals.
func (a *ArticleAPI) MonthlyStats(c *gin.Context) {
	var q request.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats, err := a.stats.MonthlyHighInteraction(mustUserID(c), q.Min)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
