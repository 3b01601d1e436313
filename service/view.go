package service

import (
	"time"

	"inkwell/model"
)

// AuthorView 文章/评论作者的对外形态
type AuthorView struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	// Following is omitted for anonymous viewers and for self-views.
	Following *bool `json:"following,omitempty"`
}

// ArticleView 按观察者视角投影后的文章形态
type ArticleView struct {
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Body           string     `json:"body"`
	TagList        []string   `json:"tagList"`
	IsDraft        bool       `json:"isDraft"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Favorited      *bool      `json:"favorited,omitempty"`
	FavoritesCount int        `json:"favoritesCount"`
	CommentsCount  int        `json:"commentsCount"`
	Author         AuthorView `json:"author"`
}

// ProfileView 用户主页形态
type ProfileView struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following *bool  `json:"following,omitempty"`
}

// CommentView 评论形态
type CommentView struct {
	ID        uint64     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Body      string     `json:"body"`
	Author    AuthorView `json:"author"`
}

// ProjectArticle maps one fully loaded article plus a viewer identity into
// the externally visible shape. It is a pure function over the joined
// record: favorited/counts/following all come from the relations loaded by
// the same fetch, never from follow-up queries.
func ProjectArticle(article *model.Article, viewerID *uint64) ArticleView {
	tagList := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		tagList = append(tagList, tag.Name)
	}

	var favorited *bool
	if viewerID != nil {
		f := containsUser(article.FavoritedBy, *viewerID)
		favorited = &f
	}

	return ArticleView{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tagList,
		IsDraft:        article.IsDraft,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: len(article.FavoritedBy),
		CommentsCount:  len(article.Comments),
		Author:         projectAuthor(&article.Author, viewerID),
	}
}

// projectAuthor computes the author block from the author's preloaded
// follower set. A self-view never reports a following flag.
func projectAuthor(author *model.User, viewerID *uint64) AuthorView {
	var following *bool
	if viewerID != nil && *viewerID != author.ID {
		f := containsUser(author.Followers, *viewerID)
		following = &f
	}
	return AuthorView{
		Username:  author.Username,
		Bio:       author.Bio,
		Image:     author.Image,
		Following: following,
	}
}

// ProjectProfile maps a user into the profile shape. The caller supplies
// the resolved following flag (nil for anonymous or self).
func ProjectProfile(user *model.User, following *bool) ProfileView {
	return ProfileView{
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}

func containsUser(users []model.User, id uint64) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
