package request

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=500"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,min=1,max=50"`
	// IsDraft defaults to true when omitted; articles start as drafts.
	IsDraft *bool `json:"isDraft"`
}

type UpdateArticleRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Body        *string `json:"body"`
}

type ListArticlesQuery struct {
	Tag       string `form:"tag"`
	Author    string `form:"author"`
	Favorited string `form:"favorited"`
	Limit     int    `form:"limit" binding:"omitempty,min=0"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

type FeedQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type PublishRequest struct {
	Slugs []string `json:"slugs" binding:"required,min=1,dive,slug"`
}

type StatsQuery struct {
	Min int `form:"min" binding:"omitempty,min=0"`
}
