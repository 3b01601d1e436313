package service

import (
	"inkwell/config"
	"inkwell/dao"
	"inkwell/model"
	"inkwell/utils"
)

// ArticleService owns article CRUD, listing and the favorite relation.
// Every operation takes the viewer identity explicitly; there is no
// ambient request state.
type ArticleService struct {
	articles  *dao.ArticleDAO
	favorites *dao.FavoriteDAO
	follows   *dao.FollowDAO
}

func NewArticleService(articles *dao.ArticleDAO, favorites *dao.FavoriteDAO, follows *dao.FollowDAO) *ArticleService {
	return &ArticleService{articles: articles, favorites: favorites, follows: follows}
}

// GetBySlug resolves an article under the visibility rule. Drafts of other
// authors behave exactly like missing articles.
func (s *ArticleService) GetBySlug(slug string, viewerID *uint64) (ArticleView, error) {
	article, err := s.articles.GetVisibleBySlug(slug, viewerID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ArticleView{}, ErrArticleNotFound
		}
		return ArticleView{}, err
	}
	return ProjectArticle(article, viewerID), nil
}

// CreateArticleInput 创建文章入参
type CreateArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
	IsDraft     bool
}

// Create derives the slug from the title and inserts the article with its
// tag set. Slugs are globally unique regardless of author.
func (s *ArticleService) Create(authorID uint64, in CreateArticleInput) (ArticleView, error) {
	slug := utils.Slugify(in.Title)
	if slug == "" {
		return ArticleView{}, ErrInvalidInput
	}

	exists, err := s.articles.SlugExists(slug)
	if err != nil {
		return ArticleView{}, err
	}
	if exists {
		return ArticleView{}, ErrArticleConflict
	}

	article := &model.Article{
		Slug:        slug,
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		IsDraft:     in.IsDraft,
		AuthorID:    authorID,
	}
	if err := s.articles.CreateWithTags(article, in.TagList); err != nil {
		// The existence check above is only the fast path; the unique slug
		// index decides races.
		if dao.IsDuplicateKey(err) {
			return ArticleView{}, ErrArticleConflict
		}
		return ArticleView{}, err
	}

	created, err := s.articles.GetByID(article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	return ProjectArticle(created, &authorID), nil
}

// UpdateArticleInput 更新文章入参，nil 表示不修改
type UpdateArticleInput struct {
	Title       *string
	Description *string
	Body        *string
}

// Update mutates an article's scalar fields. Resolution goes by raw slug,
// independent of draft visibility: the author can always reach their own
// drafts, and non-authors get Forbidden. A title change recomputes the slug.
func (s *ArticleService) Update(userID uint64, slug string, in UpdateArticleInput) (ArticleView, error) {
	article, err := s.articles.GetBySlug(slug)
	if err != nil {
		if dao.IsNotFound(err) {
			return ArticleView{}, ErrArticleNotFound
		}
		return ArticleView{}, err
	}
	if article.AuthorID != userID {
		return ArticleView{}, ErrForbidden
	}

	if in.Title != nil && *in.Title != "" {
		newSlug := utils.Slugify(*in.Title)
		if newSlug == "" {
			return ArticleView{}, ErrInvalidInput
		}
		if newSlug != article.Slug {
			exists, err := s.articles.SlugExists(newSlug)
			if err != nil {
				return ArticleView{}, err
			}
			if exists {
				return ArticleView{}, ErrArticleConflict
			}
			article.Slug = newSlug
		}
		article.Title = *in.Title
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.Body != nil {
		article.Body = *in.Body
	}

	if err := s.articles.Save(article); err != nil {
		if dao.IsDuplicateKey(err) {
			return ArticleView{}, ErrArticleConflict
		}
		return ArticleView{}, err
	}

	updated, err := s.articles.GetByID(article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	return ProjectArticle(updated, &userID), nil
}

// Delete removes an author's article and cascades its comments and
// favorite edges.
func (s *ArticleService) Delete(userID uint64, slug string) error {
	article, err := s.articles.GetBySlug(slug)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrArticleNotFound
		}
		return err
	}
	if article.AuthorID != userID {
		return ErrForbidden
	}
	return s.articles.DeleteCascade(article.ID)
}

// ListFilter 对外的列表过滤条件
type ListFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

// List returns viewer-scoped article views, newest first. Filters are
// conjunctive; the visibility rule is always applied on top.
func (s *ArticleService) List(viewerID *uint64, f ListFilter) ([]ArticleView, error) {
	limit, offset, err := normalizePage(f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	articles, err := s.articles.List(viewerID, dao.ListFilter{
		Tag:         f.Tag,
		Author:      f.Author,
		FavoritedBy: f.FavoritedBy,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	return projectAll(articles, viewerID), nil
}

// Favorite records the user's favorite edge on a visible article and
// returns the re-projected article.
func (s *ArticleService) Favorite(userID uint64, slug string) (ArticleView, error) {
	article, err := s.articles.GetVisibleBySlug(slug, &userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ArticleView{}, ErrArticleNotFound
		}
		return ArticleView{}, err
	}

	exists, err := s.favorites.Exists(userID, article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	if exists {
		return ArticleView{}, ErrAlreadyFavorited
	}

	if err := s.favorites.Create(userID, article.ID); err != nil {
		// Racing duplicate inserts land on the composite primary key.
		if dao.IsDuplicateKey(err) {
			return ArticleView{}, ErrAlreadyFavorited
		}
		return ArticleView{}, err
	}

	updated, err := s.articles.GetByID(article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	return ProjectArticle(updated, &userID), nil
}

// Unfavorite removes the edge; absent edges are a conflict, not a no-op.
func (s *ArticleService) Unfavorite(userID uint64, slug string) (ArticleView, error) {
	article, err := s.articles.GetVisibleBySlug(slug, &userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ArticleView{}, ErrArticleNotFound
		}
		return ArticleView{}, err
	}

	exists, err := s.favorites.Exists(userID, article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	if !exists {
		return ArticleView{}, ErrNotFavorited
	}

	if err := s.favorites.Delete(userID, article.ID); err != nil {
		return ArticleView{}, err
	}

	updated, err := s.articles.GetByID(article.ID)
	if err != nil {
		return ArticleView{}, err
	}
	return ProjectArticle(updated, &userID), nil
}

func projectAll(articles []model.Article, viewerID *uint64) []ArticleView {
	views := make([]ArticleView, 0, len(articles))
	for i := range articles {
		views = append(views, ProjectArticle(&articles[i], viewerID))
	}
	return views
}

// normalizePage applies the system defaults and rejects negative values.
// A zero limit means "not supplied".
func normalizePage(limit, offset int) (int, int, error) {
	if limit < 0 || offset < 0 {
		return 0, 0, ErrInvalidInput
	}
	defLimit, defOffset := config.PaginationDefaults()
	if limit == 0 {
		limit = defLimit
	}
	if offset == 0 {
		offset = defOffset
	}
	return limit, offset, nil
}
