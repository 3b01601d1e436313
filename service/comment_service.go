package service

import (
	"inkwell/dao"
	"inkwell/model"
)

// CommentService manages comments on articles. All article resolution goes
// through the visibility rule, so comments on foreign drafts are as
// unreachable as the drafts themselves.
type CommentService struct {
	comments *dao.CommentDAO
	articles *dao.ArticleDAO
	follows  *dao.FollowDAO
}

func NewCommentService(comments *dao.CommentDAO, articles *dao.ArticleDAO, follows *dao.FollowDAO) *CommentService {
	return &CommentService{comments: comments, articles: articles, follows: follows}
}

// Create adds a comment to a visible article.
func (s *CommentService) Create(userID uint64, slug, body string) (CommentView, error) {
	article, err := s.articles.GetVisibleBySlug(slug, &userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return CommentView{}, ErrArticleNotFound
		}
		return CommentView{}, err
	}

	comment := &model.Comment{
		Body:      body,
		AuthorID:  userID,
		ArticleID: article.ID,
	}
	if err := s.comments.Create(comment); err != nil {
		return CommentView{}, err
	}
	return s.projectComment(comment, &userID)
}

// List returns a visible article's comments with the viewer-scoped
// following flag on each comment author.
func (s *CommentService) List(viewerID *uint64, slug string) ([]CommentView, error) {
	article, err := s.articles.GetVisibleBySlug(slug, viewerID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	comments, err := s.comments.ListByArticle(article.ID)
	if err != nil {
		return nil, err
	}

	// One following-set fetch covers every comment author.
	var followingSet map[uint64]bool
	if viewerID != nil {
		ids, err := s.follows.FollowingIDs(*viewerID)
		if err != nil {
			return nil, err
		}
		followingSet = make(map[uint64]bool, len(ids))
		for _, id := range ids {
			followingSet[id] = true
		}
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		var following *bool
		if viewerID != nil && *viewerID != c.AuthorID {
			f := followingSet[c.AuthorID]
			following = &f
		}
		views = append(views, CommentView{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			Body:      c.Body,
			Author: AuthorView{
				Username:  c.Author.Username,
				Bio:       c.Author.Bio,
				Image:     c.Author.Image,
				Following: following,
			},
		})
	}
	return views, nil
}

// Delete removes a comment; only its own author may do so.
func (s *CommentService) Delete(userID uint64, slug string, commentID uint64) error {
	article, err := s.articles.GetVisibleBySlug(slug, &userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrArticleNotFound
		}
		return err
	}

	comment, err := s.comments.GetByIDAndArticle(commentID, article.ID)
	if err != nil {
		if dao.IsNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}
	return s.comments.Delete(comment.ID)
}

func (s *CommentService) projectComment(c *model.Comment, viewerID *uint64) (CommentView, error) {
	var following *bool
	if viewerID != nil && *viewerID != c.AuthorID {
		f, err := s.follows.Exists(*viewerID, c.AuthorID)
		if err != nil {
			return CommentView{}, err
		}
		following = &f
	}
	return CommentView{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
		Author: AuthorView{
			Username:  c.Author.Username,
			Bio:       c.Author.Bio,
			Image:     c.Author.Image,
			Following: following,
		},
	}, nil
}
