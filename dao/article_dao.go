package dao

import (
	"errors"
	"time"

	"inkwell/model"

	"gorm.io/gorm"
)

// ArticleDAO 文章数据访问层
type ArticleDAO struct {
	db *gorm.DB
}

func NewArticleDAO(db *gorm.DB) *ArticleDAO {
	return &ArticleDAO{db: db}
}

// Transaction runs fn against a transactional copy of the DAO.
func (dao *ArticleDAO) Transaction(fn func(tx *ArticleDAO) error) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ArticleDAO{db: tx})
	})
}

// VisibleTo restricts a query to articles the viewer may read:
// published ones, plus the viewer's own drafts when a viewer is present.
// Anonymous viewers never get the author OR-clause.
func VisibleTo(viewerID *uint64) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if viewerID == nil {
			return tx.Where("articles.is_draft = ?", false)
		}
		return tx.Where("articles.is_draft = ? OR articles.author_id = ?", false, *viewerID)
	}
}

// withRelations preloads everything the response projection needs, so one
// fetch yields snapshot-consistent counts and flags.
func (dao *ArticleDAO) withRelations() *gorm.DB {
	return dao.db.
		Preload("Author.Followers").
		Preload("Tags").
		Preload("FavoritedBy").
		Preload("Comments")
}

// GetVisibleBySlug fetches a fully loaded article under the visibility rule.
// An invisible draft is indistinguishable from an absent row.
func (dao *ArticleDAO) GetVisibleBySlug(slug string, viewerID *uint64) (*model.Article, error) {
	var article model.Article
	err := dao.withRelations().
		Scopes(VisibleTo(viewerID)).
		Where("articles.slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug fetches by raw slug with no visibility filter and no preloads.
// Used for ownership checks, where the author must always find their own row.
func (dao *ArticleDAO) GetBySlug(slug string) (*model.Article, error) {
	var article model.Article
	err := dao.db.Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetByID fetches a fully loaded article by primary key.
func (dao *ArticleDAO) GetByID(id uint64) (*model.Article, error) {
	var article model.Article
	err := dao.withRelations().First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// SlugExists reports whether any article already owns the slug.
func (dao *ArticleDAO) SlugExists(slug string) (bool, error) {
	var count int64
	err := dao.db.Model(&model.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CreateWithTags inserts the article together with its tag set. Tags are
// connect-or-create by name: insert, and on a racing duplicate re-read the
// winner's row.
func (dao *ArticleDAO) CreateWithTags(article *model.Article, tagNames []string) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}
		article.Tags = tags
		return tx.Create(article).Error
	})
}

func upsertTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name}
			err = tx.Create(&tag).Error
			if IsDuplicateKey(err) {
				// Lost the race, the tag exists now.
				err = tx.Where("name = ?", name).First(&tag).Error
			}
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Save persists the article's scalar columns.
func (dao *ArticleDAO) Save(article *model.Article) error {
	return dao.db.Model(article).Updates(map[string]interface{}{
		"slug":        article.Slug,
		"title":       article.Title,
		"description": article.Description,
		"body":        article.Body,
		"is_draft":    article.IsDraft,
	}).Error
}

// DeleteCascade removes the article together with its owned comments,
// favorite edges and tag links in one transaction.
func (dao *ArticleDAO) DeleteCascade(id uint64) error {
	return dao.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Article{}, id).Error
	})
}

// ListFilter 列表查询条件，条件之间为 AND 关系
type ListFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

// List returns fully loaded articles matching the filter, newest first.
// The visibility rule is always applied on top of the filters.
func (dao *ArticleDAO) List(viewerID *uint64, f ListFilter) ([]model.Article, error) {
	q := dao.withRelations().Scopes(VisibleTo(viewerID))

	if f.Tag != "" {
		q = q.Where("articles.id IN (?)", dao.db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", f.Tag))
	}
	if f.Author != "" {
		q = q.Where("articles.author_id IN (?)", dao.db.Table("users").
			Select("users.id").
			Where("users.username = ?", f.Author))
	}
	if f.FavoritedBy != "" {
		q = q.Where("articles.id IN (?)", dao.db.Table("favorites").
			Select("favorites.article_id").
			Joins("JOIN users ON users.id = favorites.user_id").
			Where("users.username = ?", f.FavoritedBy))
	}

	var articles []model.Article
	err := q.Order("articles.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&articles).Error
	return articles, err
}

// FeedByAuthors returns published articles by the given authors, newest
// first. Drafts never appear in a feed, not even the viewer's own.
func (dao *ArticleDAO) FeedByAuthors(authorIDs []uint64, limit, offset int) ([]model.Article, error) {
	var articles []model.Article
	err := dao.withRelations().
		Where("articles.author_id IN ?", authorIDs).
		Where("articles.is_draft = ?", false).
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, err
}

// DraftsBySlugs returns the author's drafts among the requested slugs,
// fully loaded for the post-publish response.
func (dao *ArticleDAO) DraftsBySlugs(authorID uint64, slugs []string) ([]model.Article, error) {
	var articles []model.Article
	err := dao.withRelations().
		Where("articles.slug IN ?", slugs).
		Where("articles.author_id = ?", authorID).
		Where("articles.is_draft = ?", true).
		Find(&articles).Error
	return articles, err
}

// MarkPublished flips a single draft to published.
func (dao *ArticleDAO) MarkPublished(id uint64) error {
	return dao.db.Model(&model.Article{}).
		Where("id = ?", id).
		Update("is_draft", false).Error
}

// InteractionRow 单篇文章的互动计数
type InteractionRow struct {
	ArticleID uint64
	CreatedAt time.Time
	Comments  int
	Likes     int
}

// InteractionRows returns per-article comment/favorite counts for one
// author in a single query. Correlated subqueries keep it portable across
// the production and test drivers.
func (dao *ArticleDAO) InteractionRows(authorID uint64) ([]InteractionRow, error) {
	var rows []InteractionRow
	err := dao.db.Model(&model.Article{}).
		Select(`articles.id AS article_id,
			articles.created_at,
			(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id) AS comments,
			(SELECT COUNT(*) FROM favorites WHERE favorites.article_id = articles.id) AS likes`).
		Where("articles.author_id = ?", authorID).
		Scan(&rows).Error
	return rows, err
}
