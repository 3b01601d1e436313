package dao

import (
	"inkwell/model"

	"gorm.io/gorm"
)

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{db: db}
}

// Create inserts the comment and loads its author for the response.
func (dao *CommentDAO) Create(comment *model.Comment) error {
	if err := dao.db.Create(comment).Error; err != nil {
		return err
	}
	return dao.db.Preload("Author").First(comment, comment.ID).Error
}

// ListByArticle returns an article's comments with authors, oldest first.
func (dao *CommentDAO) ListByArticle(articleID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := dao.db.Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// GetByIDAndArticle fetches one comment scoped to its article.
func (dao *CommentDAO) GetByIDAndArticle(id, articleID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := dao.db.Where("id = ? AND article_id = ?", id, articleID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment by primary key.
func (dao *CommentDAO) Delete(id uint64) error {
	return dao.db.Delete(&model.Comment{}, id).Error
}
