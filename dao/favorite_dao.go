package dao

import (
	"inkwell/model"

	"gorm.io/gorm"
)

type FavoriteDAO struct {
	db *gorm.DB
}

func NewFavoriteDAO(db *gorm.DB) *FavoriteDAO {
	return &FavoriteDAO{db: db}
}

// Exists reports whether the user has favorited the article.
func (dao *FavoriteDAO) Exists(userID, articleID uint64) (bool, error) {
	var count int64
	err := dao.db.Model(&model.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the favorite edge. Concurrent duplicates hit the composite
// primary key and come back as duplicate-key errors.
func (dao *FavoriteDAO) Create(userID, articleID uint64) error {
	return dao.db.Create(&model.Favorite{UserID: userID, ArticleID: articleID}).Error
}

// Delete removes the favorite edge if present.
func (dao *FavoriteDAO) Delete(userID, articleID uint64) error {
	return dao.db.
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.Favorite{}).Error
}
