package service

import (
	"testing"

	"inkwell/dao"
	"inkwell/internal/testutil"

	"gorm.io/gorm"
)

func setupArticleService(t *testing.T) (*gorm.DB, *ArticleService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewArticleService(dao.NewArticleDAO(db), dao.NewFavoriteDAO(db), dao.NewFollowDAO(db))
	return db, svc
}

func setupProfileService(t *testing.T) (*gorm.DB, *ProfileService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewProfileService(dao.NewUserDAO(db), dao.NewFollowDAO(db))
	return db, svc
}

func setupCommentService(t *testing.T) (*gorm.DB, *CommentService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewCommentService(dao.NewCommentDAO(db), dao.NewArticleDAO(db), dao.NewFollowDAO(db))
	return db, svc
}

func ptr(id uint64) *uint64 {
	return &id
}
