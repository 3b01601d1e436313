package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"inkwell/model"
	"inkwell/utils"

	"gorm.io/gorm"
)

var seq uint64

func nextSeq() uint64 {
	return atomic.AddUint64(&seq, 1)
}

// CreateUser creates a test user with unique username/email.
func CreateUser(t *testing.T, db *gorm.DB, opts ...UserOption) *model.User {
	t.Helper()

	n := nextSeq()
	user := &model.User{
		Email:        fmt.Sprintf("user_%d@example.com", n),
		Username:     fmt.Sprintf("user_%d", n),
		PasswordHash: "not-a-real-hash",
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// UserOption configures a test user.
type UserOption func(*model.User)

func WithUsername(username string) UserOption {
	return func(u *model.User) {
		u.Username = username
		u.Email = username + "@example.com"
	}
}

func WithBio(bio string) UserOption {
	return func(u *model.User) { u.Bio = bio }
}

// CreateArticle creates a test article. Published by default; tags are
// connected-or-created by name.
func CreateArticle(t *testing.T, db *gorm.DB, authorID uint64, opts ...ArticleOption) *model.Article {
	t.Helper()

	title := fmt.Sprintf("Test Article %d", nextSeq())
	article := &model.Article{
		Title:       title,
		Description: "A test article",
		Body:        "Body of the test article",
		IsDraft:     false,
		AuthorID:    authorID,
	}
	var tagNames []string
	for _, opt := range opts {
		opt(article, &tagNames)
	}
	article.Slug = utils.Slugify(article.Title)

	for _, name := range tagNames {
		var tag model.Tag
		if err := db.Where(model.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			t.Fatalf("Failed to create test tag %q: %v", name, err)
		}
		article.Tags = append(article.Tags, tag)
	}

	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}
	return article
}

// ArticleOption configures a test article.
type ArticleOption func(*model.Article, *[]string)

func WithTitle(title string) ArticleOption {
	return func(a *model.Article, _ *[]string) { a.Title = title }
}

func AsDraft() ArticleOption {
	return func(a *model.Article, _ *[]string) { a.IsDraft = true }
}

func WithCreatedAt(ts time.Time) ArticleOption {
	return func(a *model.Article, _ *[]string) { a.CreatedAt = ts }
}

func WithTags(names ...string) ArticleOption {
	return func(_ *model.Article, tags *[]string) { *tags = append(*tags, names...) }
}

// CreateComment attaches a comment to an article.
func CreateComment(t *testing.T, db *gorm.DB, authorID, articleID uint64, body string) *model.Comment {
	t.Helper()

	comment := &model.Comment{Body: body, AuthorID: authorID, ArticleID: articleID}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}
	return comment
}

// Follow inserts a follow edge directly.
func Follow(t *testing.T, db *gorm.DB, followerID, followingID uint64) {
	t.Helper()

	if err := db.Create(&model.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
		t.Fatalf("Failed to create follow edge: %v", err)
	}
}

// Favorite inserts a favorite edge directly.
func Favorite(t *testing.T, db *gorm.DB, userID, articleID uint64) {
	t.Helper()

	if err := db.Create(&model.Favorite{UserID: userID, ArticleID: articleID}).Error; err != nil {
		t.Fatalf("Failed to create favorite edge: %v", err)
	}
}
