package service

import (
	"testing"
	"time"

	"inkwell/internal/testutil"
	"inkwell/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBySlug_DraftVisibility(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	tests := []struct {
		name    string
		viewer  *uint64
		wantErr error
	}{
		{"anonymous viewer gets not found", nil, ErrArticleNotFound},
		{"other user gets not found", ptr(other.ID), ErrArticleNotFound},
		{"author sees own draft", ptr(author.ID), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.GetBySlug(draft.Slug, tt.viewer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, draft.Slug, view.Slug)
			assert.True(t, view.IsDraft)
		})
	}
}

func TestGetBySlug_PublishedVisibleToAll(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)

	view, err := svc.GetBySlug(article.Slug, nil)
	require.NoError(t, err)
	assert.Equal(t, article.Slug, view.Slug)
	// Anonymous viewers get no per-viewer flags.
	assert.Nil(t, view.Favorited)
	assert.Nil(t, view.Author.Following)
}

func TestCreate_SlugDerivedFromTitle(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)

	view, err := svc.Create(author.ID, CreateArticleInput{
		Title:   "How To Train Your Dragon",
		Body:    "It takes a Jacobian",
		TagList: []string{"dragons", "training"},
		IsDraft: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "how-to-train-your-dragon", view.Slug)
	assert.ElementsMatch(t, []string{"dragons", "training"}, view.TagList)
	assert.Equal(t, author.Username, view.Author.Username)
}

func TestCreate_SlugConflict(t *testing.T) {
	db, svc := setupArticleService(t)
	a := testutil.CreateUser(t, db)
	b := testutil.CreateUser(t, db)

	_, err := svc.Create(a.ID, CreateArticleInput{Title: "How To Train Your Dragon", Body: "x"})
	require.NoError(t, err)

	// Slugs are globally unique regardless of author.
	_, err = svc.Create(b.ID, CreateArticleInput{Title: "how to train your DRAGON!", Body: "y"})
	assert.ErrorIs(t, err, ErrArticleConflict)
}

func TestCreate_TagsConnectOrCreate(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)

	_, err := svc.Create(author.ID, CreateArticleInput{Title: "First", Body: "x", TagList: []string{"health"}})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, CreateArticleInput{Title: "Second", Body: "y", TagList: []string{"health", "fitness"}})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "health").Count(&count).Error)
	assert.Equal(t, int64(1), count, "tag should be reused, not duplicated")
}

func TestUpdate_OwnershipAndReslug(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID, testutil.WithTitle("Original Title"))

	_, err := svc.Update(other.ID, article.Slug, UpdateArticleInput{Body: strPtr("hijack")})
	assert.ErrorIs(t, err, ErrForbidden)

	newTitle := "A Brand New Title"
	view, err := svc.Update(author.ID, article.Slug, UpdateArticleInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "a-brand-new-title", view.Slug)
	assert.Equal(t, newTitle, view.Title)
}

func TestUpdate_ReslugConflict(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	testutil.CreateArticle(t, db, author.ID, testutil.WithTitle("Taken Title"))
	article := testutil.CreateArticle(t, db, author.ID, testutil.WithTitle("My Title"))

	conflicting := "Taken Title"
	_, err := svc.Update(author.ID, article.Slug, UpdateArticleInput{Title: &conflicting})
	assert.ErrorIs(t, err, ErrArticleConflict)
}

func TestUpdate_AuthorReachesOwnDraft(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	view, err := svc.Update(author.ID, draft.Slug, UpdateArticleInput{Body: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", view.Body)
	assert.True(t, view.IsDraft)
}

func TestDelete_CascadesCommentsAndFavorites(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)
	testutil.CreateComment(t, db, reader.ID, article.ID, "nice")
	testutil.Favorite(t, db, reader.ID, article.ID)

	require.NoError(t, svc.Delete(author.ID, article.Slug))

	var comments, favorites int64
	db.Model(&model.Comment{}).Where("article_id = ?", article.ID).Count(&comments)
	db.Model(&model.Favorite{}).Where("article_id = ?", article.ID).Count(&favorites)
	assert.Zero(t, comments)
	assert.Zero(t, favorites)

	_, err := svc.GetBySlug(article.Slug, ptr(author.ID))
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestDelete_NonAuthorForbidden(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)

	assert.ErrorIs(t, svc.Delete(other.ID, article.Slug), ErrForbidden)
}

func TestFavorite_Lifecycle(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)

	view, err := svc.Favorite(reader.ID, article.Slug)
	require.NoError(t, err)
	require.NotNil(t, view.Favorited)
	assert.True(t, *view.Favorited)
	assert.Equal(t, 1, view.FavoritesCount)

	_, err = svc.Favorite(reader.ID, article.Slug)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	view, err = svc.Unfavorite(reader.ID, article.Slug)
	require.NoError(t, err)
	require.NotNil(t, view.Favorited)
	assert.False(t, *view.Favorited)
	assert.Equal(t, 0, view.FavoritesCount)

	_, err = svc.Unfavorite(reader.ID, article.Slug)
	assert.ErrorIs(t, err, ErrNotFavorited)
}

func TestFavorite_ForeignDraftBehavesAsMissing(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	_, err := svc.Favorite(reader.ID, draft.Slug)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestList_TagFilterWithVisibility(t *testing.T) {
	db, svc := setupArticleService(t)
	a := testutil.CreateUser(t, db)
	b := testutil.CreateUser(t, db)

	published := testutil.CreateArticle(t, db, a.ID, testutil.WithTags("health"))
	testutil.CreateArticle(t, db, a.ID, testutil.WithTags("sports"))
	hiddenDraft := testutil.CreateArticle(t, db, b.ID, testutil.AsDraft(), testutil.WithTags("health"))
	ownDraft := testutil.CreateArticle(t, db, a.ID, testutil.AsDraft(), testutil.WithTags("health"))

	views, err := svc.List(ptr(a.ID), ListFilter{Tag: "health"})
	require.NoError(t, err)

	slugs := make([]string, 0, len(views))
	for _, v := range views {
		slugs = append(slugs, v.Slug)
	}
	assert.ElementsMatch(t, []string{published.Slug, ownDraft.Slug}, slugs)
	assert.NotContains(t, slugs, hiddenDraft.Slug)
}

func TestList_AnonymousSeesPublishedOnly(t *testing.T) {
	db, svc := setupArticleService(t)
	a := testutil.CreateUser(t, db)
	published := testutil.CreateArticle(t, db, a.ID)
	testutil.CreateArticle(t, db, a.ID, testutil.AsDraft())

	views, err := svc.List(nil, ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, published.Slug, views[0].Slug)
}

func TestList_AuthorAndFavoritedFilters(t *testing.T) {
	db, svc := setupArticleService(t)
	a := testutil.CreateUser(t, db)
	b := testutil.CreateUser(t, db)
	art1 := testutil.CreateArticle(t, db, a.ID)
	art2 := testutil.CreateArticle(t, db, b.ID)
	testutil.Favorite(t, db, a.ID, art2.ID)

	views, err := svc.List(nil, ListFilter{Author: a.Username})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, art1.Slug, views[0].Slug)

	views, err = svc.List(nil, ListFilter{FavoritedBy: a.Username})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, art2.Slug, views[0].Slug)

	// Conjunctive filters: author a never favorited their own article.
	views, err = svc.List(nil, ListFilter{Author: a.Username, FavoritedBy: a.Username})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestList_OrderAndPagination(t *testing.T) {
	db, svc := setupArticleService(t)
	a := testutil.CreateUser(t, db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	oldest := testutil.CreateArticle(t, db, a.ID, testutil.WithCreatedAt(base))
	middle := testutil.CreateArticle(t, db, a.ID, testutil.WithCreatedAt(base.Add(time.Hour)))
	newest := testutil.CreateArticle(t, db, a.ID, testutil.WithCreatedAt(base.Add(2*time.Hour)))

	views, err := svc.List(nil, ListFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, newest.Slug, views[0].Slug)
	assert.Equal(t, middle.Slug, views[1].Slug)
	assert.Equal(t, oldest.Slug, views[2].Slug)

	views, err = svc.List(nil, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, middle.Slug, views[0].Slug)
}

func TestList_NegativePaginationRejected(t *testing.T) {
	_, svc := setupArticleService(t)

	_, err := svc.List(nil, ListFilter{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(nil, ListFilter{Offset: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func strPtr(s string) *string {
	return &s
}
