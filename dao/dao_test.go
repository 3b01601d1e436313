package dao

import (
	"testing"

	"inkwell/internal/testutil"
	"inkwell/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The composite primary keys on the edge tables are the backstop for
// concurrent writers racing past the advisory exists-check. These tests
// pin the error classification that the service layer relies on.

func TestFavoriteCreate_DuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	favorites := NewFavoriteDAO(db)
	user := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, user.ID)

	require.NoError(t, favorites.Create(user.ID, article.ID))

	err := favorites.Create(user.ID, article.ID)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestFollowCreate_DuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	follows := NewFollowDAO(db)
	a := testutil.CreateUser(t, db)
	b := testutil.CreateUser(t, db)

	require.NoError(t, follows.Create(a.ID, b.ID))

	err := follows.Create(a.ID, b.ID)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestArticleSlugUnique_DuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	articles := NewArticleDAO(db)
	user := testutil.CreateUser(t, db)
	existing := testutil.CreateArticle(t, db, user.ID, testutil.WithTitle("Taken"))

	err := articles.CreateWithTags(&model.Article{
		Slug:     existing.Slug,
		Title:    existing.Title,
		Body:     "another body",
		AuthorID: user.ID,
	}, nil)
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestVisibleBySlug_Scope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	articles := NewArticleDAO(db)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	_, err := articles.GetVisibleBySlug(draft.Slug, nil)
	assert.True(t, IsNotFound(err))

	otherID := other.ID
	_, err = articles.GetVisibleBySlug(draft.Slug, &otherID)
	assert.True(t, IsNotFound(err))

	authorID := author.ID
	got, err := articles.GetVisibleBySlug(draft.Slug, &authorID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestGetVisibleBySlug_PreloadsRelations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	articles := NewArticleDAO(db)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID, testutil.WithTags("go", "testing"))
	testutil.Favorite(t, db, reader.ID, article.ID)
	testutil.CreateComment(t, db, reader.ID, article.ID, "hi")
	testutil.Follow(t, db, reader.ID, author.ID)

	got, err := articles.GetVisibleBySlug(article.Slug, nil)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 2)
	assert.Len(t, got.FavoritedBy, 1)
	assert.Len(t, got.Comments, 1)
	assert.Equal(t, author.Username, got.Author.Username)
	assert.Len(t, got.Author.Followers, 1)
}
