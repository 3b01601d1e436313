package service

import (
	"testing"

	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate_OnVisibleArticle(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)

	view, err := svc.Create(reader.ID, article.Slug, "well said")
	require.NoError(t, err)
	assert.Equal(t, "well said", view.Body)
	assert.Equal(t, reader.Username, view.Author.Username)
	assert.NotZero(t, view.ID)
}

func TestCommentCreate_HiddenDraft(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	reader := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	_, err := svc.Create(reader.ID, draft.Slug, "sneaky")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCommentCreate_AuthorOnOwnDraft(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	view, err := svc.Create(author.ID, draft.Slug, "note to self")
	require.NoError(t, err)
	assert.Equal(t, "note to self", view.Body)
}

func TestCommentList_VisibilityAndFollowingFlags(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	commenter := testutil.CreateUser(t, db)
	viewer := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)
	testutil.CreateComment(t, db, commenter.ID, article.ID, "first")
	testutil.CreateComment(t, db, viewer.ID, article.ID, "second")
	testutil.Follow(t, db, viewer.ID, commenter.ID)

	views, err := svc.List(ptr(viewer.ID), article.Slug)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byBody := make(map[string]CommentView, len(views))
	for _, v := range views {
		byBody[v.Body] = v
	}

	first := byBody["first"]
	require.NotNil(t, first.Author.Following)
	assert.True(t, *first.Author.Following)

	// Own comment carries no following flag.
	second := byBody["second"]
	assert.Nil(t, second.Author.Following)
}

func TestCommentList_AnonymousViewer(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)
	testutil.CreateComment(t, db, author.ID, article.ID, "hello")

	views, err := svc.List(nil, article.Slug)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Author.Following)
}

func TestCommentList_DraftHiddenFromOthers(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	draft := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())
	testutil.CreateComment(t, db, author.ID, draft.ID, "private")

	_, err := svc.List(ptr(other.ID), draft.Slug)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	_, err = svc.List(nil, draft.Slug)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	views, err := svc.List(ptr(author.ID), draft.Slug)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestCommentDelete(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	commenter := testutil.CreateUser(t, db)
	article := testutil.CreateArticle(t, db, author.ID)
	comment := testutil.CreateComment(t, db, commenter.ID, article.ID, "delete me")

	t.Run("non-author forbidden", func(t *testing.T) {
		err := svc.Delete(author.ID, article.Slug, comment.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(commenter.ID, article.Slug, comment.ID))

		err := svc.Delete(commenter.ID, article.Slug, comment.ID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestCommentDelete_WrongArticle(t *testing.T) {
	db, svc := setupCommentService(t)
	author := testutil.CreateUser(t, db)
	a1 := testutil.CreateArticle(t, db, author.ID)
	a2 := testutil.CreateArticle(t, db, author.ID)
	comment := testutil.CreateComment(t, db, author.ID, a1.ID, "misplaced")

	err := svc.Delete(author.ID, a2.Slug, comment.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
