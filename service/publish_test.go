package service

import (
	"errors"
	"testing"

	"inkwell/internal/testutil"
	"inkwell/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDrafts_Success(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	d1 := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())
	d2 := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	views, err := svc.PublishDrafts(author.ID, []string{d1.Slug, d2.Slug})
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.False(t, v.IsDraft)
	}

	// Published articles become visible to everyone.
	view, err := svc.GetBySlug(d1.Slug, nil)
	require.NoError(t, err)
	assert.False(t, view.IsDraft)
}

func TestPublishDrafts_UnknownSlugAbortsBatch(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	d1 := testutil.CreateArticle(t, db, author.ID, testutil.AsDraft())

	_, err := svc.PublishDrafts(author.ID, []string{d1.Slug, "no-such-article"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	var pnf *PublishNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{"no-such-article"}, pnf.Slugs)

	// The known draft must stay untouched.
	var refreshed model.Article
	require.NoError(t, db.First(&refreshed, d1.ID).Error)
	assert.True(t, refreshed.IsDraft)
}

func TestPublishDrafts_ForeignDraftCountsAsMissing(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)
	foreign := testutil.CreateArticle(t, db, other.ID, testutil.AsDraft())

	_, err := svc.PublishDrafts(author.ID, []string{foreign.Slug})
	assert.ErrorIs(t, err, ErrArticleNotFound)

	var refreshed model.Article
	require.NoError(t, db.First(&refreshed, foreign.ID).Error)
	assert.True(t, refreshed.IsDraft)
}

func TestPublishDrafts_AlreadyPublishedCountsAsMissing(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)
	published := testutil.CreateArticle(t, db, author.ID)

	_, err := svc.PublishDrafts(author.ID, []string{published.Slug})

	var pnf *PublishNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{published.Slug}, pnf.Slugs)
}

func TestPublishDrafts_EmptyListRejected(t *testing.T) {
	db, svc := setupArticleService(t)
	author := testutil.CreateUser(t, db)

	_, err := svc.PublishDrafts(author.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
