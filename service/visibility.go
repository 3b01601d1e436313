package service

import "inkwell/model"

// IsVisible reports whether the viewer may read the article: published,
// or the viewer is its author. Callers treat an invisible article exactly
// like a missing one, so drafts are unobservable to non-authors.
func IsVisible(article *model.Article, viewerID *uint64) bool {
	if !article.IsDraft {
		return true
	}
	return viewerID != nil && *viewerID == article.AuthorID
}
