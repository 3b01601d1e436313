package service

import "inkwell/dao"

// PublishDrafts transitions the author's drafts to published, all or
// nothing. Every requested slug must resolve to one of the author's drafts
// up front; any miss fails the whole batch and names the offending slugs.
// The updates run inside one transaction, so a failure mid-batch cannot
// leave a partial publish behind.
func (s *ArticleService) PublishDrafts(authorID uint64, slugs []string) ([]ArticleView, error) {
	if len(slugs) == 0 {
		return nil, ErrInvalidInput
	}

	var views []ArticleView
	err := s.articles.Transaction(func(tx *dao.ArticleDAO) error {
		drafts, err := tx.DraftsBySlugs(authorID, slugs)
		if err != nil {
			return err
		}

		found := make(map[string]bool, len(drafts))
		for _, d := range drafts {
			found[d.Slug] = true
		}
		var missing []string
		for _, slug := range slugs {
			if !found[slug] {
				missing = append(missing, slug)
			}
		}
		if len(missing) > 0 {
			return &PublishNotFoundError{Slugs: missing}
		}

		views = make([]ArticleView, 0, len(drafts))
		for i := range drafts {
			if err := tx.MarkPublished(drafts[i].ID); err != nil {
				return err
			}
			drafts[i].IsDraft = false
			views = append(views, ProjectArticle(&drafts[i], &authorID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
