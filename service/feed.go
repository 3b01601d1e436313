package service

// Feed assembles the viewer's personalized feed: published articles by
// authors the viewer follows, newest first. An empty following set yields
// an empty feed, never a fallback to the global listing.
func (s *ArticleService) Feed(viewerID uint64, limit, offset int) ([]ArticleView, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}

	followingIDs, err := s.follows.FollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return []ArticleView{}, nil
	}

	articles, err := s.articles.FeedByAuthors(followingIDs, limit, offset)
	if err != nil {
		return nil, err
	}
	return projectAll(articles, &viewerID), nil
}
