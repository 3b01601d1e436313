package service

import (
	"sort"

	"inkwell/dao"
)

// MonthlyStat 按月聚合的互动统计
type MonthlyStat struct {
	Year              int `json:"year"`
	Month             int `json:"month"`
	Comments          int `json:"comments"`
	Likes             int `json:"likes"`
	TotalInteractions int `json:"totalInteractions"`
}

// StatsService computes per-author engagement aggregates. Read-only; the
// author always sees their own numbers, drafts included.
type StatsService struct {
	articles *dao.ArticleDAO
}

func NewStatsService(articles *dao.ArticleDAO) *StatsService {
	return &StatsService{articles: articles}
}

// MonthlyHighInteraction groups the author's articles by creation month,
// sums comments + favorites per group, keeps groups reaching
// minInteractions and orders them year desc, month desc.
func (s *StatsService) MonthlyHighInteraction(authorID uint64, minInteractions int) ([]MonthlyStat, error) {
	rows, err := s.articles.InteractionRows(authorID)
	if err != nil {
		return nil, err
	}

	type monthKey struct{ year, month int }
	groups := make(map[monthKey]*MonthlyStat)
	for _, row := range rows {
		key := monthKey{row.CreatedAt.Year(), int(row.CreatedAt.Month())}
		stat, ok := groups[key]
		if !ok {
			stat = &MonthlyStat{Year: key.year, Month: key.month}
			groups[key] = stat
		}
		stat.Comments += row.Comments
		stat.Likes += row.Likes
		stat.TotalInteractions += row.Comments + row.Likes
	}

	stats := make([]MonthlyStat, 0, len(groups))
	for _, stat := range groups {
		if stat.TotalInteractions >= minInteractions {
			stats = append(stats, *stat)
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Year != stats[j].Year {
			return stats[i].Year > stats[j].Year
		}
		return stats[i].Month > stats[j].Month
	})
	return stats, nil
}
