package game

import "trivia-game-service/internal/domain"

// FilterPool keeps the questions tagged with at least one of the selected
// categories, preserving load order. An empty result is ErrEmptyPool.
func FilterPool(all []domain.Question, categories []string) ([]domain.Question, error) {
	selected := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		selected[c] = struct{}{}
	}

	pool := make([]domain.Question, 0, len(all))
	for _, q := range all {
		for _, c := range q.Categories {
			if _, ok := selected[c]; ok {
				pool = append(pool, q)
				break
			}
		}
	}
	if len(pool) == 0 {
		return nil, domain.ErrEmptyPool
	}
	return pool, nil
}

// Categories lists the distinct category names in the order they first appear.
func Categories(all []domain.Question) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, q := range all {
		for _, c := range q.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			names = append(names, c)
		}
	}
	return names
}
