package story

import "github.com/zhubert/snooze/internal/news"

// Index is the set of story ids the current user has favorited.
// The zero value is empty and reports false for every id.
type Index struct {
	ids map[string]struct{}
}

// BuildIndex builds an Index from u's favorites. A nil user yields an empty index.
func BuildIndex(u *news.User) Index {
	if u == nil {
		return Index{}
	}
	ids := make(map[string]struct{}, len(u.Favorites))
	for _, s := range u.Favorites {
		ids[s.ID] = struct{}{}
	}
	return Index{ids: ids}
}

// IsFavorite reports whether id is in the index
func (i Index) IsFavorite(id string) bool {
	_, ok := i.ids[id]
	return ok
}

// Len returns the number of favorites
func (i Index) Len() int {
	return len(i.ids)
}
