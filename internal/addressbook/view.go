package addressbook

import (
	"sort"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View filters contacts by query and orders them by sortBy.
// The input slice is never modified.
func View(contacts []Contact, query, sortBy string) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if Matches(c, query) {
			out = append(out, c)
		}
	}

	// Collators are not safe for concurrent use; one per call.
	col := collate.New(language.English, collate.IgnoreCase)
	byName := func(a, b Contact) int {
		return col.CompareString(sortName(a), sortName(b))
	}

	switch sortBy {
	case config.SortByEmail:
		sort.SliceStable(out, func(i, j int) bool {
			if c := col.CompareString(out[i].Email, out[j].Email); c != 0 {
				return c < 0
			}
			return byName(out[i], out[j]) < 0
		})
	case config.SortByFavorite:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Favorite != out[j].Favorite {
				return out[i].Favorite
			}
			return byName(out[i], out[j]) < 0
		})
	case config.SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return byName(out[i], out[j]) < 0
		})
	}
	return out
}

// Matches reports whether the contact satisfies a search query.
// Names and email compare case-insensitively; phone is a raw substring test.
func Matches(c Contact, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(c.FirstName, query) ||
		containsFold(c.LastName, query) ||
		containsFold(c.Email, query) ||
		strings.Contains(c.Phone, query)
}

// sortName orders by last name, then first name.
func sortName(c Contact) string {
	return c.LastName + c.FirstName
}
