package explorer

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trovecli/trove/internal/catalog"
)

// SortField selects the attribute items are ordered by.
type SortField string

// SortOrder selects the direction.
type SortOrder string

const (
	SortByID   SortField = "id"
	SortByName SortField = "name"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort pairs a field with a direction.
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort orders by identifier ascending.
func DefaultSort() Sort {
	return Sort{Field: SortByID, Order: Ascending}
}

// CategoryAll disables the category constraint.
const CategoryAll = "all"

// Filters is the client-side filter settings applied to a fetched page.
type Filters struct {
	Query         string
	Category      string
	FavoritesOnly bool
}

// DefaultFilters matches everything.
func DefaultFilters() Filters {
	return Filters{Category: CategoryAll}
}

// applyFilters returns the items passing every active filter. The three
// predicates are independent, so composition order does not matter.
func applyFilters(items []catalog.Item, f Filters, favs map[int]struct{}) []catalog.Item {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.TrimSpace(f.Category)
	constrainCategory := category != "" && !strings.EqualFold(category, CategoryAll)

	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		if constrainCategory && !item.HasTag(category) {
			continue
		}
		if f.FavoritesOnly {
			if _, ok := favs[item.ID]; !ok {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// sortItems orders items in place. Identifier sort is numeric; name sort is
// locale-aware. Identifiers and names are unique within a page, so ties do
// not arise.
func sortItems(items []catalog.Item, s Sort) {
	desc := s.Order == Descending
	switch s.Field {
	case SortByName:
		coll := collate.New(language.Und)
		sort.SliceStable(items, func(i, j int) bool {
			cmp := coll.CompareString(items[i].Name, items[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			if desc {
				return items[i].ID > items[j].ID
			}
			return items[i].ID < items[j].ID
		})
	}
}
