package feed

import (
	"github.com/samber/lo"
)

// Filterer selects the items carrying a target category label. Matching is
// exact string equality, case-sensitive. An item with no categories never
// matches.
type Filterer struct {
	category string
}

func NewFilterer(category string) *Filterer {
	return &Filterer{category: category}
}

// Run returns the matching subset of items in their original relative order.
// Items are passed through untouched.
func (f *Filterer) Run(items []Item) []Item {
	return lo.Filter(items, func(item Item, _ int) bool {
		return f.matches(item)
	})
}

func (f *Filterer) matches(item Item) bool {
	return lo.Contains(item.Categories, f.category)
}
