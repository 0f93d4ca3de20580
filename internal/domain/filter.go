package domain

import (
	"math"
	"strings"
)

// Status is a purchase-status facet value.
type Status string

const (
	StatusPurchased    Status = "purchased"
	StatusNotPurchased Status = "not-purchased"
)

// Criteria is a snapshot of the filter facets applied to a wishlist. An empty
// set for any facet means no filter on that facet.
type Criteria struct {
	SearchText string     `json:"searchText"`
	Categories []string   `json:"categories"`
	Statuses   []Status   `json:"statuses"`
	PriceMin   *float64   `json:"priceMin"`
	PriceMax   *float64   `json:"priceMax"`
	Priorities []Priority `json:"priorities"`
}

// IsEmpty reports whether no facet is set.
func (c Criteria) IsEmpty() bool {
	return c.SearchText == "" &&
		len(c.Categories) == 0 &&
		len(c.Statuses) == 0 &&
		c.PriceMin == nil &&
		c.PriceMax == nil &&
		len(c.Priorities) == 0
}

// FilterItems returns the items matching every criteria facet. Facets combine
// with AND; values within a facet combine with OR. The relative order of items
// is preserved, and neither items nor criteria are mutated.
func FilterItems(items []WishlistItem, c Criteria) []WishlistItem {
	visible := make([]WishlistItem, 0, len(items))
	search := strings.ToLower(c.SearchText)

	for _, item := range items {
		if !matchesSearch(item, search) {
			continue
		}
		if !matchesCategory(item, c.Categories) {
			continue
		}
		if !matchesStatus(item, c.Statuses) {
			continue
		}
		if !matchesPrice(item, c.PriceMin, c.PriceMax) {
			continue
		}
		if !matchesPriority(item, c.Priorities) {
			continue
		}
		visible = append(visible, item)
	}

	return visible
}

func matchesSearch(item WishlistItem, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(item.Name), search)
}

func matchesCategory(item WishlistItem, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if item.Category == c {
			return true
		}
	}
	return false
}

func matchesStatus(item WishlistItem, statuses []Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if (s == StatusPurchased && item.IsPurchased) || (s == StatusNotPurchased && !item.IsPurchased) {
			return true
		}
	}
	return false
}

func matchesPrice(item WishlistItem, min, max *float64) bool {
	lo := 0.0
	if min != nil {
		lo = *min
	}
	hi := math.Inf(1)
	if max != nil {
		hi = *max
	}
	return item.Price >= lo && item.Price <= hi
}

func matchesPriority(item WishlistItem, priorities []Priority) bool {
	if len(priorities) == 0 {
		return true
	}
	for _, p := range priorities {
		if item.Priority == p {
			return true
		}
	}
	return false
}
