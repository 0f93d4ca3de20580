package repository

// Storage keys. The wishlist of each user lives under its own key so
// collections stay isolated; filter criteria and the custom category
// registry are stored once, shared across accounts on the same store.
const (
	keyUsers            = "users"
	keyLoggedInUser     = "loggedInUser"
	keySearch           = "wishlist-search"
	keyCategories       = "wishlist-categories"
	keyStatuses         = "wishlist-statuses"
	keyPriceRange       = "wishlist-price-range"
	keyPriorities       = "wishlist-priorities"
	keyCustomCategories = "wishlist-custom-categories"
)

func wishlistKey(username string) string {
	return "wishlist_" + username
}
