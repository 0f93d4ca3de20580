package domain

// Priority is the urgency level assigned to a wishlist item.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// WishlistItem represents a single desired item in a user's wishlist.
type WishlistItem struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Link        string   `json:"link" validate:"required,url"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsPurchased bool     `json:"isPurchased"`
	Category    string   `json:"category" validate:"required"`
	Priority    Priority `json:"priority" validate:"required,oneof=High Medium Low"`
}

// ItemDraft carries the user-supplied fields for a new wishlist item.
// The id and purchase status are assigned by the store on creation.
type ItemDraft struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Link        string   `json:"link" validate:"required,url"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Category    string   `json:"category" validate:"required"`
	Priority    Priority `json:"priority" validate:"required,oneof=High Medium Low"`
}
