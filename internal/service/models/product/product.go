package product

import "time"

// Product is the inventory view of a product. Stock is only mutated through
// the repository's conditional reserve/release, never by saving this struct.
type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Stock      int       `json:"stock"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
