package orderitem

import "time"

// Extra is a paid add-on selected for a line item, snapshotted at order time.
type Extra struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// Sauce is a free add-on selected for a line item. Sauces never carry a price.
type Sauce struct {
	Name string `json:"name"`
}

// OrderItem represents a single line within an order. UnitPriceCents is the
// product price captured when the order was placed and is never re-read from
// the product afterward.
type OrderItem struct {
	ID                 int64     `json:"id"`
	OrderID            int64     `json:"orderId"`
	ProductID          int64     `json:"productId"`
	ProductName        string    `json:"productName"`
	Quantity           int       `json:"quantity"`
	UnitPriceCents     int64     `json:"unitPriceCents"`
	CustomizationNotes string    `json:"customizationNotes,omitempty"`
	SelectedExtras     []Extra   `json:"selectedExtras,omitempty"`
	SelectedSauces     []Sauce   `json:"selectedSauces,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ExtrasTotal sums the per-unit price of the selected extras.
func (oi *OrderItem) ExtrasTotal() int64 {
	var sum int64
	for _, e := range oi.SelectedExtras {
		sum += e.PriceCents
	}

	return sum
}

// LineTotal is (unit price + extras) * quantity.
func (oi *OrderItem) LineTotal() int64 {
	return (oi.UnitPriceCents + oi.ExtrasTotal()) * int64(oi.Quantity)
}
