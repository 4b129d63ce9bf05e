package cart

import (
	"encoding/json"
	"math"
)

// DefaultImage is shown for products that have no images of their own
const DefaultImage = "https://images.unsplash.com/photo-1611652022419-a9419f74343a?w=800"

// LineItem is a product snapshot plus quantity. Price and image are copied at
// add time and are not kept in sync with the catalog.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered list of line items keyed by product id. The zero value
// is an empty cart. A Cart is not safe for concurrent use; see Store.
type Cart struct {
	items []LineItem
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// AddItem appends item, or adds its quantity to the existing entry with the
// same id. A non-positive quantity counts as one.
func (c *Cart) AddItem(item LineItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity += item.Quantity
		return
	}
	c.items = append(c.items, item)
}

// RemoveItem deletes the entry for id; it is a no-op when absent
func (c *Cart) RemoveItem(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// UpdateQuantity sets the quantity for id. A quantity of zero or less
// removes the entry.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.items[i].Quantity = quantity
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// ItemCount is the sum of all quantities
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity, rounded to cents
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len is the number of distinct line items
func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

type cartJSON struct {
	Items []LineItem `json:"items"`
}

// MarshalJSON stores only the line items; derived values are recomputed on load
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartJSON{Items: c.Items()})
}

// UnmarshalJSON restores a cart, dropping entries with a non-positive quantity
// and merging duplicate ids
func (c *Cart) UnmarshalJSON(data []byte) error {
	var raw cartJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.items = nil
	for _, item := range raw.Items {
		if item.Quantity <= 0 {
			continue
		}
		c.AddItem(item)
	}
	return nil
}
