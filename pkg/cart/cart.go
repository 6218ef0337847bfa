// Package cart holds the in-progress, unpurchased selection for one browser
// context. Mutations are in-memory; callers persist through Store after every
// mutation so a reload never loses the cart.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mealbasket/gateway/pkg/models"
)

type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	VendorRef string          `json:"vendor_ref,omitempty"`
}

// Cart maps productID to its single line item. Quantity is always >= 1;
// removing a product drops the key entirely.
type Cart struct {
	Items map[string]*Item `json:"items"`
}

func New() *Cart {
	return &Cart{Items: make(map[string]*Item)}
}

// Add inserts the product with quantity 1, or increments the quantity when
// the product is already in the cart. Never duplicates an entry.
func (c *Cart) Add(p models.Product) *Item {
	if item, ok := c.Items[p.ID]; ok {
		item.Quantity++
		return item
	}
	item := &Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: decimal.NewFromFloat(p.Price),
		Quantity:  1,
		VendorRef: p.Vendor,
	}
	c.Items[p.ID] = item
	return item
}

// SetQuantity applies a signed delta to an item's quantity, clamping the
// result to a minimum of 1. Decrementing never removes the item; that is
// Remove's job.
func (c *Cart) SetQuantity(productID string, delta int) (*Item, error) {
	item, ok := c.Items[productID]
	if !ok {
		return nil, fmt.Errorf("product %s is not in the cart", productID)
	}
	item.Quantity += delta
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return item, nil
}

func (c *Cart) Remove(productID string) {
	delete(c.Items, productID)
}

func (c *Cart) Clear() {
	c.Items = make(map[string]*Item)
}

// Total is recomputed from the line items on every call. There is no cached
// running total to drift out of sync.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
