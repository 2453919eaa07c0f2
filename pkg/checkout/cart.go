package checkout

import (
	"sync"

	"github.com/somaprep/materials-service/pkg/api"
)

// Cart collects materials ahead of checkout. A material appears at most
// once: study PDFs are entitlements, so quantities make no sense.
type Cart struct {
	mu    sync.Mutex
	items []api.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts the item in the cart and reports whether it was added. Adding a
// material that is already present is a no-op.
func (c *Cart) Add(item api.CartItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.items {
		if existing.MaterialID == item.MaterialID {
			return false
		}
	}
	c.items = append(c.items, item)
	return true
}

// Remove drops the material from the cart and reports whether it was there.
func (c *Cart) Remove(materialID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.MaterialID == materialID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Items() []api.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
