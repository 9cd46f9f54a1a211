package cart

import (
	"sync"

	"github.com/umajibakery/reservations/internal/catalog"
)

// Line is one product's accumulated quantity, with the product snapshot
// taken at add time. Later price edits do not reprice an open cart.
type Line struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"` // unit price, yen
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// Cart holds lines in insertion order. It is safe for concurrent use.
// The cart itself enforces no upper bound; callers cap additions at the
// available stock for the active channel.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart { return &Cart{} }

// Add increments the line for p, or appends a new line with quantity 1.
func (c *Cart) Add(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

// SetQuantity pins a line to n. Zero or negative removes the line.
func (c *Cart) SetQuantity(id, n int) {
	if n <= 0 {
		c.Remove(id)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == id {
			c.lines[i].Quantity = n
			return
		}
	}
}

// Remove deletes the line for id; removing twice is a no-op.
func (c *Cart) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ProductID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart; called once after a reservation is finalized.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantities maps product id to the quantity held in the cart.
func (c *Cart) Quantities() map[int]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]int, len(c.lines))
	for _, l := range c.lines {
		out[l.ProductID] = l.Quantity
	}
	return out
}

func (c *Cart) Quantity(id int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.ProductID == id {
			return l.Quantity
		}
	}
	return 0
}

func (c *Cart) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Price * l.Quantity
	}
	return total
}

func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
