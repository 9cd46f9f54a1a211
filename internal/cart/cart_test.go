package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajibakery/reservations/internal/catalog"
)

func product(id int, name string, price int) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: price, Image: "img"}
}

func TestAddAccumulatesQuantity(t *testing.T) {
	c := New()
	p := product(1, "くるみぱん", 173)
	c.Add(p)
	c.Add(p)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 346, c.TotalPrice())
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product(3, "third", 100))
	c.Add(product(1, "first", 100))
	c.Add(product(2, "second", 100))
	c.Add(product(1, "first", 100))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(product(1, "a", 100))
	c.Add(product(2, "b", 200))

	c.SetQuantity(1, 0)
	assert.Equal(t, 0, c.Quantity(1))
	require.Len(t, c.Lines(), 1)

	c.SetQuantity(2, -5)
	assert.True(t, c.Empty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	c.Add(product(1, "a", 100))
	c.Remove(1)
	c.Remove(1)
	assert.True(t, c.Empty())
}

func TestTotalPriceSumsLines(t *testing.T) {
	c := New()
	c.Add(product(1, "a", 173))
	c.Add(product(1, "a", 173))
	c.Add(product(2, "b", 313))
	c.SetQuantity(2, 3)

	assert.Equal(t, 173*2+313*3, c.TotalPrice())
	assert.Equal(t, map[int]int{1: 2, 2: 3}, c.Quantities())
}

func TestLinesSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Add(product(1, "a", 100))
	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Quantity(1))
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(product(1, "a", 100))
	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalPrice())
}

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.Create()
	require.NotEmpty(t, id)

	c, ok := s.Get(id)
	require.True(t, ok)
	assert.True(t, c.Empty())

	_, ok = s.Get("no-such-cart")
	assert.False(t, ok)
}

func TestStorePruneDropsIdleCarts(t *testing.T) {
	s := NewStore(time.Minute)
	id := s.Create()

	assert.Equal(t, 0, s.Prune(time.Now()))
	assert.Equal(t, 1, s.Prune(time.Now().Add(2*time.Minute)))

	_, ok := s.Get(id)
	assert.False(t, ok)
}
