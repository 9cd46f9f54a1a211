package inventory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajibakery/reservations/internal/catalog"
)

func product(id int, name string, cat catalog.Category, ch catalog.Channel, today, advance int) catalog.Product {
	return catalog.Product{
		ID: id, Name: name, Price: 100, Image: "img",
		Category: cat, Channel: ch,
		TodayStock: today, AdvanceStock: advance,
		TotalStock: today + advance, IsAvailable: today+advance > 0,
	}
}

func TestAvailableSubtractsCart(t *testing.T) {
	p := product(1, "a", catalog.CategorySoft, catalog.ChannelBoth, 3, 5)
	assert.Equal(t, 3, Available(p, catalog.ChannelToday, 0))
	assert.Equal(t, 1, Available(p, catalog.ChannelToday, 2))
	assert.Equal(t, 0, Available(p, catalog.ChannelToday, 3))
	assert.Equal(t, 0, Available(p, catalog.ChannelToday, 10))
	assert.Equal(t, 5, Available(p, catalog.ChannelAdvance, 0))
}

func TestDeriveFiltersChannel(t *testing.T) {
	products := []catalog.Product{
		product(1, "today only", catalog.CategorySoft, catalog.ChannelToday, 2, 0),
		product(2, "advance only", catalog.CategorySoft, catalog.ChannelAdvance, 0, 2),
		product(3, "both", catalog.CategoryHard, catalog.ChannelBoth, 2, 2),
	}

	v := Derive(products, catalog.ChannelToday, nil, "")
	require.Len(t, v.Products, 2)
	assert.Equal(t, 1, v.Products[0].ID)
	assert.Equal(t, 3, v.Products[1].ID)

	v = Derive(products, catalog.ChannelAdvance, nil, "")
	require.Len(t, v.Products, 2)
	assert.Equal(t, 2, v.Products[0].ID)
	assert.Equal(t, 3, v.Products[1].ID)
}

func TestDeriveCartFullDrainMovesToSoldOut(t *testing.T) {
	products := []catalog.Product{
		product(1, "くるみぱん", catalog.CategorySoft, catalog.ChannelToday, 3, 0),
	}
	cart := map[int]int{1: 3}

	v := Derive(products, catalog.ChannelToday, cart, "")
	assert.Empty(t, v.Products)
	assert.Equal(t, []string{"くるみぱん"}, v.SoldOut)
	assert.Zero(t, v.SoldOutOverflow)
}

func TestDeriveSoldOutCapAndOverflow(t *testing.T) {
	var products []catalog.Product
	for i := 1; i <= 11; i++ {
		products = append(products, product(i, fmt.Sprintf("p%d", i), catalog.CategorySoft, catalog.ChannelToday, 0, 0))
	}

	v := Derive(products, catalog.ChannelToday, nil, "")
	assert.Len(t, v.SoldOut, 8)
	assert.Equal(t, 3, v.SoldOutOverflow)
	assert.Empty(t, v.Categories)
}

func TestDeriveCategoryOptionsShrinkWithStock(t *testing.T) {
	products := []catalog.Product{
		product(1, "soft", catalog.CategorySoft, catalog.ChannelToday, 2, 0),
		product(2, "hard", catalog.CategoryHard, catalog.ChannelToday, 0, 0),
	}

	v := Derive(products, catalog.ChannelToday, nil, "")
	assert.Equal(t, []catalog.Category{catalog.CategorySoft}, v.Categories)
}

func TestDeriveCategoryFilterAfterOptionCollection(t *testing.T) {
	products := []catalog.Product{
		product(1, "soft", catalog.CategorySoft, catalog.ChannelToday, 2, 0),
		product(2, "hard", catalog.CategoryHard, catalog.ChannelToday, 2, 0),
	}

	v := Derive(products, catalog.ChannelToday, nil, "hard")
	require.Len(t, v.Products, 1)
	assert.Equal(t, 2, v.Products[0].ID)
	// both categories still offered as filter options
	assert.Len(t, v.Categories, 2)

	v = Derive(products, catalog.ChannelToday, nil, CategoryAll)
	assert.Len(t, v.Products, 2)
}

// Conservation: every eligible product lands in exactly one bucket.
func TestDeriveConservation(t *testing.T) {
	products := []catalog.Product{
		product(1, "a", catalog.CategorySoft, catalog.ChannelToday, 2, 0),
		product(2, "b", catalog.CategorySoft, catalog.ChannelToday, 0, 0),
		product(3, "c", catalog.CategoryHard, catalog.ChannelBoth, 1, 1),
		product(4, "d", catalog.CategoryHard, catalog.ChannelAdvance, 0, 9),
	}

	v := Derive(products, catalog.ChannelToday, nil, "")
	eligible := 0
	for _, p := range products {
		if p.SellsOn(catalog.ChannelToday) {
			eligible++
		}
	}
	assert.Equal(t, eligible, len(v.Products)+len(v.SoldOut)+v.SoldOutOverflow)
}
