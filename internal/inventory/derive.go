package inventory

import "github.com/umajibakery/reservations/internal/catalog"

// CategoryAll passes every category through the filter.
const CategoryAll = "all"

// soldOutDisplayCap limits how many sold-out names the storefront
// shows; the rest collapse into an overflow count.
const soldOutDisplayCap = 8

// Available is the stock a customer can still add: the channel's raw
// pool minus what their cart already holds, floored at zero.
func Available(p catalog.Product, c catalog.Channel, cartQty int) int {
	n := p.RawStock(c) - cartQty
	if n < 0 {
		return 0
	}
	return n
}

// ProductView is a catalog product annotated with the stock remaining
// for the viewer's channel and cart.
type ProductView struct {
	catalog.Product
	Available int `json:"available"`
}

// View is the customer-facing projection of the catalog for one
// channel: eligible products (category-filtered), the sold-out notice
// list, and the category options still worth offering.
type View struct {
	Products        []ProductView      `json:"products"`
	SoldOut         []string           `json:"sold_out"`
	SoldOutOverflow int                `json:"sold_out_overflow"`
	Categories      []catalog.Category `json:"categories"`
}

// Derive recomputes the view from scratch. It runs on every cart
// mutation and every catalog refresh; keeping it a pure function of its
// inputs is what makes the double-trigger refresh scheme safe.
func Derive(products []catalog.Product, c catalog.Channel, cartQty map[int]int, category string) View {
	var v View
	seen := map[catalog.Category]bool{}
	for _, p := range products {
		if !p.SellsOn(c) {
			continue
		}
		avail := Available(p, c, cartQty[p.ID])
		if avail == 0 {
			if len(v.SoldOut) < soldOutDisplayCap {
				v.SoldOut = append(v.SoldOut, p.Name)
			} else {
				v.SoldOutOverflow++
			}
			continue
		}
		// Category options come from every eligible product, so the
		// filter choices shrink as stock depletes.
		if !seen[p.Category] {
			seen[p.Category] = true
			v.Categories = append(v.Categories, p.Category)
		}
		if category != "" && category != CategoryAll && string(p.Category) != category {
			continue
		}
		v.Products = append(v.Products, ProductView{Product: p, Available: avail})
	}
	return v
}
