package catalog

const lowStockThreshold = 3

// SoldOutToday lists products whose same-day pool is empty; the
// storefront shows these as sold out for today.
func SoldOutToday(products []Product) []Product {
	var out []Product
	for _, p := range products {
		if p.TodayStock == 0 {
			out = append(out, p)
		}
	}
	return out
}

// LowStock lists products running low (1..3 left) in either pool.
func LowStock(products []Product) []Product {
	var out []Product
	for _, p := range products {
		todayLow := p.TodayStock > 0 && p.TodayStock <= lowStockThreshold
		advanceLow := p.AdvanceStock > 0 && p.AdvanceStock <= lowStockThreshold
		if todayLow || advanceLow {
			out = append(out, p)
		}
	}
	return out
}
