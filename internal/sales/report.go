package sales

import (
	"sort"
	"strings"

	"github.com/umajibakery/reservations/internal/reservation"
)

// DayPoint is one bar of the daily sales chart.
type DayPoint struct {
	Date   string `json:"date"`
	Sales  int    `json:"sales"`
	Orders int    `json:"orders"`
}

// ProductSales aggregates one product across every counted reservation.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Sales    int     `json:"sales"`
	Share    float64 `json:"share"`
}

// Summary is the back-office sales dashboard payload. Cancelled
// reservations are excluded from every figure.
type Summary struct {
	TotalSales   int            `json:"total_sales"`
	TotalOrders  int            `json:"total_orders"`
	AverageOrder int            `json:"average_order"`
	Days         []DayPoint     `json:"days"`
	Products     []ProductSales `json:"products"`
}

// Report folds the registry records into the dashboard summary. Days
// are keyed by pickup date and sorted ascending; products are sorted
// by sales descending.
func Report(records []reservation.Record) Summary {
	var s Summary
	byDay := map[string]*DayPoint{}
	byProduct := map[string]*ProductSales{}

	for _, rec := range records {
		if rec.Status == reservation.StatusCancelled {
			continue
		}
		s.TotalSales += rec.TotalPrice
		s.TotalOrders++

		d, ok := byDay[rec.Date]
		if !ok {
			d = &DayPoint{Date: rec.Date}
			byDay[rec.Date] = d
		}
		d.Sales += rec.TotalPrice
		d.Orders++

		for _, it := range rec.Items {
			p, ok := byProduct[it.Name]
			if !ok {
				p = &ProductSales{Name: it.Name}
				byProduct[it.Name] = p
			}
			p.Quantity += it.Quantity
			p.Sales += it.Price * it.Quantity
		}
	}

	if s.TotalOrders > 0 {
		s.AverageOrder = s.TotalSales / s.TotalOrders
	}
	for _, d := range byDay {
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Date < s.Days[j].Date })
	for _, p := range byProduct {
		if s.TotalSales > 0 {
			p.Share = float64(p.Sales) / float64(s.TotalSales)
		}
		s.Products = append(s.Products, *p)
	}
	sort.Slice(s.Products, func(i, j int) bool {
		if s.Products[i].Sales != s.Products[j].Sales {
			return s.Products[i].Sales > s.Products[j].Sales
		}
		return s.Products[i].Name < s.Products[j].Name
	})
	return s
}

// Customer tiers by lifetime spend.
const (
	TierGold   = "gold"   // 10000 and up
	TierSilver = "silver" // 5000 and up
	TierBronze = "bronze"
)

const favoritesMax = 3

// CustomerSummary is one row of the back-office customer list,
// aggregated by phone number.
type CustomerSummary struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	OrderCount    int      `json:"order_count"`
	TotalSpent    int      `json:"total_spent"`
	Tier          string   `json:"tier"`
	Favorites     []string `json:"favorites"`
	LastOrderDate string   `json:"last_order_date"`
}

// Customers aggregates the registry into per-customer summaries,
// highest spender first. Cancelled reservations do not count.
func Customers(records []reservation.Record) []CustomerSummary {
	type acc struct {
		CustomerSummary
		itemQty map[string]int
	}
	byPhone := map[string]*acc{}

	for _, rec := range records {
		if rec.Status == reservation.StatusCancelled {
			continue
		}
		a, ok := byPhone[rec.Customer.Phone]
		if !ok {
			a = &acc{
				CustomerSummary: CustomerSummary{
					Name:  rec.Customer.Name,
					Phone: rec.Customer.Phone,
					Email: rec.Customer.Email,
				},
				itemQty: map[string]int{},
			}
			byPhone[rec.Customer.Phone] = a
		}
		a.OrderCount++
		a.TotalSpent += rec.TotalPrice
		if rec.Date > a.LastOrderDate {
			a.LastOrderDate = rec.Date
		}
		for _, it := range rec.Items {
			a.itemQty[it.Name] += it.Quantity
		}
	}

	out := make([]CustomerSummary, 0, len(byPhone))
	for _, a := range byPhone {
		a.Tier = tier(a.TotalSpent)
		a.Favorites = topItems(a.itemQty, favoritesMax)
		out = append(out, a.CustomerSummary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Phone < out[j].Phone
	})
	return out
}

// Search filters customer summaries by a case-insensitive substring
// match on name or phone.
func Search(customers []CustomerSummary, query string) []CustomerSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return customers
	}
	var out []CustomerSummary
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out
}

func tier(spent int) string {
	switch {
	case spent >= 10000:
		return TierGold
	case spent >= 5000:
		return TierSilver
	default:
		return TierBronze
	}
}

func topItems(qty map[string]int, n int) []string {
	type kv struct {
		name string
		qty  int
	}
	items := make([]kv, 0, len(qty))
	for name, q := range qty {
		items = append(items, kv{name, q})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].qty != items[j].qty {
			return items[i].qty > items[j].qty
		}
		return items[i].name < items[j].name
	})
	if len(items) > n {
		items = items[:n]
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.name
	}
	return names
}
