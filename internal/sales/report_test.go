package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajibakery/reservations/internal/reservation"
)

func reportFixture() []reservation.Record {
	return []reservation.Record{
		{
			ID: 1, Date: "2024-01-19", Status: reservation.StatusCompleted,
			Customer:   reservation.Customer{Name: "田中 太郎", Phone: "090-1111-1111", Email: "tanaka@example.com"},
			Items:      []reservation.Item{{Name: "クロワッサン", Quantity: 3, Price: 180}},
			TotalPrice: 540,
		},
		{
			ID: 2, Date: "2024-01-19", Status: reservation.StatusConfirmed,
			Customer:   reservation.Customer{Name: "佐藤 花子", Phone: "080-2222-2222", Email: "sato@example.com"},
			Items:      []reservation.Item{{Name: "あんぱん", Quantity: 4, Price: 120}},
			TotalPrice: 480,
		},
		{
			ID: 3, Date: "2024-01-20", Status: reservation.StatusPending,
			Customer: reservation.Customer{Name: "田中 太郎", Phone: "090-1111-1111", Email: "tanaka@example.com"},
			Items: []reservation.Item{
				{Name: "クロワッサン", Quantity: 1, Price: 180},
				{Name: "バゲット", Quantity: 2, Price: 200},
			},
			TotalPrice: 580,
		},
		{
			ID: 4, Date: "2024-01-20", Status: reservation.StatusCancelled,
			Customer:   reservation.Customer{Name: "鈴木 一郎", Phone: "070-3333-3333", Email: "suzuki@example.com"},
			Items:      []reservation.Item{{Name: "バゲット", Quantity: 9, Price: 200}},
			TotalPrice: 1800,
		},
	}
}

func TestReportExcludesCancelled(t *testing.T) {
	s := Report(reportFixture())
	assert.Equal(t, 1600, s.TotalSales)
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 533, s.AverageOrder)
}

func TestReportDays(t *testing.T) {
	s := Report(reportFixture())
	require.Len(t, s.Days, 2)
	assert.Equal(t, DayPoint{Date: "2024-01-19", Sales: 1020, Orders: 2}, s.Days[0])
	assert.Equal(t, DayPoint{Date: "2024-01-20", Sales: 580, Orders: 1}, s.Days[1])
}

func TestReportProducts(t *testing.T) {
	s := Report(reportFixture())
	require.Len(t, s.Products, 3)

	// sorted by sales descending
	assert.Equal(t, "クロワッサン", s.Products[0].Name)
	assert.Equal(t, 4, s.Products[0].Quantity)
	assert.Equal(t, 720, s.Products[0].Sales)
	assert.InDelta(t, 720.0/1600.0, s.Products[0].Share, 1e-9)

	assert.Equal(t, "あんぱん", s.Products[1].Name)
	assert.Equal(t, "バゲット", s.Products[2].Name)
	assert.Equal(t, 400, s.Products[2].Sales)
}

func TestReportEmpty(t *testing.T) {
	s := Report(nil)
	assert.Zero(t, s.TotalSales)
	assert.Zero(t, s.AverageOrder)
	assert.Empty(t, s.Days)
	assert.Empty(t, s.Products)
}

func TestCustomersAggregatesByPhone(t *testing.T) {
	customers := Customers(reportFixture())
	require.Len(t, customers, 2) // cancelled-only customer excluded

	tanaka := customers[0]
	assert.Equal(t, "田中 太郎", tanaka.Name)
	assert.Equal(t, 2, tanaka.OrderCount)
	assert.Equal(t, 1120, tanaka.TotalSpent)
	assert.Equal(t, "2024-01-20", tanaka.LastOrderDate)
	assert.Equal(t, TierBronze, tanaka.Tier)
	assert.Equal(t, []string{"クロワッサン", "バゲット"}, tanaka.Favorites)
}

func TestCustomerTiers(t *testing.T) {
	assert.Equal(t, TierGold, tier(10000))
	assert.Equal(t, TierSilver, tier(5000))
	assert.Equal(t, TierSilver, tier(9999))
	assert.Equal(t, TierBronze, tier(4999))
}

func TestSearch(t *testing.T) {
	customers := Customers(reportFixture())

	assert.Len(t, Search(customers, "田中"), 1)
	assert.Len(t, Search(customers, "090-1111"), 1)
	assert.Len(t, Search(customers, ""), 2)
	assert.Empty(t, Search(customers, "nobody"))
}
