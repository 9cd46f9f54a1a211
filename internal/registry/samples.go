package registry

import (
	"time"

	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/reservation"
)

// SampleRecords returns the fixed demo reservations the back office
// starts with.
func SampleRecords() []reservation.Record {
	return []reservation.Record{
		{
			Channel: catalog.ChannelAdvance,
			Date:    "2024-01-20",
			Time:    "11:00",
			Customer: reservation.Customer{
				Name: "田中 太郎", Phone: "090-1234-5678", Email: "tanaka@example.com",
			},
			Items: []reservation.Item{
				{Name: "クロワッサン", Quantity: 3, Price: 180},
				{Name: "メロンパン", Quantity: 2, Price: 150},
			},
			TotalPrice: 840,
			Status:     reservation.StatusPending,
			CreatedAt:  time.Date(2024, 1, 19, 14, 30, 0, 0, time.UTC),
		},
		{
			Channel: catalog.ChannelToday,
			Date:    "2024-01-19",
			Time:    "14:30",
			Customer: reservation.Customer{
				Name: "佐藤 花子", Phone: "080-9876-5432", Email: "sato@example.com",
			},
			Items: []reservation.Item{
				{Name: "食パン（1斤）", Quantity: 1, Price: 280},
				{Name: "あんぱん", Quantity: 4, Price: 120},
			},
			TotalPrice: 760,
			Status:     reservation.StatusCompleted,
			CreatedAt:  time.Date(2024, 1, 19, 9, 15, 0, 0, time.UTC),
		},
		{
			Channel: catalog.ChannelAdvance,
			Date:    "2024-01-21",
			Time:    "15:00",
			Customer: reservation.Customer{
				Name: "鈴木 一郎", Phone: "070-1111-2222", Email: "suzuki@example.com",
			},
			Items: []reservation.Item{
				{Name: "バゲット", Quantity: 2, Price: 200},
				{Name: "チョコパン", Quantity: 3, Price: 160},
			},
			TotalPrice: 880,
			Status:     reservation.StatusConfirmed,
			CreatedAt:  time.Date(2024, 1, 18, 16, 45, 0, 0, time.UTC),
		},
	}
}
