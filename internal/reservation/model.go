package reservation

import (
	"fmt"
	"time"

	"github.com/umajibakery/reservations/internal/catalog"
)

// Item is one reserved product line, frozen at submission time.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"` // unit price, yen
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Reservation is the immutable result of a successful submission. The
// confirmation view renders it; nothing mutates it afterwards.
type Reservation struct {
	Channel    catalog.Channel `json:"type"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Time       string          `json:"time"` // HH:MM
	Items      []Item          `json:"items"`
	TotalPrice int             `json:"total_price"`
	Customer   Customer        `json:"customer"`
}

// Record is an admin-side registry row. The registry is seeded
// independently of the public submission path; the two stores are
// deliberately not wired together.
type Record struct {
	ID         int             `json:"id"`
	Channel    catalog.Channel `json:"type"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Customer   Customer        `json:"customer"`
	Items      []Item          `json:"items"`
	TotalPrice int             `json:"total_price"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// advanceWindowDays bounds how far ahead an advance pickup may be booked.
const advanceWindowDays = 14

const dateLayout = "2006-01-02"

// TimeSlots returns the fixed pickup slots: 30-minute steps from 10:00
// through 16:00, nothing past 16:00. Thirteen slots total.
func TimeSlots() []string {
	slots := make([]string, 0, 13)
	for h := 10; h <= 16; h++ {
		for m := 0; m < 60; m += 30 {
			if h == 16 && m > 0 {
				break
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}

// ValidSlot reports whether t is one of the fixed pickup slots.
func ValidSlot(t string) bool {
	for _, s := range TimeSlots() {
		if s == t {
			return true
		}
	}
	return false
}

// AvailableDates lists the pickup dates a customer may choose: only
// today for the same-day channel, tomorrow through two weeks out for
// advance orders.
func AvailableDates(c catalog.Channel, now time.Time) []string {
	today := now.Format(dateLayout)
	if c == catalog.ChannelToday {
		return []string{today}
	}
	dates := make([]string, 0, advanceWindowDays)
	for i := 1; i <= advanceWindowDays; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}
