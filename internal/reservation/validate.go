package reservation

import (
	"regexp"
	"strings"
	"time"

	"github.com/umajibakery/reservations/internal/cart"
	"github.com/umajibakery/reservations/internal/catalog"
)

// FieldErrors accumulates per-field validation messages. A draft is
// submittable only while the map is empty; there is no partial
// submission.
type FieldErrors map[string]string

var (
	phonePattern = regexp.MustCompile(`^[0-9-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Draft is the in-progress reservation: the cart contents plus the
// pickup and contact fields the form collects.
type Draft struct {
	Channel  catalog.Channel
	Date     string
	Time     string
	Customer Customer
	Lines    []cart.Line
}

// Validate checks every form rule and reports all failures at once.
// now anchors the pickup-date window.
func (d Draft) Validate(now time.Time) FieldErrors {
	errs := FieldErrors{}

	if !catalog.ValidReservationChannel(d.Channel) {
		errs["type"] = "select a reservation type"
	}
	if len(d.Lines) == 0 {
		errs["cart"] = "select at least one item"
	}
	switch {
	case d.Date == "":
		errs["date"] = "select a pickup date"
	case !d.validDate(now):
		errs["date"] = "pickup date is out of range"
	}
	switch {
	case d.Time == "":
		errs["time"] = "select a pickup time"
	case !ValidSlot(d.Time):
		errs["time"] = "pickup time is not an offered slot"
	}
	if strings.TrimSpace(d.Customer.Name) == "" {
		errs["name"] = "name is required"
	}
	switch {
	case strings.TrimSpace(d.Customer.Phone) == "":
		errs["phone"] = "phone number is required"
	case !phonePattern.MatchString(d.Customer.Phone):
		errs["phone"] = "phone number may contain only digits and hyphens"
	}
	switch {
	case strings.TrimSpace(d.Customer.Email) == "":
		errs["email"] = "email address is required"
	case !emailPattern.MatchString(d.Customer.Email):
		errs["email"] = "email address is not valid"
	}
	return errs
}

func (d Draft) validDate(now time.Time) bool {
	picked, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return false
	}
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	if d.Channel == catalog.ChannelToday {
		return picked.Equal(today)
	}
	return picked.After(today) && !picked.After(today.AddDate(0, 0, advanceWindowDays))
}

// Finalize packages a validated draft into the immutable reservation.
func (d Draft) Finalize() Reservation {
	items := make([]Item, 0, len(d.Lines))
	total := 0
	for _, l := range d.Lines {
		items = append(items, Item{Name: l.Name, Quantity: l.Quantity, Price: l.Price})
		total += l.Price * l.Quantity
	}
	return Reservation{
		Channel:    d.Channel,
		Date:       d.Date,
		Time:       d.Time,
		Items:      items,
		TotalPrice: total,
		Customer:   d.Customer,
	}
}
