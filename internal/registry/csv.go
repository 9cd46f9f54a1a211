package registry

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/reservation"
)

// csvHeader is the fixed 15-column layout the bakery's spreadsheet
// workflow expects: one row per line item, reservation-level fields on
// the first item row only, a blank row between reservations.
var csvHeader = []string{
	"reservation id",
	"type",
	"received at",
	"pickup date",
	"pickup time",
	"customer name",
	"phone",
	"email",
	"item",
	"quantity",
	"unit price",
	"subtotal",
	"total",
	"status",
	"note",
}

// ExportAdvanceCSV renders the advance reservations only; callers
// filter before handing records in.
func ExportAdvanceCSV(records []reservation.Record) []byte {
	return export(records, func(reservation.Record) string { return "bulk order" })
}

// ExportAllCSV renders every reservation with a per-channel note.
func ExportAllCSV(records []reservation.Record) []byte {
	return export(records, func(r reservation.Record) string {
		if r.Channel == catalog.ChannelAdvance {
			return "advance order"
		}
		return "same-day hold"
	})
}

func export(records []reservation.Record, note func(reservation.Record) string) []byte {
	var buf bytes.Buffer
	// UTF-8 BOM so Excel detects the encoding.
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	_ = w.Write(csvHeader)
	blank := make([]string, len(csvHeader))
	for _, rec := range records {
		for i, it := range rec.Items {
			row := []string{
				strconv.Itoa(rec.ID),
				string(rec.Channel),
				rec.CreatedAt.Format("2006-01-02 15:04"),
				rec.Date,
				rec.Time,
				rec.Customer.Name,
				rec.Customer.Phone,
				rec.Customer.Email,
				it.Name,
				strconv.Itoa(it.Quantity),
				strconv.Itoa(it.Price),
				strconv.Itoa(it.Price * it.Quantity),
				"", "", "",
			}
			if i == 0 {
				row[12] = strconv.Itoa(rec.TotalPrice)
				row[13] = string(rec.Status)
				row[14] = note(rec)
			}
			_ = w.Write(row)
		}
		_ = w.Write(blank)
	}
	w.Flush()
	return buf.Bytes()
}

// ExportFilename stamps the download name with the current date, e.g.
// advance-reservations_20240119.csv.
func ExportFilename(prefix string, now time.Time) string {
	return prefix + "_" + now.Format("20060102") + ".csv"
}
