package registry

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umajibakery/reservations/internal/catalog"
	"github.com/umajibakery/reservations/internal/reservation"
)

func exportFixture() []reservation.Record {
	return []reservation.Record{
		{
			ID: 1, Channel: catalog.ChannelAdvance,
			Date: "2024-01-20", Time: "11:00",
			Customer: reservation.Customer{Name: "田中 太郎", Phone: "090-1234-5678", Email: "tanaka@example.com"},
			Items: []reservation.Item{
				{Name: "クロワッサン", Quantity: 3, Price: 180},
				{Name: "メロンパン", Quantity: 2, Price: 150},
			},
			TotalPrice: 840, Status: reservation.StatusPending,
			CreatedAt: time.Date(2024, 1, 19, 14, 30, 0, 0, time.UTC),
		},
		{
			ID: 2, Channel: catalog.ChannelToday,
			Date: "2024-01-19", Time: "14:30",
			Customer: reservation.Customer{Name: "佐藤 花子", Phone: "080-9876-5432", Email: "sato@example.com"},
			Items: []reservation.Item{
				{Name: "あんぱん", Quantity: 4, Price: 120},
			},
			TotalPrice: 480, Status: reservation.StatusCompleted,
			CreatedAt: time.Date(2024, 1, 19, 9, 15, 0, 0, time.UTC),
		},
	}
}

func parseExport(t *testing.T, b []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(b, []byte("\uFEFF")), "missing BOM")
	rows, err := csv.NewReader(bytes.NewReader(b[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportAllCSVLayout(t *testing.T) {
	rows := parseExport(t, ExportAllCSV(exportFixture()))

	// header + (2 items + blank) + (1 item + blank)
	require.Len(t, rows, 6)
	require.Len(t, rows[0], 15)
	assert.Equal(t, "reservation id", rows[0][0])
	assert.Equal(t, "note", rows[0][14])

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "advance", first[1])
	assert.Equal(t, "2024-01-19 14:30", first[2])
	assert.Equal(t, "クロワッサン", first[8])
	assert.Equal(t, "3", first[9])
	assert.Equal(t, "180", first[10])
	assert.Equal(t, "540", first[11])
	assert.Equal(t, "840", first[12])
	assert.Equal(t, "pending", first[13])
	assert.Equal(t, "advance order", first[14])

	// second item row repeats reservation fields but not total/status/note
	second := rows[2]
	assert.Equal(t, "1", second[0])
	assert.Equal(t, "メロンパン", second[8])
	assert.Empty(t, second[12])
	assert.Empty(t, second[13])
	assert.Empty(t, second[14])

	// blank separator after each reservation
	for _, cell := range rows[3] {
		assert.Empty(t, cell)
	}

	assert.Equal(t, "same-day hold", rows[4][14])
}

func TestExportAdvanceCSVNote(t *testing.T) {
	rows := parseExport(t, ExportAdvanceCSV(exportFixture()[:1]))
	require.Len(t, rows, 4)
	assert.Equal(t, "bulk order", rows[1][14])
}

func TestExportEmpty(t *testing.T) {
	rows := parseExport(t, ExportAllCSV(nil))
	require.Len(t, rows, 1)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 1, 19, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "advance-reservations_20240119.csv", ExportFilename("advance-reservations", now))
}
