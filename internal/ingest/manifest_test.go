package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sobordos/internal/domain"
)

func TestParseManifest_SummaryAndPassengers(t *testing.T) {
	rows := [][]domain.Cell{
		{"RESOURCE", "DATE"},
		{"A", "2024-01-01"},
		{"SURNAME", "FIRST NAME"},
		{"Smith", "John"},
	}

	data := ParseManifest(rows)

	require.Len(t, data.Summary, 1)
	assert.Equal(t, "A", data.Summary[0]["RESOURCE"])
	assert.Equal(t, "2024-01-01", data.Summary[0]["DATE"])

	require.Len(t, data.Passengers, 1)
	assert.Equal(t, "Smith", data.Passengers[0]["SURNAME"])
	assert.Equal(t, "John", data.Passengers[0]["FIRST NAME"])
	assert.Equal(t, string(domain.StatusBoarded), data.Passengers[0]["STATUS"])

	assert.Equal(t, 4, data.Metadata.TotalRows)
}

func TestParseManifest_VehiclesAndBoardingCards(t *testing.T) {
	rows := [][]domain.Cell{
		{"MAKE", "MODEL", "LICENSE PLATE", "TICKET NUMBER"},
		{"Seat", "Ibiza", "1234-ABC", "777"},
		{"TYPE", "COUNT"},
		{"adult", 3.0},
	}

	data := ParseManifest(rows)

	require.Len(t, data.Vehicles, 1)
	assert.Equal(t, "Seat", data.Vehicles[0]["MAKE"])
	assert.Equal(t, "777", data.Vehicles[0]["TICKET NUMBER"])
	assert.Equal(t, string(domain.StatusBoarded), data.Vehicles[0]["STATUS"])

	require.Len(t, data.BoardingCards, 1)
	assert.Equal(t, "adult", data.BoardingCards[0]["TYPE"])
	// Boarding cards carry no synthetic status.
	assert.Nil(t, data.BoardingCards[0]["STATUS"])
}

func TestParseManifest_RowsBeforeFirstSentinelSkipped(t *testing.T) {
	rows := [][]domain.Cell{
		{"Sailing 14:30", ""},
		{"stray", "data"},
		{"SURNAME", "FIRST NAME"},
		{"Lopez", "Ana"},
	}

	data := ParseManifest(rows)

	assert.Empty(t, data.Summary)
	require.Len(t, data.Passengers, 1)
	assert.Equal(t, "Lopez", data.Passengers[0]["SURNAME"])
}

func TestParseManifest_BlankishRowsSkipped(t *testing.T) {
	rows := [][]domain.Cell{
		{"SURNAME", "FIRST NAME"},
		{},
		{nil, nil},
		{"", "orphan"}, // blank first cell: skipped like the export's spacer rows
		{"Diaz", "Marta"},
	}

	data := ParseManifest(rows)

	require.Len(t, data.Passengers, 1)
	assert.Equal(t, "Diaz", data.Passengers[0]["SURNAME"])
}

func TestParseManifest_PassengerSentinelNeedsSecondCell(t *testing.T) {
	rows := [][]domain.Cell{
		{"SURNAME", "SOMETHING ELSE"},
		{"Smith", "John"},
	}

	data := ParseManifest(rows)

	// Without FIRST NAME in the second cell no section opens, so nothing
	// is collected.
	assert.Empty(t, data.Passengers)
	assert.Empty(t, data.Summary)
}

func TestParseManifest_HeaderCaptureDropsEmptyCells(t *testing.T) {
	rows := [][]domain.Cell{
		{"RESOURCE", "", "DATE"},
		{"A", "ignored", "2024-01-01"},
	}

	data := ParseManifest(rows)

	require.Len(t, data.Summary, 1)
	// Headers are the non-empty sentinel cells, so the middle column shifts.
	assert.Equal(t, "A", data.Summary[0]["RESOURCE"])
	assert.Equal(t, "ignored", data.Summary[0]["DATE"])
}
