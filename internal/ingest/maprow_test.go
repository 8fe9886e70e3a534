package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sobordos/internal/domain"
)

func TestMapRow(t *testing.T) {
	headers := []string{"A", "B", "C"}
	row := []domain.Cell{"x", 42.0, "y"}

	rec := MapRow(headers, row)

	assert.Equal(t, "x", rec["A"])
	assert.Equal(t, 42.0, rec["B"])
	assert.Equal(t, "y", rec["C"])
}

func TestMapRow_ShortRowMapsToNil(t *testing.T) {
	rec := MapRow([]string{"A", "B", "C"}, []domain.Cell{"x"})

	assert.Equal(t, "x", rec["A"])
	assert.Nil(t, rec["B"])
	assert.Nil(t, rec["C"])
	assert.Len(t, rec, 3)
}

func TestMapRow_ExtraCellsIgnored(t *testing.T) {
	rec := MapRow([]string{"A"}, []domain.Cell{"x", "extra", "more"})

	assert.Len(t, rec, 1)
	assert.Equal(t, "x", rec["A"])
}

func TestMapRow_EmptyAndZeroBecomeAbsent(t *testing.T) {
	rec := MapRow([]string{"A", "B", "C", "D"}, []domain.Cell{"", 0.0, nil, " "})

	assert.Nil(t, rec["A"])
	assert.Nil(t, rec["B"])
	assert.Nil(t, rec["C"])
	// Whitespace is data, not absence.
	assert.Equal(t, " ", rec["D"])
}
