package fileparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sobordos/internal/domain"
)

func TestRows_UnsupportedExtension(t *testing.T) {
	_, err := Rows([]byte("x"), "export.pdf", ',')
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = Rows([]byte("x"), "noextension", ',')
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestRows_CSVWithComma(t *testing.T) {
	data := []byte("Cupon,Estado\n456,embarque\n")

	rows, err := Rows(data, "tme.csv", ',')
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.Cell("Cupon"), rows[0][0])
	assert.Equal(t, domain.Cell("embarque"), rows[1][1])
}

func TestRows_CSVWithSemicolon(t *testing.T) {
	data := []byte("SURNAME;FIRST NAME\nSmith;John\n")

	rows, err := Rows(data, "dfds.csv", ';')
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, domain.Cell("SURNAME"), rows[0][0])
	assert.Equal(t, domain.Cell("John"), rows[1][1])
}

func TestRows_CSVRaggedRowsAllowed(t *testing.T) {
	data := []byte("A,B,C\n1\n2,3\n")

	rows, err := Rows(data, "ragged.csv", ',')
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Len(t, rows[1], 1)
	assert.Len(t, rows[2], 2)
}

func TestRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Cupon"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Estado"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "19690000456"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "embarque"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Rows(buf.Bytes(), "tickets.xlsx", ',')
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, domain.Cell("Cupon"), rows[0][0])
	assert.Equal(t, domain.Cell("embarque"), rows[1][1])
}

func TestRows_XLSXGarbage(t *testing.T) {
	_, err := Rows([]byte("not a zip archive"), "broken.xlsx", ',')
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}

func TestRows_XLSGarbage(t *testing.T) {
	_, err := Rows([]byte("not a BIFF workbook"), "broken.xls", ',')
	assert.ErrorIs(t, err, domain.ErrUnreadableFile)
}
