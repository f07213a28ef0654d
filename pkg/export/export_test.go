package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = Table{
	Header: []string{"Fabricator", "Amount"},
	Rows: [][]string{
		{"Steel, Works & Co", "123.45"},
		{"Iron \"Best\" Ltd", "0.00"},
	},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestRender_CSVQuotesFields(t *testing.T) {
	out, err := Render(FormatCSV, sample)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, sample.Header, records[0])
	assert.Equal(t, sample.Rows, records[1:])
}

func TestRender_XLSX(t *testing.T) {
	out, err := Render(FormatXLSX, sample)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sample.Header, rows[0])
	assert.Equal(t, "123.45", rows[1][1])
}
