package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"chequeprinter/amount"
	"chequeprinter/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportRecords() []models.ChequeRecord {
	mk := func(payee, amt string) models.ChequeRecord {
		d := decimal.RequireFromString(amt)
		return models.ChequeRecord{
			ID: payee, PayeeName: payee, Amount: d, AmountWords: amount.MustWords(d),
			Date: "2024-03-15", Bank: "HDFC Bank", LayoutID: "hdfc",
			CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		}
	}
	return []models.ChequeRecord{mk("Ravi", "1500"), mk("Anita, Shah", "99.5")}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, exportRecords()))

	assert.True(t, strings.HasPrefix(buf.String(), "\xEF\xBB\xBF"))
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Anita, Shah", rows[2][1])
	assert.Equal(t, "99.50", rows[2][3])
}

func TestExportExcel(t *testing.T) {
	data, err := ExportExcel(exportRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExcelSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Ravi", rows[1][1])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "2 cheques", rows[3][4])

	total, err := f.GetCellValue(ExcelSheet, "D4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1599.5", total)
}

func TestExportExcel_Empty(t *testing.T) {
	data, err := ExportExcel(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
