package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"chequeprinter/amount"
	"chequeprinter/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExcelSheet 导出工作表名
const ExcelSheet = "Cheques"

var exportHeaders = []string{"Date", "Payee", "Bank", "Amount", "Amount in Words", "Created"}

const createdLayout = "2006-01-02 15:04:05"

func exportRow(rec models.ChequeRecord) []string {
	return []string{
		rec.Date,
		rec.PayeeName,
		rec.Bank,
		amount.Fixed(rec.Amount),
		rec.AmountWords,
		rec.CreatedAt.Local().Format(createdLayout),
	}
}

// ExportCSV 写出支票历史 CSV，带 BOM 以便 Excel 正确识别 UTF-8
func ExportCSV(w io.Writer, records []models.ChequeRecord) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("生成 CSV 失败: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(exportRow(rec)); err != nil {
			return fmt.Errorf("生成 CSV 失败: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("生成 CSV 失败: %w", err)
	}
	return nil
}

// ExportExcel 生成支票历史工作簿，末行为金额合计
func ExportExcel(records []models.ChequeRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExcelSheet); err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	amountFormat := "#,##0.00"
	amountStyle, _ := f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       border,
		CustomNumFmt: &amountFormat,
	})

	// 设置列宽
	widths := map[string]float64{"A": 12, "B": 28, "C": 22, "D": 15, "E": 70, "F": 20}
	for col, w := range widths {
		f.SetColWidth(ExcelSheet, col, col, w)
	}

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(ExcelSheet, cell, header)
		f.SetCellStyle(ExcelSheet, cell, cell, headerStyle)
	}

	total := decimal.Zero
	for i, rec := range records {
		row := i + 2
		f.SetCellValue(ExcelSheet, fmt.Sprintf("A%d", row), rec.Date)
		f.SetCellValue(ExcelSheet, fmt.Sprintf("B%d", row), rec.PayeeName)
		f.SetCellValue(ExcelSheet, fmt.Sprintf("C%d", row), rec.Bank)
		f.SetCellValue(ExcelSheet, fmt.Sprintf("D%d", row), rec.Amount.InexactFloat64())
		f.SetCellValue(ExcelSheet, fmt.Sprintf("E%d", row), rec.AmountWords)
		f.SetCellValue(ExcelSheet, fmt.Sprintf("F%d", row), rec.CreatedAt.Local().Format(createdLayout))

		f.SetCellStyle(ExcelSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
		f.SetCellStyle(ExcelSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), amountStyle)
		total = total.Add(rec.Amount)
	}

	// 汇总行
	summaryRow := len(records) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	f.SetCellValue(ExcelSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(ExcelSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(ExcelSheet, fmt.Sprintf("D%d", summaryRow), total.InexactFloat64())
	f.SetCellValue(ExcelSheet, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("%d cheques", len(records)))
	f.MergeCell(ExcelSheet, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellStyle(ExcelSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf.Bytes(), nil
}
