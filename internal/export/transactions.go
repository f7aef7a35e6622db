package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var transactionHeaders = []string{"ID", "Fecha", "Categoría", "Tipo", "Monto", "Descripción"}

func transactionRow(t database.ExportTransaction) []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Date.Format("2006-01-02"),
		t.CategoryName,
		t.CategoryType,
		fmt.Sprintf("%.2f", t.Amount),
		t.Description,
	}
}

// TransactionsCSV serializa las transacciones como CSV con encabezados en
// español.
func TransactionsCSV(transactions []database.ExportTransaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(transactionHeaders); err != nil {
		return nil, fmt.Errorf("error al escribir el CSV: %v", err)
	}
	for _, t := range transactions {
		if err := w.Write(transactionRow(t)); err != nil {
			return nil, fmt.Errorf("error al escribir el CSV: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error al escribir el CSV: %v", err)
	}
	return buf.Bytes(), nil
}

// TransactionsXLSX genera un libro de Excel con una hoja "Transacciones".
func TransactionsXLSX(transactions []database.ExportTransaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transacciones"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range transactionHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("error al escribir el XLSX: %v", err)
		}
	}
	for i, t := range transactions {
		row := []any{t.ID, t.Date.Format("2006-01-02"), t.CategoryName, t.CategoryType, t.Amount, t.Description}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("error al escribir el XLSX: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error al generar el XLSX: %v", err)
	}
	return buf.Bytes(), nil
}

// TransactionsPDF genera un listado tabular en PDF.
func TransactionsPDF(transactions []database.ExportTransaction) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr("Transacciones"))
	pdf.Ln(12)

	widths := []float64{15, 28, 60, 25, 35, 110}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range transactionHeaders {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, t := range transactions {
		for i, v := range transactionRow(t) {
			pdf.CellFormat(widths[i], 7, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error al generar el PDF: %v", err)
	}
	return buf.Bytes(), nil
}
