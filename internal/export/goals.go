package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/calvarezi/midinero/models"
	"github.com/xuri/excelize/v2"
)

var goalHeaders = []string{"Nombre", "Mes", "Monto objetivo", "Alcanzada"}

func goalRow(g models.FinancialGoal) []string {
	achieved := "No"
	if g.Achieved {
		achieved = "Sí"
	}
	return []string{
		g.Name,
		g.Month.Format("2006-01"),
		fmt.Sprintf("%.2f", g.TargetAmount),
		achieved,
	}
}

// GoalsCSV serializa las metas como CSV.
func GoalsCSV(goals []models.FinancialGoal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(goalHeaders); err != nil {
		return nil, fmt.Errorf("error al escribir el CSV: %v", err)
	}
	for _, g := range goals {
		if err := w.Write(goalRow(g)); err != nil {
			return nil, fmt.Errorf("error al escribir el CSV: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error al escribir el CSV: %v", err)
	}
	return buf.Bytes(), nil
}

// GoalsXLSX genera un libro de Excel con una hoja "Metas".
func GoalsXLSX(goals []models.FinancialGoal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Metas"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range goalHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("error al escribir el XLSX: %v", err)
		}
	}
	for i, g := range goals {
		for col, v := range goalRow(g) {
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
