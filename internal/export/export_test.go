package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/export"
	"github.com/calvarezi/midinero/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionsCSV(t *testing.T) {
	transacciones := []database.ExportTransaction{
		{
			ID:           7,
			Date:         time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			CategoryName: "Comida",
			CategoryType: "expense",
			Amount:       125.5,
			Description:  "almuerzo, con propina",
		},
	}

	contenido, err := export.TransactionsCSV(transacciones)
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(contenido)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 2)

	assert.Equal(t, []string{"ID", "Fecha", "Categoría", "Tipo", "Monto", "Descripción"}, registros[0])
	assert.Equal(t, []string{"7", "2025-06-15", "Comida", "expense", "125.50", "almuerzo, con propina"}, registros[1])
}

func TestTransactionsCSVVacio(t *testing.T) {
	contenido, err := export.TransactionsCSV(nil)
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(contenido)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 1)
}

func TestGoalsCSV(t *testing.T) {
	metas := []models.FinancialGoal{
		{
			Name:         "Vacaciones",
			Month:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			TargetAmount: 3000,
			Achieved:     true,
		},
		{
			Name:         "Fondo de emergencia",
			Month:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			TargetAmount: 10000,
		},
	}

	contenido, err := export.GoalsCSV(metas)
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(contenido)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)

	assert.Equal(t, []string{"Nombre", "Mes", "Monto objetivo", "Alcanzada"}, registros[0])
	assert.Equal(t, []string{"Vacaciones", "2025-07", "3000.00", "Sí"}, registros[1])
	assert.Equal(t, []string{"Fondo de emergencia", "2025-07", "10000.00", "No"}, registros[2])
}

func TestTransactionsXLSX(t *testing.T) {
	transacciones := []database.ExportTransaction{
		{ID: 1, Date: time.Now(), CategoryName: "Comida", CategoryType: "expense", Amount: 10},
	}
	contenido, err := export.TransactionsXLSX(transacciones)
	require.NoError(t, err)
	// Todo XLSX es un ZIP: empieza con PK.
	assert.True(t, bytes.HasPrefix(contenido, []byte("PK")))
}

func TestTransactionsPDF(t *testing.T) {
	contenido, err := export.TransactionsPDF(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(contenido, []byte("%PDF")))
}
