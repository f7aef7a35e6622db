package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/export"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionRequest struct {
	CategoryID  int       `json:"category_id" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// ownCategory comprueba que la categoría exista y pertenezca al usuario.
func ownCategory(pool *pgxpool.Pool, userID, categoryID int) error {
	category, err := database.GetCategoryByID(pool, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return fmt.Errorf("categoría con ID %d no encontrada", categoryID)
	}
	return nil
}

func CreateTransactionHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de transacción inválidos", err.Error())
			return
		}

		userID := currentUserID(c)
		if err := ownCategory(pool, userID, req.CategoryID); err != nil {
			respondError(c, http.StatusBadRequest, "categoría inválida", err.Error())
			return
		}

		transaction := &models.Transaction{
			UserID:      userID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
			Date:        req.Date,
		}
		if err := database.CreateTransaction(pool, transaction); err != nil {
			respondError(c, http.StatusBadRequest, "no se pudo crear la transacción", err.Error())
			return
		}

		services.AfterTransactionWrite(pool, notifier, transaction)
		respondSuccess(c, http.StatusCreated, "transacción creada", transaction)
	}
}

func ListTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := database.GetTransactionsByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las transacciones", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "transacciones del usuario", transactions)
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de transacción inválido")
			return
		}

		transaction, err := database.GetTransactionByID(pool, id)
		if err != nil || transaction.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "transacción no encontrada")
			return
		}
		respondSuccess(c, http.StatusOK, "detalle de la transacción", transaction)
	}
}

func UpdateTransactionHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de transacción inválido")
			return
		}

		var req transactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de transacción inválidos", err.Error())
			return
		}

		userID := currentUserID(c)
		if err := ownCategory(pool, userID, req.CategoryID); err != nil {
			respondError(c, http.StatusBadRequest, "categoría inválida", err.Error())
			return
		}

		// La versión previa puede apuntar a otra categoría u otro mes; sus
		// derivados también deben recalcularse.
		previous, err := database.GetTransactionByID(pool, id)
		if err != nil || previous.UserID != userID {
			respondError(c, http.StatusNotFound, "transacción no encontrada")
			return
		}

		transaction := &models.Transaction{
			ID:          id,
			UserID:      userID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
			Date:        req.Date,
		}
		if err := database.UpdateTransaction(pool, transaction); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo actualizar la transacción", err.Error())
			return
		}

		services.AfterTransactionWrite(pool, notifier, transaction)
		if previous.CategoryID != transaction.CategoryID || !services.MonthOf(previous.Date).Equal(services.MonthOf(transaction.Date)) {
			services.AfterTransactionWrite(pool, notifier, previous)
		}
		respondSuccess(c, http.StatusOK, "transacción actualizada", transaction)
	}
}

func DeleteTransactionHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de transacción inválido")
			return
		}

		userID := currentUserID(c)
		transaction, err := database.GetTransactionByID(pool, id)
		if err != nil || transaction.UserID != userID {
			respondError(c, http.StatusNotFound, "transacción no encontrada")
			return
		}

		if err := database.DeleteTransaction(pool, userID, id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo eliminar la transacción", err.Error())
			return
		}

		services.AfterTransactionWrite(pool, notifier, transaction)
		respondSuccess(c, http.StatusOK, "transacción eliminada", nil)
	}
}

func TransactionSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := database.GetTransactionSummary(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el resumen", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "resumen financiero", summary)
	}
}

func ExportTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		transactions, err := database.GetTransactionsForExport(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las transacciones", err.Error())
			return
		}

		var (
			content     []byte
			contentType string
			filename    string
		)
		format := c.DefaultQuery("format", "csv")
		switch format {
		case "csv":
			content, err = export.TransactionsCSV(transactions)
			contentType = "text/csv"
			filename = "transacciones.csv"
		case "xlsx":
			content, err = export.TransactionsXLSX(transactions)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			filename = "transacciones.xlsx"
		case "pdf":
			content, err = export.TransactionsPDF(transactions)
			contentType = "application/pdf"
			filename = "transacciones.pdf"
		default:
			respondError(c, http.StatusBadRequest, "formato de exportación no soportado", format)
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo generar la exportación", err.Error())
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, contentType, content)
	}
}
