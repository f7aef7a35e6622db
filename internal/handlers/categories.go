package handlers

import (
	"net/http"
	"strconv"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=income expense"`
}

func CreateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de categoría inválidos", err.Error())
			return
		}

		category := &models.Category{
			UserID: currentUserID(c),
			Name:   req.Name,
			Type:   req.Type,
		}
		if err := database.CreateCategory(pool, category); err != nil {
			respondError(c, http.StatusBadRequest, "no se pudo crear la categoría", err.Error())
			return
		}
		respondSuccess(c, http.StatusCreated, "categoría creada", category)
	}
}

func ListCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.GetCategoriesByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las categorías", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "categorías del usuario", categories)
	}
}

func GetCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de categoría inválido")
			return
		}

		category, err := database.GetCategoryByID(pool, id)
		if err != nil || category.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "categoría no encontrada")
			return
		}
		respondSuccess(c, http.StatusOK, "detalle de la categoría", category)
	}
}

func UpdateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de categoría inválido")
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de categoría inválidos", err.Error())
			return
		}

		category := &models.Category{
			ID:     id,
			UserID: currentUserID(c),
			Name:   req.Name,
			Type:   req.Type,
		}
		if err := database.UpdateCategory(pool, category); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo actualizar la categoría", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "categoría actualizada", category)
	}
}

func DeleteCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de categoría inválido")
			return
		}

		if err := database.DeleteCategory(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusBadRequest, "no se pudo eliminar la categoría", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "categoría eliminada", nil)
	}
}
