package handlers

import (
	"github.com/gin-gonic/gin"
)

// Todas las respuestas de la API comparten el mismo sobre:
// {"status": "success"|"error", "message": ..., "data"|"errors": ...}.

func respondSuccess(c *gin.Context, status int, message string, data any) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string, errs ...string) {
	body := gin.H{
		"status":  "error",
		"message": message,
	}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	c.JSON(status, body)
}

// currentUserID lee el ID de usuario que dejó el middleware de autenticación.
func currentUserID(c *gin.Context) int {
	return c.GetInt("user_id")
}
