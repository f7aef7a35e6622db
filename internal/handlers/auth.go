package handlers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tokenLifetime = 24 * time.Hour

// JWTSecret devuelve la clave de firma de los tokens. Sin JWT_SECRET en el
// entorno se usa una clave de desarrollo; nunca dejarla en producción.
func JWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("midinero-dev-secret")
}

func generateToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

func RegisterHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de registro inválidos", err.Error())
			return
		}

		user := &models.User{Email: req.Email, Password: req.Password, Name: req.Name}
		if err := database.RegisterUser(pool, user); err != nil {
			log.Printf("error al registrar al usuario %s: %v", req.Email, err)
			respondError(c, http.StatusBadRequest, "no se pudo registrar el usuario", err.Error())
			return
		}

		token, err := generateToken(user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo generar el token")
			return
		}

		respondSuccess(c, http.StatusCreated, "usuario registrado", gin.H{
			"user":  user,
			"token": token,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de acceso inválidos", err.Error())
			return
		}

		user, err := database.AuthenticateUser(pool, req.Email, req.Password)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "correo o contraseña incorrectos")
			return
		}

		token, err := generateToken(user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo generar el token")
			return
		}

		respondSuccess(c, http.StatusOK, "sesión iniciada", gin.H{
			"user":  user,
			"token": token,
		})
	}
}

func ProfileHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusNotFound, "usuario no encontrado")
			return
		}
		respondSuccess(c, http.StatusOK, "perfil del usuario", user)
	}
}
