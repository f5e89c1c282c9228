package routes

import (
	"errors"
	"net/http"

	"mindspace-notes/mindspace/services"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authService services.AuthServiceInterface) {
	router.POST("/api/v1/login", func(c *gin.Context) { Login(c, authService) })
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context, authService services.AuthServiceInterface) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
