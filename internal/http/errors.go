package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError escribe el cuerpo de error que espera el cliente:
// {message, error, statusCode}. message puede ser string o lista.
func respondError(c *gin.Context, status int, message any) {
	c.AbortWithStatusJSON(status, gin.H{
		"message":    message,
		"error":      http.StatusText(status),
		"statusCode": status,
	})
}
