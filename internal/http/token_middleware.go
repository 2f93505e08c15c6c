package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"youapp-client/internal/api"
	"youapp-client/internal/service"
)

const authClaimsKey = "auth_claims"

// TokenAuthMiddleware valida el access token del header x-access-token y guarda
// los claims en el contexto.
func TokenAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			respondError(c, http.StatusInternalServerError, "jwt not configured")
			return
		}

		token := strings.TrimSpace(c.GetHeader(api.DefaultTokenHeader))
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := jwtSvc.Parse(token)
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, service.ErrJWTExpired) {
				msg = "Token expired"
			}
			respondError(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.TokenClaims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.TokenClaims{}, false
	}
	claims, ok := val.(service.TokenClaims)
	return claims, ok
}
