package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"youapp-client/internal/api"
	"youapp-client/internal/service"
)

// NewRouter configura el router de Gin con middlewares y las rutas /api.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	profileH *ProfileHandler,
	jwtSvc *service.JWTService,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(allowedOrigins), jsonContentTypeMiddleware())

	public := r.Group("/api")
	public.POST("/register", authH.Register)
	public.POST("/login", authH.Login)

	protected := r.Group("/api", TokenAuthMiddleware(jwtSvc))
	protected.POST("/logout", authH.Logout)
	protected.GET("/getProfile", profileH.GetProfile)
	protected.POST("/createProfile", profileH.CreateProfile)
	protected.PUT("/updateProfile", profileH.UpdateProfile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware permite el header del token; sin orígenes configurados acepta todos.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, api.DefaultTokenHeader)
	return cors.New(cfg)
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
