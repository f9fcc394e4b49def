package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/EpicVN/ecommerce-auth/internal/http/handlers"
	"github.com/EpicVN/ecommerce-auth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.PolicyHandlers, guard *middleware.GuardMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	public := guard.Authenticate(middleware.ConditionAnd, middleware.AuthTypeNone)

	auth := r.Group("/auth")
	auth.POST("/otp/send", public, ah.SendOTP)
	auth.POST("/register", public, ah.Register)
	auth.POST("/login", public, ah.Login)
	auth.POST("/refresh-token", public, ah.Refresh)
	auth.POST("/logout", public, ah.Logout)

	v := r.Group("/").Use(guard.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)

	// Service-to-service callers may present an API key instead of a token
	adm := r.Group("/admin").Use(
		guard.Authenticate(middleware.ConditionOr, middleware.AuthTypeBearer, middleware.AuthTypeAPIKey),
		cb.Enforce(),
	)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
