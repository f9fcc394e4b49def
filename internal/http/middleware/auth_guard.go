package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EpicVN/ecommerce-auth/domain"
)

// AuthType identifies one authentication strategy
type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "apiKey"
	AuthTypeNone   AuthType = "none"
)

// Condition controls how multiple strategies combine
type Condition string

const (
	// ConditionAnd requires every strategy to pass
	ConditionAnd Condition = "and"
	// ConditionOr passes on the first successful strategy
	ConditionOr Condition = "or"
)

// GuardMW evaluates a closed set of authentication strategies over a request
type GuardMW struct {
	tokenSvc     domain.TokenService
	secretAPIKey string
}

// NewGuardMW creates a new authentication guard
func NewGuardMW(tokenSvc domain.TokenService, secretAPIKey string) *GuardMW {
	return &GuardMW{tokenSvc: tokenSvc, secretAPIKey: secretAPIKey}
}

// WithJWT is shorthand for a bearer-only guard
func (mw *GuardMW) WithJWT() gin.HandlerFunc {
	return mw.Authenticate(ConditionAnd, AuthTypeBearer)
}

// Authenticate combines the given strategies. OR short-circuits on the first
// success and reports the first failure when none pass; AND fails on the
// first strategy that does not pass.
func (mw *GuardMW) Authenticate(condition Condition, types ...AuthType) gin.HandlerFunc {
	if len(types) == 0 {
		types = []AuthType{AuthTypeBearer}
	}

	return func(c *gin.Context) {
		if condition == ConditionOr {
			var firstErr error
			for _, t := range types {
				if err := mw.evaluate(c, t); err == nil {
					c.Next()
					return
				} else if firstErr == nil {
					firstErr = err
				}
			}
			abortUnauthorized(c, firstErr)
			return
		}

		for _, t := range types {
			if err := mw.evaluate(c, t); err != nil {
				abortUnauthorized(c, err)
				return
			}
		}
		c.Next()
	}
}

func (mw *GuardMW) evaluate(c *gin.Context, t AuthType) error {
	switch t {
	case AuthTypeNone:
		return nil
	case AuthTypeAPIKey:
		return mw.checkAPIKey(c)
	default:
		return mw.checkBearer(c)
	}
}

func (mw *GuardMW) checkBearer(c *gin.Context) error {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.ErrUnauthorized
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return domain.ErrUnauthorized
	}

	claims, err := mw.tokenSvc.VerifyAccessToken(tokenParts[1])
	if err != nil {
		return domain.ErrTokenInvalid
	}

	c.Set("user_id", claims.UserID)
	c.Set("device_id", claims.DeviceID)
	c.Set("user_role", claims.RoleName)
	return nil
}

func (mw *GuardMW) checkAPIKey(c *gin.Context) error {
	key := c.GetHeader("X-API-Key")
	if mw.secretAPIKey == "" || key == "" {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(mw.secretAPIKey)) != 1 {
		return domain.ErrUnauthorized
	}

	// API-key callers act as trusted services, not end users
	if _, exists := c.Get("user_role"); !exists {
		c.Set("user_role", "service")
	}
	return nil
}

func abortUnauthorized(c *gin.Context, err error) {
	msg := "Unauthorized"
	if err != nil && err == domain.ErrTokenInvalid {
		msg = "Invalid or expired token"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}
