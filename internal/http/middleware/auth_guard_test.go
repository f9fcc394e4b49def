package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/EpicVN/ecommerce-auth/domain"
	"github.com/EpicVN/ecommerce-auth/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runGuard(handler gin.HandlerFunc, mutate func(*http.Request)) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(c.Request)
	}
	handler(c)
	return w, c
}

func TestBearerGuard(t *testing.T) {
	t.Run("valid token populates context", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.VerifyAccessTokenFunc = func(token string) (*domain.AccessTokenClaims, error) {
			assert.Equal(t, "good-token", token)
			return &domain.AccessTokenClaims{UserID: 42, DeviceID: 9, RoleID: 7, RoleName: domain.RoleNameClient}, nil
		}
		mw := NewGuardMW(tokenSvc, "")

		w, c := runGuard(mw.WithJWT(), func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer good-token")
		})

		assert.Equal(t, http.StatusOK, w.Code)
		userID, _ := c.Get("user_id")
		assert.Equal(t, uint(42), userID)
		role, _ := c.Get("user_role")
		assert.Equal(t, domain.RoleNameClient, role)
	})

	t.Run("missing header", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "")

		w, _ := runGuard(mw.WithJWT(), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Unauthorized")
	})

	t.Run("malformed header", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "")

		w, _ := runGuard(mw.WithJWT(), func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc123")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token reports invalid", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.VerifyAccessTokenFunc = func(token string) (*domain.AccessTokenClaims, error) {
			return nil, errors.New("expired")
		}
		mw := NewGuardMW(tokenSvc, "")

		w, _ := runGuard(mw.WithJWT(), func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer stale-token")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})
}

func TestAPIKeyGuard(t *testing.T) {
	t.Run("matching key passes and assumes the service role", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "super-secret")

		w, c := runGuard(mw.Authenticate(ConditionAnd, AuthTypeAPIKey), func(r *http.Request) {
			r.Header.Set("X-API-Key", "super-secret")
		})
		assert.Equal(t, http.StatusOK, w.Code)
		role, _ := c.Get("user_role")
		assert.Equal(t, "service", role)
	})

	t.Run("wrong key", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "super-secret")

		w, _ := runGuard(mw.Authenticate(ConditionAnd, AuthTypeAPIKey), func(r *http.Request) {
			r.Header.Set("X-API-Key", "guessed")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no configured key disables the strategy", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "")

		w, _ := runGuard(mw.Authenticate(ConditionAnd, AuthTypeAPIKey), func(r *http.Request) {
			r.Header.Set("X-API-Key", "anything")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGuardCombinators(t *testing.T) {
	t.Run("or passes with only an api key", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.VerifyAccessTokenFunc = func(token string) (*domain.AccessTokenClaims, error) {
			return nil, errors.New("no token")
		}
		mw := NewGuardMW(tokenSvc, "super-secret")

		w, _ := runGuard(mw.Authenticate(ConditionOr, AuthTypeBearer, AuthTypeAPIKey), func(r *http.Request) {
			r.Header.Set("X-API-Key", "super-secret")
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("or fails when every strategy fails", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "super-secret")

		w, _ := runGuard(mw.Authenticate(ConditionOr, AuthTypeBearer, AuthTypeAPIKey), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("and requires every strategy", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		mw := NewGuardMW(tokenSvc, "super-secret")

		// Bearer passes via mock default, api key is absent
		w, _ := runGuard(mw.Authenticate(ConditionAnd, AuthTypeBearer, AuthTypeAPIKey), func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer good-token")
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("none always passes", func(t *testing.T) {
		mw := NewGuardMW(mocks.NewMockTokenService(), "")

		w, _ := runGuard(mw.Authenticate(ConditionAnd, AuthTypeNone), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
