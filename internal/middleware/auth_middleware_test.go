package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-erp/internal/middleware"
	"go-erp/internal/rbac"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s, _ := contextutil.GetSession(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": s.UserID, "role": s.Role, "ctx_user": c.GetString(middleware.ContextUserID)})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.MapClaims{"user_id": "u-1", "role": "accountant", "exp": time.Now().Add(time.Hour).Unix()}

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, valid))
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"u-1","role":"accountant","ctx_user":"u-1"}`, w.Body.String())
	})

	t.Run("cookie fallback and numeric sub", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, jwt.MapClaims{"sub": float64(42), "role": "admin"})})
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user":"42"`)
	})

	cases := []struct {
		name  string
		token string
		want  string
	}{
		{"missing", "", "Token not found"},
		{"garbage", "not-a-jwt", "Invalid token"},
		{"expired", signToken(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(-time.Hour).Unix()}), "Token has expired"},
		{"no user", signToken(t, jwt.MapClaims{"role": "admin"}), "User ID not found in token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}

type stubEnforcer struct {
	allowed bool
	err     error
	got     rbac.EnforceRequest
}

func (s *stubEnforcer) Enforce(req rbac.EnforceRequest) (bool, error) {
	s.got = req
	return s.allowed, s.err
}

func TestRBACAuthorize(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"user_id": "u-1", "role": "sales"})

	t.Run("allowed", func(t *testing.T) {
		enf := &stubEnforcer{allowed: true}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter(middleware.RBACAuthorize(enf, "payment", "create")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, rbac.EnforceRequest{Role: "sales", Resource: "payment", Action: "create"}, enf.got)
	})

	t.Run("denied names the permission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter(middleware.RBACAuthorize(&stubEnforcer{}, "payment", "create")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"required":"payment:create"`)
	})

	t.Run("enforcer error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newAuthRouter(middleware.RBACAuthorize(&stubEnforcer{err: assert.AnError}, "payment", "create")).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
