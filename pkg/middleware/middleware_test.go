package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit())
	router.POST("/api/v1/auth/token", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doFrom(router *gin.Engine, ip string) int {
	req := httptest.NewRequest("POST", "/api/v1/auth/token", nil)
	req.RemoteAddr = ip + ":51000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitKeysOnClientIP(t *testing.T) {
	router := setupLimitedRouter()

	// The auth limiter has a burst of one, so an immediate repeat from the
	// same address is rejected
	assert.Equal(t, http.StatusOK, doFrom(router, "203.0.113.10"))
	assert.Equal(t, http.StatusBadRequest, doFrom(router, "203.0.113.10"))

	// A different address carries its own limiter
	assert.Equal(t, http.StatusOK, doFrom(router, "203.0.113.11"))
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func setupProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(secret), func(c *gin.Context) {
		claims, _ := c.Get("claims")
		mapClaims, ok := claims.(jwt.MapClaims)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"participant_id": mapClaims["participant_id"]})
	})
	return router
}

func TestJWTAuth(t *testing.T) {
	router := setupProtectedRouter("test-secret")
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"participant_id": 7,
		"exp":            time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "participant_id")
}

func TestJWTAuthRejections(t *testing.T) {
	router := setupProtectedRouter("test-secret")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Bearer"},
		{"wrong secret", "Bearer " + signedToken(t, "other-secret", jwt.MapClaims{
			"participant_id": 7,
			"exp":            time.Now().Add(time.Hour).Unix(),
		})},
		{"missing participant claim", "Bearer " + signedToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", "Bearer " + signedToken(t, "test-secret", jwt.MapClaims{
			"participant_id": 7,
			"exp":            time.Now().Add(-time.Hour).Unix(),
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
