//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth("s3cret-admin-key-0001"), func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{Message: "pong"})
	})

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "s3cret-admin-key-0002", http.StatusUnauthorized},
		{"prefix of key", "s3cret-admin", http.StatusUnauthorized},
		{"valid key", "s3cret-admin-key-0001", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/admin/ping", nil)
			if tt.key != "" {
				req.Header.Set(AdminKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAdminAuth_EmptyConfiguredKeyRejectsAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(1, 2)
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/checkout", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/checkout", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req, _ := http.NewRequest("POST", "/checkout", nil)
	req.RemoteAddr = "198.51.100.2:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_RefillsAndExpires(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("a"))

	now = now.Add(rateLimiterExpiry + time.Second)
	assert.True(t, limiter.Allow("b"))
	limiter.mu.Lock()
	_, kept := limiter.visitors["a"]
	limiter.mu.Unlock()
	assert.False(t, kept)
}

func TestCartSession_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session := NewCartSession("0123456789abcdef0123456789abcdef", 30, true)

	c, w := newTestContext("POST", "/carts", "")
	require.NoError(t, session.SetCartID(c, testCartID))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	next, _ := newTestContext("GET", "/carts/current", "")
	next.Request.AddCookie(cookies[0])
	assert.Equal(t, testCartID, session.CartID(next))

	header, _ := newTestContext("GET", "/carts/current", "")
	header.Request.AddCookie(cookies[0])
	header.Request.Header.Set(CartIDHeader, "other-cart")
	assert.Equal(t, "other-cart", session.CartID(header))
}

func TestCartSession_ForeignSecretIgnored(t *testing.T) {
	issuer := NewCartSession("0123456789abcdef0123456789abcdef", 30, false)
	other := NewCartSession("fedcba9876543210fedcba9876543210", 30, false)

	c, w := newTestContext("POST", "/carts", "")
	require.NoError(t, issuer.SetCartID(c, testCartID))

	next, _ := newTestContext("GET", "/carts/current", "")
	next.Request.AddCookie(w.Result().Cookies()[0])
	assert.Equal(t, "", other.CartID(next))
}
