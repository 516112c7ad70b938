package v1

import (
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	"github.com/drinkbox/storefront/internal/infrastructure/metrics"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/time/rate"
)

// AdminKeyHeader carries the back-office API key.
const AdminKeyHeader = "X-Admin-Key"

// CartIDHeader lets clients without cookies address their cart.
const CartIDHeader = "X-Cart-ID"

const (
	sessionName       = "storefront"
	sessionCartKey    = "cart_id"
	rateLimiterExpiry = 5 * time.Minute
)

// AdminAuth rejects requests whose X-Admin-Key header does not match apiKey.
func AdminAuth(apiKey string) gin.HandlerFunc {
	expected := []byte(apiKey)
	return func(ctx *gin.Context) {
		given := []byte(ctx.GetHeader(AdminKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(given, expected) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid admin key"})
			return
		}
		ctx.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// five minutes are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing ratePerSecond requests per client with the given burst.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > rateLimiterExpiry {
			delete(l.visitors, k)
		}
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware answers 429 once a client exhausts its bucket.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !l.Allow(ctx.ClientIP()) {
			metrics.RateLimitedTotal.WithLabelValues(ctx.FullPath()).Inc()
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Message: "rate limit exceeded"})
			return
		}
		ctx.Next()
	}
}

// CartSession stores the cart ID of a shopper in a signed cookie.
type CartSession struct {
	store sessions.Store
}

// NewCartSession creates a cookie backed cart session.
func NewCartSession(secret string, maxAgeDays int, secure bool) *CartSession {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CartSession{store: store}
}

// CartID returns the cart of the request. The X-Cart-ID header wins over the cookie.
func (s *CartSession) CartID(ctx *gin.Context) string {
	if id := ctx.GetHeader(CartIDHeader); id != "" {
		return id
	}
	if s == nil {
		return ""
	}
	session, err := s.store.Get(ctx.Request, sessionName)
	if err != nil {
		return ""
	}
	id, _ := session.Values[sessionCartKey].(string)
	return id
}

// SetCartID remembers cartID in the session cookie. An empty ID clears it.
func (s *CartSession) SetCartID(ctx *gin.Context, cartID string) error {
	if s == nil {
		return nil
	}
	// A cookie signed with a rotated secret fails to decode; a fresh session replaces it.
	session, _ := s.store.Get(ctx.Request, sessionName)
	if cartID == "" {
		delete(session.Values, sessionCartKey)
	} else {
		session.Values[sessionCartKey] = cartID
	}
	return session.Save(ctx.Request, ctx.Writer)
}

// ErrorLogger logs the errors handlers attached to the context.
func ErrorLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		if len(ctx.Errors) == 0 {
			return
		}
		reqLog := log.With("method", ctx.Request.Method, "path", ctx.FullPath(), "status", ctx.Writer.Status())
		for _, err := range ctx.Errors {
			reqLog.Error("request failed: ", err.Err)
		}
	}
}
