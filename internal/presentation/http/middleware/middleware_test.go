package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/testutil"
	"github.com/sangkips/xylem-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, id)
		c.Next()
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, time.Hour)
	userID := uuid.New()
	token, err := jwt.GenerateAccessToken(utils.Identity{UserID: userID, Username: "rahim", IsMarketingRep: true})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "rep": c.GetBool(IsMarketingRepKey), "admin": c.GetBool(IsAdminKey)})
	})

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusOK {
				assert.JSONEq(t, `{"id":"`+userID.String()+`","rep":true,"admin":false}`, w.Body.String())
			}
		})
	}
}

func TestRateLimiter_KeysByUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	alice, bob := uuid.New(), uuid.New()
	r := gin.New()
	r.GET("/a", withUser(alice), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", withUser(bob), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, hit("/a").Code)
	assert.Equal(t, http.StatusOK, hit("/a").Code)
	w := hit("/a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, hit("/b").Code)
}

func TestConfigFromWindow(t *testing.T) {
	cfg := ConfigFromWindow(120, 60)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = ConfigFromWindow(0, 0)
	assert.Equal(t, 100, cfg.BurstSize)
}

func TestIdempotency(t *testing.T) {
	store := testutil.NewStore()
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	var calls int32

	r := gin.New()
	r.POST("/reports", withUser(userID), Idempotency(IdempotencyConfig{
		Repo: store.Idempotency(),
		Now:  func() time.Time { return now },
	}), func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		if c.Query("fail") != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": n})
	})

	post := func(target, key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := post("/reports", "k1", `{"a":1}`)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())

	replay := post("/reports", "k1", `{"a":1}`)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(ReplayedHeader))
	assert.JSONEq(t, `{"call":1}`, replay.Body.String())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	conflict := post("/reports", "k1", `{"a":2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, conflict.Code)

	// no key, no memory
	post("/reports", "", `{"a":1}`)
	post("/reports", "", `{"a":1}`)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))

	// failures are not stored so the client may retry
	failed := post("/reports?fail=1", "k2", `{}`)
	assert.Equal(t, http.StatusBadRequest, failed.Code)
	retry := post("/reports", "k2", `{}`)
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Empty(t, retry.Header().Get(ReplayedHeader))

	// an expired key runs the handler again
	now = now.Add(IdempotencyKeyTTL + time.Minute)
	again := post("/reports", "k1", `{"a":2}`)
	assert.Equal(t, http.StatusCreated, again.Code)
	assert.Empty(t, again.Header().Get(ReplayedHeader))
}

func TestRequireAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(IsAdminKey, c.Query("admin") == "1")
		c.Next()
	}, RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User is not an Admin.")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?admin=1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
