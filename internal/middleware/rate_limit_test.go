package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", RateLimitByIP(0.001, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestKeyRateLimiter_SeparateBuckets(t *testing.T) {
	l := NewKeyRateLimiter(0.001, 1)

	assert.True(t, l.GetLimiter("a").Allow())
	assert.False(t, l.GetLimiter("a").Allow())
	assert.True(t, l.GetLimiter("b").Allow())
}
