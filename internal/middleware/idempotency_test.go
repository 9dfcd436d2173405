package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const cacheKey = "idemp:/lots/:id/payments:u-1:key-1"

	newRouter := func(handler gin.HandlerFunc) (*gin.Engine, redismock.ClientMock) {
		rdb, mock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/lots/:id/payments", func(c *gin.Context) {
			c.Set("user_id", "u-1")
			c.Next()
		}, Idempotency(rdb), handler)
		return r, mock
	}

	t.Run("replays cached response", func(t *testing.T) {
		called := false
		r, mock := newRouter(func(c *gin.Context) { called = true })
		mock.ExpectGet(cacheKey).SetVal(`{"id":"p-1"}`)

		req := httptest.NewRequest(http.MethodPost, "/lots/1/payments", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.Contains(t, w.Body.String(), `"p-1"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects in-flight duplicate", func(t *testing.T) {
		r, mock := newRouter(func(c *gin.Context) { c.Status(http.StatusCreated) })
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/lots/1/payments", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request reserves key", func(t *testing.T) {
		var gotKey string
		r, mock := newRouter(func(c *gin.Context) {
			gotKey = c.GetString(IdempotencyCacheKey)
			c.Status(http.StatusCreated)
		})
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		req := httptest.NewRequest(http.MethodPost, "/lots/1/payments", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, cacheKey, gotKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no header passes through", func(t *testing.T) {
		r, mock := newRouter(func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/lots/1/payments", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
