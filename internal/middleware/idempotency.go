package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-commission/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL   = 30 * time.Second
	idempotencyResultTTL = 24 * time.Hour
)

// Idempotency replays the stored response of a POST carrying an
// Idempotency-Key header and rejects a duplicate still in flight. The
// handler stores its result with SaveIdempotentResponse.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost || rdb == nil {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached any
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Header("Idempotent-Replay", "true")
				c.AbortWithStatusJSON(http.StatusOK, response.ApiEnvelope{Ok: true, Data: cached})
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("idempotency lookup failed", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()

		// A failed request releases the key so the client may retry.
		if c.Writer.Status() >= http.StatusBadRequest {
			rdb.Del(ctx, lockKey)
		}
	}
}

// SaveIdempotentResponse caches data under the key reserved by Idempotency
// and releases the lock. It is a no-op when the request carried no key.
func SaveIdempotentResponse(c *gin.Context, rdb *redis.Client, data any) {
	cacheKey := c.GetString(IdempotencyCacheKey)
	if cacheKey == "" || rdb == nil {
		return
	}
	ctx := c.Request.Context()
	payload, err := json.Marshal(data)
	if err == nil {
		rdb.Set(ctx, cacheKey, payload, idempotencyResultTTL)
	}
	rdb.Del(ctx, c.GetString(IdempotencyLockKey))
}
