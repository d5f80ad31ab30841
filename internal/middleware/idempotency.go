package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Nogs0/bot-api-Vercel/internal/log"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyPrefix = "idempotency:"
	idempotencyTTL    = 24 * time.Hour
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a POST that repeats
// an Idempotency-Key, so chat webhook retries do not toggle a driver twice.
// Redis failures fall through to normal processing.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		// Keys are scoped per route so one key reused across endpoints
		// cannot replay another endpoint's reply.
		cacheKey := idempotencyPrefix + c.FullPath() + ":" + key

		cached, err := getCachedResponse(ctx, redisClient, cacheKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Warn(ctx, "idempotency lookup failed", log.Err(err))
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Data(cached.StatusCode, cached.Headers.Get("Content-Type"), cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are not cached so the caller can retry.
		if status := c.Writer.Status(); status >= 200 && status < 500 {
			response := cachedResponse{
				StatusCode: status,
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if err := setCachedResponse(ctx, redisClient, cacheKey, &response, idempotencyTTL); err != nil {
				log.Warn(ctx, "idempotency store failed", log.Err(err))
			}
		}
	}
}

// getCachedResponse retrieves a cached response from Redis.
func getCachedResponse(ctx context.Context, client *redis.Client, key string) (*cachedResponse, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

// setCachedResponse stores a response in Redis.
func setCachedResponse(ctx context.Context, client *redis.Client, key string, response *cachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return client.Set(ctx, key, data, ttl).Err()
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only the content type matters to the chat integration.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
