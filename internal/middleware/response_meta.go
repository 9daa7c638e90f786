package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
)

// WithResponseMeta starts a metadata map for the request. Handlers add to it
// and pass it to response.JSON.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Set(responseMetaKey+".start", time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the payload came from the course cache.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)[cacheHitKey] = hit
}

// ResponseMeta returns the metadata collected so far with the elapsed
// processing time filled in.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := ensureMeta(c)
	if start, ok := c.Get(responseMetaKey + ".start"); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
