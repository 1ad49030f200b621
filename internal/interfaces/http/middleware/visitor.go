package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/backend/internal/application/visitor"
)

// visitRecordTimeout bounds the background geo lookup and store write
// for one visit.
const visitRecordTimeout = 5 * time.Second

// VisitLogger records storefront visits. Paths matching a skip prefix
// (the admin surface, health checks) are not recorded. Recording runs
// in the background so a slow geo lookup never delays the response.
func VisitLogger(recorder *visitor.Recorder, skipPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip := c.ClientIP()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), visitRecordTimeout)
			defer cancel()
			recorder.Record(ctx, ip, path)
		}()

		c.Next()
	}
}
