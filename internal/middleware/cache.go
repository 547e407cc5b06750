package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arktribe/tribestore/internal/config"
)

// bodyCapture mirrors the response body into a buffer while writing
// through to the client.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// NewOccupancyCache caches successful JSON GET responses for a short
// TTL. It is applied to the occupancy dashboard and lease-history
// routes, where a few seconds of staleness is acceptable and the same
// snapshot is requested by every tribe member at once. Mutating routes
// bypass it entirely, so a released lease is at most TTL away from the
// dashboard. Disabled (pass-through) when Redis is unavailable.
func NewOccupancyCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && strings.HasPrefix(
				c.Response().Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
				// Detached context: the response is already sent.
				_ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}

// cacheKey hashes the concrete request URL + query so long URLs stay
// within key limits. The raw URL path is used, not the route template:
// parameterized routes (/v1/accounts/:id/lease-logs) must cache each id
// separately or one account's response would be served for another.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}
