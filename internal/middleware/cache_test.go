package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newCacheCtx(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	// Parameterized routes share one template; the key must not.
	c.SetPath("/v1/accounts/:id/lease-logs")
	return c
}

func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	k1 := cacheKey("occ", newCacheCtx(t, "/v1/accounts/1/lease-logs"))
	k2 := cacheKey("occ", newCacheCtx(t, "/v1/accounts/2/lease-logs"))
	if k1 == k2 {
		t.Fatalf("cache keys collide across accounts: %s", k1)
	}
	if again := cacheKey("occ", newCacheCtx(t, "/v1/accounts/1/lease-logs")); again != k1 {
		t.Errorf("same URL produced different keys: %s vs %s", k1, again)
	}
}

func TestCacheKeyDistinguishesQuery(t *testing.T) {
	k1 := cacheKey("occ", newCacheCtx(t, "/v1/accounts/1/lease-logs?from=2026-01-01T00:00:00Z"))
	k2 := cacheKey("occ", newCacheCtx(t, "/v1/accounts/1/lease-logs?from=2026-02-01T00:00:00Z"))
	if k1 == k2 {
		t.Fatal("cache keys collide across query strings")
	}
}
