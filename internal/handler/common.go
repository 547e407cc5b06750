package handler // handler defines the HTTP endpoint layer

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/middleware"
	"github.com/arktribe/tribestore/internal/utils"
)

// dbTimeout bounds every database call made from a handler so a stuck
// connection cannot pin request goroutines indefinitely.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// claims extracts the typed token claims injected by the JWT middleware.
func claims(c echo.Context) (utils.Claims, bool) {
	return middleware.ClaimsFrom(c)
}

// pathID parses the named path parameter as an unsigned id.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pathOrQueryID parses an id coming from a query parameter.
func pathOrQueryID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
