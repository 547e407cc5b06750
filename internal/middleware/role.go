package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware enforcing that the authenticated
// caller has one of the specified roles. Superusers always pass.
// Assumes JWTAuth ran earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cl, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if cl.IsSuperuser || allowed[cl.Role] {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
}
