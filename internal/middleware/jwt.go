package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/utils"
)

// ClaimsKey is the echo context key under which JWTAuth stores the
// caller's typed claims.
const ClaimsKey = "claims"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller's identity claims into the request
// context. The provided secret must match the one used when issuing
// tokens. Handlers access the typed claims via ClaimsFrom; anonymous
// callers never reach a protected handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			mc, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			cl := utils.Claims{}
			if sub, ok := mc["sub"].(float64); ok {
				cl.UserID = uint64(sub)
			}
			if cl.UserID == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			if role, ok := mc["role"].(string); ok {
				cl.Role = role
			}
			if su, ok := mc["su"].(bool); ok {
				cl.IsSuperuser = su
			}
			if tid, ok := mc["tribe_id"].(float64); ok {
				t := uint64(tid)
				cl.TribeID = &t
			}

			c.Set(ClaimsKey, cl)
			// user_id stays available as a plain value for rate-limit keys.
			c.Set("user_id", cl.UserID)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the typed claims stored by JWTAuth. The boolean
// is false when the middleware did not run for this route.
func ClaimsFrom(c echo.Context) (utils.Claims, bool) {
	cl, ok := c.Get(ClaimsKey).(utils.Claims)
	return cl, ok
}
