// Package router wires HTTP routes to handlers and middleware. Public
// routes (health, auth) are registered separately from the protected
// /v1 surface, which carries JWT auth, role enforcement and the Redis
// rate limiter.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/arktribe/tribestore/internal/handler"
	"github.com/arktribe/tribestore/internal/middleware"
	"github.com/arktribe/tribestore/internal/model"
)

// Handlers collects every handler the API mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Lease      *handler.LeaseHandler
	LeaseLogs  *handler.LeaseLogHandler
	Tribes     *handler.TribeHandler
	Users      *handler.UserHandler
	Accounts   *handler.AccountHandler
	Items      *handler.ItemHandler
	Dinos      *handler.DinoHandler
	Genetics   *handler.GeneticHandler
	Combos     *handler.ComboHandler
	Recipes    *handler.RecipeHandler
	Blueprints *handler.BlueprintHandler
}

// Middlewares collects the cross-cutting middleware built in main.
type Middlewares struct {
	RateLimit      echo.MiddlewareFunc // Redis token bucket, may be a no-op
	OccupancyCache echo.MiddlewareFunc // short-TTL response cache for dashboards
}

// Register mounts every route on the Echo instance.
func Register(e *echo.Echo, h Handlers, mw Middlewares, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	// Unauthenticated session endpoints.
	authGroup := e.Group("/v1/auth", mw.RateLimit)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/refresh-access", h.Auth.RefreshAccess)
	authGroup.POST("/logout", h.Auth.Logout)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	v1.Use(mw.RateLimit)

	v1.GET("/me", h.Auth.Me)
	v1.POST("/logout-all", h.Auth.LogoutAll)

	// Occupancy: the lease manager surface.
	v1.POST("/leases", h.Lease.Acquire)
	v1.GET("/leases", h.Lease.List, mw.OccupancyCache)
	v1.GET("/leases/mine", h.Lease.Mine)
	v1.PATCH("/leases/:id", h.Lease.Transition)
	v1.DELETE("/leases/:id", h.Lease.Release)

	// Lease history.
	v1.GET("/lease-logs", h.LeaseLogs.ByRange, mw.OccupancyCache)
	v1.GET("/users/:id/lease-logs", h.LeaseLogs.ByUser)
	v1.GET("/accounts/:id/lease-logs", h.LeaseLogs.ByAccount, mw.OccupancyCache)

	// Tribes: read for everyone, mutation checked in the handler
	// (superuser only).
	v1.GET("/tribes", h.Tribes.List)
	v1.GET("/tribes/:id", h.Tribes.Get)
	v1.POST("/tribes", h.Tribes.Create)
	v1.PUT("/tribes/:id", h.Tribes.Update)
	v1.DELETE("/tribes/:id", h.Tribes.Delete)

	// Users: visibility filtered per caller inside the handler.
	v1.GET("/users", h.Users.List)
	v1.GET("/users/:id", h.Users.Get)
	v1.PUT("/users/:id", h.Users.Update)
	v1.DELETE("/users/:id", h.Users.Delete)

	// Shared accounts.
	v1.GET("/accounts", h.Accounts.List)
	v1.GET("/accounts/:id", h.Accounts.Get)
	v1.POST("/accounts", h.Accounts.Create)
	v1.PUT("/accounts/:id", h.Accounts.Update)
	v1.DELETE("/accounts/:id", h.Accounts.Delete)

	// Global catalogs: items, species, recipes, blueprints. Reads are
	// open; mutation is limited to admins (superusers pass RequireRole
	// implicitly).
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1.GET("/items", h.Items.List)
	v1.GET("/items/:id", h.Items.Get)
	v1.POST("/items", h.Items.Create, adminOnly)
	v1.PUT("/items/:id", h.Items.Update, adminOnly)
	v1.DELETE("/items/:id", h.Items.Delete, adminOnly)

	v1.GET("/dinos", h.Dinos.List)
	v1.GET("/dinos/:id", h.Dinos.Get)
	v1.POST("/dinos", h.Dinos.Create, adminOnly)
	v1.PUT("/dinos/:id", h.Dinos.Update, adminOnly)
	v1.DELETE("/dinos/:id", h.Dinos.Delete, adminOnly)

	v1.GET("/recipes", h.Recipes.List)
	v1.GET("/recipes/:id", h.Recipes.Get)
	v1.POST("/recipes", h.Recipes.Create, adminOnly)
	v1.DELETE("/recipes/:id", h.Recipes.Delete, adminOnly)

	v1.GET("/blueprints", h.Blueprints.List)
	v1.GET("/blueprints/:id", h.Blueprints.Get)
	v1.POST("/blueprints", h.Blueprints.Create, adminOnly)
	v1.DELETE("/blueprints/:id", h.Blueprints.Delete, adminOnly)

	// Tribe-scoped stock: genetics, sale posts, combos.
	v1.GET("/genetics", h.Genetics.List)
	v1.GET("/genetics/:id", h.Genetics.Get)
	v1.POST("/genetics", h.Genetics.Create, adminOnly)
	v1.DELETE("/genetics/:id", h.Genetics.Delete, adminOnly)

	v1.GET("/sale-posts", h.Genetics.ListSalePosts)
	v1.POST("/sale-posts", h.Genetics.CreateSalePost, adminOnly)
	v1.DELETE("/sale-posts/:id", h.Genetics.DeleteSalePost, adminOnly)

	v1.GET("/combos", h.Combos.List)
	v1.GET("/combos/:id", h.Combos.Get)
	v1.POST("/combos", h.Combos.Create, adminOnly)
	v1.PATCH("/combos/:id/availability", h.Combos.SetAvailability, adminOnly)
	v1.DELETE("/combos/:id", h.Combos.Delete, adminOnly)
}
